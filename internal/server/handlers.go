package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mj1618/a11ybridge/internal/model"
	"github.com/mj1618/a11ybridge/internal/output"
	"github.com/mj1618/a11ybridge/internal/render"
	"github.com/mj1618/a11ybridge/internal/script"
)

// resultToText serializes a tool result to YAML for the MCP response.
func resultToText(v interface{}) string {
	text, err := output.Marshal(output.FormatYAML, v)
	if err != nil {
		return fmt.Sprintf("ok: false\nerror: %s", err)
	}
	return text
}

// callHandler runs one script call with the tool arguments as its
// parameters. Any call may change a variable, so the render cache is
// invalidated afterwards.
func (s *Server) callHandler(call string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params := request.GetArguments()
		if params == nil {
			params = map[string]interface{}{}
		}

		s.runnerMu.Lock()
		defer s.runnerMu.Unlock()
		defer s.cache.InvalidateAll()

		res := s.runner.Run(ctx, &script.Script{Steps: []script.Step{{call: params}}})
		if len(res.Results) == 0 {
			return mcp.NewToolResultError(res.Error), nil
		}
		step := res.Results[0]
		if !step.OK {
			return mcp.NewToolResultError(resultToText(step)), nil
		}
		return mcp.NewToolResultText(resultToText(step)), nil
	}
}

func (s *Server) handleScript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	sc, err := scriptFromParams(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if p := script.StringParam(params, "platform", ""); p != "" {
		sc.Platform = p
	}
	if script.HasParam(params, "stop-on-error") {
		stop := script.BoolParam(params, "stop-on-error", true)
		sc.StopOnError = &stop
	}

	s.runnerMu.Lock()
	defer s.runnerMu.Unlock()
	defer s.cache.InvalidateAll()

	res := s.runner.Run(ctx, sc)
	if !res.OK {
		return mcp.NewToolResultError(resultToText(res)), nil
	}
	return mcp.NewToolResultText(resultToText(res)), nil
}

// scriptFromParams builds a script from a steps array, or from YAML text
// when no array is given.
func scriptFromParams(params map[string]interface{}) (*script.Script, error) {
	stepsRaw, ok := params["steps"]
	if !ok {
		text := script.StringParam(params, "script", "")
		if text == "" {
			return nil, fmt.Errorf("steps or script parameter is required")
		}
		return script.Parse([]byte(text))
	}

	arr, ok := stepsRaw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("steps must be an array")
	}
	if len(arr) == 0 {
		return nil, fmt.Errorf("no steps provided")
	}
	steps := make([]script.Step, 0, len(arr))
	for i, item := range arr {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("step %d must be an object", i+1)
		}
		step := make(script.Step, len(m))
		for call, p := range m {
			switch p := p.(type) {
			case nil:
				step[call] = map[string]interface{}{}
			case map[string]interface{}:
				step[call] = p
			default:
				return nil, fmt.Errorf("step %d: parameters of %q must be an object", i+1, call)
			}
		}
		steps = append(steps, step)
	}
	return &script.Script{Steps: steps}, nil
}

func (s *Server) handleRender(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	name := script.StringParam(params, "name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	opts := render.Options{
		Scale:   script.FloatParam(params, "scale", s.render.Scale),
		Padding: script.IntParam(params, "padding", s.render.Padding),
		Labels:  script.BoolParam(params, "labels", s.render.Labels),
	}

	var roles []string
	if rolesStr := script.StringParam(params, "roles", ""); rolesStr != "" {
		for _, r := range strings.Split(rolesStr, ",") {
			roles = append(roles, strings.TrimSpace(r))
		}
	}
	text := script.StringParam(params, "text", "")
	bboxStr := script.StringParam(params, "bbox", "")
	bbox, err := model.ParseBBox(bboxStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.runnerMu.Lock()
	defer s.runnerMu.Unlock()

	key := fmt.Sprintf("%s|%s|%s|%s", name, strings.Join(roles, ","), text, bboxStr)
	data, err := s.cache.Render(key, opts, func() ([]byte, error) {
		els, err := s.runner.Elements(name)
		if err != nil {
			return nil, err
		}
		els = model.FilterByText(model.FilterElements(els, roles, bbox), text)
		var buf bytes.Buffer
		if err := render.WritePNG(&buf, els, opts); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(data),
				MIMEType: "image/png",
			},
		},
	}, nil
}

func (s *Server) handleCodes(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind := script.StringParam(request.GetArguments(), "kind", "")
	var tables []output.CodeTable
	if kind != "" {
		tables = output.CodeTables(kind)
		if len(tables) == 0 {
			return mcp.NewToolResultError(fmt.Sprintf("unknown enumeration %q", kind)), nil
		}
	} else {
		tables = output.CodeTables()
	}
	return mcp.NewToolResultText(resultToText(tables)), nil
}

func (s *Server) handleVars(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.runnerMu.Lock()
	defer s.runnerMu.Unlock()

	type varsResult struct {
		Live int              `yaml:"live"           json:"live"`
		Vars map[string]int64 `yaml:"vars,omitempty" json:"vars,omitempty"`
	}
	return mcp.NewToolResultText(resultToText(varsResult{
		Live: s.runner.Bridge().Live(),
		Vars: s.runner.Vars(),
	})), nil
}
