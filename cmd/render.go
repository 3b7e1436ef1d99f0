package cmd

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mj1618/a11ybridge/internal/model"
	"github.com/mj1618/a11ybridge/internal/output"
	"github.com/mj1618/a11ybridge/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render [script.yaml]",
	Short: "Render the node bounds held by a script variable as a PNG",
	Long: `Run a call script, then draw the bounds of one of its variables: a node, a
tree update, or the live tree of an adapter. The focused node is drawn in blue.

Examples:
  a11ybridge render session.yaml --var view -o view.png
  a11ybridge render session.yaml --var first --scale 2 --labels=false
  a11ybridge render session.yaml --var view --bbox 0,0,100,50`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	addScriptFlags(renderCmd)
	renderCmd.Flags().String("var", "", "Variable to render")
	renderCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout as base64)")
	renderCmd.Flags().Float64("scale", 0, "Pixels per unit (default from config)")
	renderCmd.Flags().Int("padding", -1, "Margin in pixels (default from config)")
	renderCmd.Flags().Bool("labels", true, "Draw node ids and labels")
	renderCmd.Flags().String("roles", "", "Comma-separated roles to draw (e.g. \"btn,txt\" or \"button\")")
	renderCmd.Flags().String("bbox", "", "Only draw nodes intersecting this box (x0,y0,x1,y1)")
	renderCmd.Flags().String("text", "", "Only draw nodes whose label, value or description contains this text")
	renderCmd.Flags().Bool("prune", false, "Skip anonymous group/other nodes")
	_ = renderCmd.MarkFlagRequired("var")
}

func renderOptions(cmd *cobra.Command) render.Options {
	opts := render.Options{
		Scale:   cfg.Render.Scale,
		Padding: cfg.Render.Padding,
		Labels:  cfg.Render.Labels,
	}
	if scale, _ := cmd.Flags().GetFloat64("scale"); scale > 0 {
		opts.Scale = scale
	}
	if padding, _ := cmd.Flags().GetInt("padding"); padding >= 0 {
		opts.Padding = padding
	}
	if cmd.Flags().Changed("labels") {
		opts.Labels, _ = cmd.Flags().GetBool("labels")
	}
	return opts
}

func runRender(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("var")
	outPath, _ := cmd.Flags().GetString("output")

	r, res, err := runScript(cmd, args)
	if err != nil {
		return err
	}
	if err := scriptFailed(res); err != nil {
		return err
	}
	els, err := r.Elements(name)
	if err != nil {
		return err
	}
	els, err = filterElements(cmd, els)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := render.WritePNG(&buf, els, renderOptions(cmd)); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	if outPath == "" {
		_, err := fmt.Fprintln(output.Stdout, base64.StdEncoding.EncodeToString(buf.Bytes()))
		return err
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	logger.Info().Str("file", outPath).Int("bytes", buf.Len()).Msg("rendered")
	return nil
}

// filterElements applies the --roles, --bbox, --text and --prune flags.
func filterElements(cmd *cobra.Command, els []model.Element) ([]model.Element, error) {
	rolesStr, _ := cmd.Flags().GetString("roles")
	bboxStr, _ := cmd.Flags().GetString("bbox")
	text, _ := cmd.Flags().GetString("text")
	prune, _ := cmd.Flags().GetBool("prune")

	var roles []string
	if rolesStr != "" {
		for _, r := range strings.Split(rolesStr, ",") {
			roles = append(roles, strings.TrimSpace(r))
		}
	}
	bbox, err := model.ParseBBox(bboxStr)
	if err != nil {
		return nil, err
	}
	els = model.FilterElements(els, roles, bbox)
	els = model.FilterByText(els, text)
	if prune {
		els = model.PruneEmptyGroups(els)
	}
	return els, nil
}
