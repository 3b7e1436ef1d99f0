// Package server exposes the bridge as MCP tools. Every tool maps onto one
// script call against a single long-lived runner, so handles and variable
// names persist across tool calls for the lifetime of the server.
package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/mj1618/a11ybridge/internal/render"
	"github.com/mj1618/a11ybridge/internal/script"
	"github.com/mj1618/a11ybridge/internal/version"
)

// Config holds MCP server configuration.
type Config struct {
	// Platform is the adapter variant used when a call does not name one.
	Platform string
	Render   render.Options
	// CacheTTL is how long a rendered PNG is reused. 0 disables caching.
	CacheTTL time.Duration
	Logger   zerolog.Logger
}

// Server wraps the MCP server with the runner and the render cache.
type Server struct {
	// runnerMu serializes tool calls; the runner's variables are not
	// safe for concurrent use.
	runnerMu sync.Mutex
	runner   *script.Runner
	cache    *RenderCache
	render   render.Options
	log      zerolog.Logger
	mcp      *mcpserver.MCPServer
}

// New creates and configures an MCP server with all a11ybridge tools.
func New(cfg Config) *Server {
	s := &Server{
		runner: script.New(cfg.Platform, cfg.Logger),
		cache:  NewRenderCache(cfg.CacheTTL),
		render: cfg.Render,
		log:    cfg.Logger.With().Str("component", "mcp").Logger(),
	}
	s.mcp = mcpserver.NewMCPServer(
		"a11ybridge",
		version.Version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)
	s.registerTools()
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpserver.MCPServer { return s.mcp }

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(transport string, port int) error {
	s.log.Info().Str("transport", transport).Int("port", port).Msg("serving")
	switch transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", transport)
	}
}

// callTool describes one tool backed by a single script call.
type callTool struct {
	name string
	call string
	desc string
	opts []mcp.ToolOption
}

func nodeParam() mcp.ToolOption {
	return mcp.WithString("node", mcp.Description("Name of a live node variable"), mcp.Required())
}

func updateParam() mcp.ToolOption {
	return mcp.WithString("update", mcp.Description("Name of a live tree update variable"), mcp.Required())
}

func adapterParam() mcp.ToolOption {
	return mcp.WithString("adapter", mcp.Description("Name of a live adapter variable"), mcp.Required())
}

func asParam() mcp.ToolOption {
	return mcp.WithString("as", mcp.Description("Variable name to bind the new handle to"), mcp.Required())
}

const fieldHelp = "Node fields may be passed as extra arguments: label, description, value, access-key, " +
	"keyboard-shortcut, bounds [x0,y0,x1,y1], actions, children, toggled, live, direction, numeric-value, " +
	"min, max, step, jump, position, size, selection, character-lengths, word-lengths, character-positions, " +
	"character-widths."

var callTools = []callTool{
	{"node_new", "node-new", "Create a node with a role. " + fieldHelp, []mcp.ToolOption{
		asParam(),
		mcp.WithString("role", mcp.Description("Role name (e.g. 'button') or numeric code"), mcp.Required()),
	}},
	{"node_set", "node-set", "Set fields on a live node. Pass {field, value} or the fields directly. " + fieldHelp, []mcp.ToolOption{
		nodeParam(),
		mcp.WithString("field", mcp.Description("Single field to set")),
	}},
	{"node_show", "node-show", "Show the attributes set on a live node", []mcp.ToolOption{nodeParam()}},
	{"node_drop", "node-drop", "Destroy a node that was never added to an update", []mcp.ToolOption{nodeParam()}},
	{"tree_update_new", "update-new", "Create an empty tree update with a focus target", []mcp.ToolOption{
		asParam(),
		mcp.WithNumber("focus", mcp.Description("Focused node id"), mcp.Required()),
		mcp.WithNumber("root", mcp.Description("Declare this node id as the tree root")),
	}},
	{"tree_update_add_node", "update-add", "Move a node into an update under an id. The node variable is consumed.", []mcp.ToolOption{
		updateParam(),
		mcp.WithNumber("id", mcp.Description("Node id within the tree"), mcp.Required()),
		nodeParam(),
	}},
	{"tree_update_set_tree", "update-set-tree", "Declare the tree root in an update", []mcp.ToolOption{
		updateParam(),
		mcp.WithNumber("root", mcp.Description("Root node id"), mcp.Required()),
	}},
	{"tree_update_clear_tree", "update-clear-tree", "Remove the tree root declaration from an update", []mcp.ToolOption{updateParam()}},
	{"tree_update_set_focus", "update-set-focus", "Change the focus target of an update", []mcp.ToolOption{
		updateParam(),
		mcp.WithNumber("focus", mcp.Description("Focused node id"), mcp.Required()),
	}},
	{"tree_update_show", "update-show", "Show the nodes, root and focus of an update", []mcp.ToolOption{updateParam()}},
	{"tree_update_drop", "update-drop", "Destroy an update that was never handed to an adapter", []mcp.ToolOption{updateParam()}},
	{"adapter_new", "adapter-new", "Create an inactive adapter for a native view or window", []mcp.ToolOption{
		asParam(),
		mcp.WithString("platform", mcp.Description("Adapter variant: macos, windows")),
		mcp.WithNumber("native", mcp.Description("Native view, window or HWND handle"), mcp.Required()),
		mcp.WithBoolean("window", mcp.Description("macOS only: native is a window, not a view")),
		mcp.WithString("initial", mcp.Description("Update variable handed over on activation")),
	}},
	{"adapter_activate", "adapter-activate", "Simulate an assistive client querying the adapter", []mcp.ToolOption{adapterParam()}},
	{"adapter_update", "adapter-update", "Offer an update to the adapter. Inactive adapters never take it.", []mcp.ToolOption{
		adapterParam(),
		updateParam(),
	}},
	{"adapter_focus", "adapter-focus", "Report whether the host view has input focus", []mcp.ToolOption{
		adapterParam(),
		mcp.WithBoolean("focused", mcp.Description("Host view focus (default: true)")),
	}},
	{"adapter_action", "adapter-action", "Simulate an assistive client requesting an action on a node", []mcp.ToolOption{
		adapterParam(),
		mcp.WithString("action", mcp.Description("Action name (e.g. 'click') or numeric code"), mcp.Required()),
		mcp.WithNumber("target", mcp.Description("Target node id"), mcp.Required()),
	}},
	{"adapter_actions", "adapter-actions", "Drain the action requests queued by an adapter", []mcp.ToolOption{adapterParam()}},
	{"adapter_show", "adapter-show", "Show an adapter's state and live tree", []mcp.ToolOption{adapterParam()}},
	{"adapter_drop", "adapter-drop", "Destroy an adapter", []mcp.ToolOption{adapterParam()}},
}

func (s *Server) registerTools() {
	for _, t := range callTools {
		opts := append([]mcp.ToolOption{mcp.WithDescription(t.desc)}, t.opts...)
		s.mcp.AddTool(mcp.NewTool(t.name, opts...), s.callHandler(t.call))
	}

	s.mcp.AddTool(
		mcp.NewTool("script_run",
			mcp.WithDescription("Run several calls in one request. Steps execute sequentially; each is an object with one call key, e.g. {\"node-new\": {\"as\": \"ok\", \"role\": \"button\"}}"),
			mcp.WithArray("steps", mcp.Description("Array of step objects")),
			mcp.WithString("script", mcp.Description("YAML script text, used when steps is absent")),
			mcp.WithString("platform", mcp.Description("Default adapter variant for the steps")),
			mcp.WithBoolean("stop-on-error", mcp.Description("Stop on first error (default: true)")),
		),
		s.handleScript,
	)

	s.mcp.AddTool(
		mcp.NewTool("render",
			mcp.WithDescription("Render the bounds of a node, update or adapter tree as a PNG image"),
			mcp.WithString("name", mcp.Description("Variable to render"), mcp.Required()),
			mcp.WithNumber("scale", mcp.Description("Pixels per unit")),
			mcp.WithNumber("padding", mcp.Description("Margin in pixels")),
			mcp.WithBoolean("labels", mcp.Description("Draw node ids and labels")),
			mcp.WithString("roles", mcp.Description("Comma-separated roles to draw")),
			mcp.WithString("text", mcp.Description("Only draw nodes containing this text")),
			mcp.WithString("bbox", mcp.Description("Only draw nodes intersecting this box: x0,y0,x1,y1")),
		),
		s.handleRender,
	)

	s.mcp.AddTool(
		mcp.NewTool("codes",
			mcp.WithDescription("List the numeric codes of the enumerations: role, action, toggled, live, textDirection"),
			mcp.WithString("kind", mcp.Description("Only this enumeration")),
		),
		s.handleCodes,
	)

	s.mcp.AddTool(
		mcp.NewTool("vars",
			mcp.WithDescription("List the live variables and the number of live handles"),
		),
		s.handleVars,
	)
}
