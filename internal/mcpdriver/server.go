// Package mcpdriver exposes a result navigator as MCP tools over stdio, so an agent can walk
// a finished run the same way a person does in the browser.
package mcpdriver

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"fixturectl/internal/navigator"
	"fixturectl/pkg/logging"
)

// Driver serves one navigator. Tool calls are serialized because the navigator is not safe
// for concurrent use.
type Driver struct {
	mu     sync.Mutex
	nav    *navigator.Navigator
	server *server.MCPServer
}

// New creates a driver for nav and registers its tools.
func New(nav *navigator.Navigator, version string) *Driver {
	d := &Driver{nav: nav}

	d.server = server.NewMCPServer(
		"fixturectl",
		version,
		server.WithToolCapabilities(true),
	)
	d.server.AddTools(d.tools()...)
	return d
}

// Serve blocks serving MCP over stdin/stdout until the client disconnects.
func (d *Driver) Serve() error {
	logging.Info("MCP", "Serving result navigator over stdio")
	if err := server.ServeStdio(d.server); err != nil {
		return fmt.Errorf("mcp stdio server: %w", err)
	}
	return nil
}

// MCPServer returns the underlying server, mainly for tests and embedding.
func (d *Driver) MCPServer() *server.MCPServer {
	return d.server
}

func (d *Driver) tools() []server.ServerTool {
	move := func(name, description string, fn func() error) server.ServerTool {
		return server.ServerTool{
			Tool: mcp.NewTool(name, mcp.WithDescription(description)),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return d.apply(name, fn)
			},
		}
	}

	return []server.ServerTool{
		move("nav_up", "Move the cursor to the parent node", func() error { return d.nav.Up() }),
		move("nav_down", "Move the cursor to the first child", func() error { return d.nav.Down() }),
		move("nav_left", "Move the cursor to the previous sibling", func() error { return d.nav.Left() }),
		move("nav_right", "Move the cursor to the next sibling", func() error { return d.nav.Right() }),
		{
			Tool: mcp.NewTool("nav_child",
				mcp.WithDescription("Move the cursor to the child at the given zero-based index"),
				mcp.WithNumber("index",
					mcp.Required(),
					mcp.Description("Zero-based child index"),
				),
			),
			Handler: d.handleChild,
		},
		{
			Tool: mcp.NewTool("nav_detail",
				mcp.WithDescription("Set how much detail describe renders"),
				mcp.WithNumber("level",
					mcp.Required(),
					mcp.Description("0 shows statuses, 1 adds error types, 2 adds error messages"),
				),
			),
			Handler: d.handleDetail,
		},
		{
			Tool:    mcp.NewTool("nav_describe", mcp.WithDescription("Describe the node under the cursor")),
			Handler: d.handleDescribe,
		},
		{
			Tool:    mcp.NewTool("nav_path", mcp.WithDescription("Show the labels from the root to the cursor")),
			Handler: d.handlePath,
		},
	}
}

// apply runs a navigation step and answers with the new description, or with the boundary the
// cursor ran into. Boundaries are tool errors, not protocol errors.
func (d *Driver) apply(tool string, fn func() error) (*mcp.CallToolResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := fn(); err != nil {
		logging.Debug("MCP", "%s rejected: %v", tool, err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(strings.Join(d.nav.Describe(), "\n")), nil
}

func (d *Driver) handleChild(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	index, err := intArgument(request, "index")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return d.apply("nav_child", func() error { return d.nav.GoToChild(index) })
}

func (d *Driver) handleDetail(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	level, err := intArgument(request, "level")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return d.apply("nav_detail", func() error { return d.nav.SetDetailLevel(navigator.DetailLevel(level)) })
}

func (d *Driver) handleDescribe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return d.apply("nav_describe", func() error { return nil })
}

func (d *Driver) handlePath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return mcp.NewToolResultText(strings.Join(d.nav.Path(), " / ")), nil
}

// intArgument reads a whole-number argument. JSON numbers arrive as float64.
func intArgument(request mcp.CallToolRequest, name string) (int, error) {
	args := request.GetArguments()
	switch v := args[name].(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%s must be a whole number, got %v", name, v)
		}
		return int(v), nil
	case int:
		return v, nil
	case nil:
		return 0, fmt.Errorf("missing required argument: %s", name)
	default:
		return 0, fmt.Errorf("%s must be a number, got %T", name, v)
	}
}
