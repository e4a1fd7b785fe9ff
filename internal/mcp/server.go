// Package mcp exposes the daemon's window operations as MCP tools over stdio.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/noborders/internal/ipc"
)

const (
	ServerName    = "noborders"
	ServerVersion = "0.1.0"
)

// daemonClient is the slice of the IPC client the tools need. A running
// noborders daemon sits behind the real implementation.
type daemonClient interface {
	ListWindows() (*ipc.WindowsData, error)
	ListMonitors() (*ipc.MonitorsData, error)
	Fullscreen(handle uint64, monitor *int) error
	Revert(handle uint64) (string, error)
	Refresh() (*ipc.WindowsData, error)
	GetStatus() (*ipc.StatusData, error)
}

// Server is the MCP server bridging tool calls to the daemon.
type Server struct {
	mcpServer *mcpsdk.Server
	client    daemonClient
}

// NewServer creates an MCP server talking to the daemon at addr.
func NewServer(addr string) *Server {
	return newServer(ipc.NewClient(addr))
}

func newServer(client daemonClient) *Server {
	s := &Server{client: client}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List visible top-level windows partitioned into windowed and borderless-fullscreen. Handles returned here are the identifiers the other tools take.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List attached displays with their rectangles. The returned id is what make_borderless accepts as a monitor target.",
	}, s.handleListMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "make_borderless",
		Description: "Strip a window's chrome and stretch it across a monitor (default: primary). The original styles and geometry are remembered so revert_window can restore them.",
	}, s.handleMakeBorderless)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "revert_window",
		Description: "Restore a window's remembered styles and geometry. Returns outcome \"noop\" when the window was never made borderless.",
	}, s.handleRevertWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "refresh",
		Description: "Run one refresh pass immediately: re-enumerate windows, reapply remembered fullscreen preferences to relaunched processes, and drop state for windows that no longer exist.",
	}, s.handleRefresh)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Report daemon status: uptime, refresh interval, window counts and tracked state.",
	}, s.handleGetStatus)
}
