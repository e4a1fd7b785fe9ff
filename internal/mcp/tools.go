package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/noborders/internal/ipc"
)

func toEntries(infos []ipc.WindowInfo) []WindowEntry {
	out := make([]WindowEntry, 0, len(infos))
	for _, w := range infos {
		out = append(out, WindowEntry{
			Handle:  w.Handle,
			PID:     w.PID,
			Process: w.Process,
			Title:   w.Title,
		})
	}
	return out
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	var (
		data *ipc.WindowsData
		err  error
	)
	if args.Refresh {
		data, err = s.client.Refresh()
	} else {
		data, err = s.client.ListWindows()
	}
	if err != nil {
		return nil, ListWindowsOutput{}, fmt.Errorf("list windows: %w", err)
	}
	return nil, ListWindowsOutput{
		Windowed:   toEntries(data.Windowed),
		Fullscreen: toEntries(data.Fullscreen),
	}, nil
}

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	data, err := s.client.ListMonitors()
	if err != nil {
		return nil, ListMonitorsOutput{}, fmt.Errorf("list monitors: %w", err)
	}
	out := ListMonitorsOutput{Monitors: make([]MonitorEntry, 0, len(data.Monitors))}
	for _, m := range data.Monitors {
		out.Monitors = append(out.Monitors, MonitorEntry{
			ID:      m.ID,
			Device:  m.Device,
			Left:    m.Left,
			Top:     m.Top,
			Right:   m.Right,
			Bottom:  m.Bottom,
			Primary: m.Primary,
		})
	}
	return nil, out, nil
}

func (s *Server) handleMakeBorderless(_ context.Context, _ *mcpsdk.CallToolRequest, args MakeBorderlessInput) (*mcpsdk.CallToolResult, MakeBorderlessOutput, error) {
	if args.Handle == 0 {
		return nil, MakeBorderlessOutput{}, fmt.Errorf("handle is required")
	}
	if err := s.client.Fullscreen(args.Handle, args.Monitor); err != nil {
		return nil, MakeBorderlessOutput{}, fmt.Errorf("make borderless: %w", err)
	}
	return nil, MakeBorderlessOutput{Handle: args.Handle}, nil
}

func (s *Server) handleRevertWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args RevertWindowInput) (*mcpsdk.CallToolResult, RevertWindowOutput, error) {
	if args.Handle == 0 {
		return nil, RevertWindowOutput{}, fmt.Errorf("handle is required")
	}
	outcome, err := s.client.Revert(args.Handle)
	if err != nil {
		return nil, RevertWindowOutput{}, fmt.Errorf("revert window: %w", err)
	}
	return nil, RevertWindowOutput{Handle: args.Handle, Outcome: outcome}, nil
}

func (s *Server) handleRefresh(_ context.Context, _ *mcpsdk.CallToolRequest, _ RefreshInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	data, err := s.client.Refresh()
	if err != nil {
		return nil, ListWindowsOutput{}, fmt.Errorf("refresh: %w", err)
	}
	return nil, ListWindowsOutput{
		Windowed:   toEntries(data.Windowed),
		Fullscreen: toEntries(data.Fullscreen),
	}, nil
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	status, err := s.client.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, fmt.Errorf("get status: %w", err)
	}
	return nil, GetStatusOutput{
		DaemonRunning:    status.DaemonRunning,
		UptimeSeconds:    status.UptimeSeconds,
		IntervalSeconds:  status.IntervalSeconds,
		Visible:          status.Visible,
		WindowedCount:    status.WindowedCount,
		FullscreenCount:  status.FullscreenCount,
		TrackedHandles:   status.TrackedHandles,
		TrackedProcesses: status.TrackedProcesses,
		Elevated:         status.Elevated,
	}, nil
}
