package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"

	"github.com/1broseidon/noborders/internal/daemon"
	"github.com/1broseidon/noborders/internal/engine"
	"github.com/1broseidon/noborders/internal/platform"
)

// Server handles IPC requests from the shell and CLI. It listens on a
// loopback TCP address; every request is a single JSON line answered with a
// single JSON line.
type Server struct {
	listen string
	logger *slog.Logger
	eng    *engine.Engine
	coord  *daemon.Coordinator

	mu       sync.Mutex
	listener net.Listener
}

// NewServer creates an IPC server bound to the configured loopback address.
func NewServer(listen string, eng *engine.Engine, coord *daemon.Coordinator, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		listen: listen,
		logger: logger,
		eng:    eng,
		coord:  coord,
	}
}

func (s *Server) String() string {
	return "ipc-server"
}

// Addr returns the bound listen address, or empty before Serve starts.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Serve listens for connections until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.listen)
	if err != nil {
		return fmt.Errorf("failed to bind IPC listener on %s: %w", s.listen, err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	s.logger.Info("ipc server listening", "addr", listener.Addr())

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.logger.Info("ipc server stopped")
				return ctx.Err()
			}
			s.logger.Warn("ipc accept error", "error", err)
			continue
		}
		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("ipc read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.send(conn, NewErrorResponse(fmt.Sprintf("invalid request: %v", err)))
		return
	}

	s.send(conn, s.handleCommand(req))
}

func (s *Server) send(conn net.Conn, resp *Response) {
	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Warn("failed to marshal response", "error", err)
		return
	}
	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn("failed to send response", "error", err)
	}
}

func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandListWindows:
		return s.handleListWindows()
	case CommandListMonitors:
		return s.handleListMonitors()
	case CommandFullscreen:
		return s.handleFullscreen(req.Payload)
	case CommandRevert:
		return s.handleRevert(req.Payload)
	case CommandRefresh:
		return s.handleRefresh()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandSetVisible:
		return s.handleSetVisible(req.Payload)
	default:
		return NewErrorResponse(fmt.Sprintf("unknown command: %s", req.Command))
	}
}

func (s *Server) handleListWindows() *Response {
	part, err := s.coord.Refresh()
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, err := NewOKResponse(partitionData(part))
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleListMonitors() *Response {
	monitors, err := s.eng.Monitors()
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	data := MonitorsData{Monitors: make([]MonitorInfo, 0, len(monitors))}
	for i, m := range monitors {
		data.Monitors = append(data.Monitors, MonitorInfo{
			ID:      i,
			Device:  m.Device,
			Left:    m.Rect.Left,
			Top:     m.Rect.Top,
			Right:   m.Rect.Right,
			Bottom:  m.Rect.Bottom,
			Primary: m.Primary,
		})
	}
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleFullscreen(payload []byte) *Response {
	var p FullscreenPayload
	if err := unmarshalPayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}

	var target *platform.Rect
	if p.Monitor != nil {
		monitors, err := s.eng.Monitors()
		if err != nil {
			return NewErrorResponse(fmt.Sprintf("monitor enumeration failed: %v", err))
		}
		if *p.Monitor < 0 || *p.Monitor >= len(monitors) {
			return NewErrorResponse(fmt.Sprintf("monitor %d out of range [0,%d)", *p.Monitor, len(monitors)))
		}
		rect := monitors[*p.Monitor].Rect
		target = &rect
	}

	if err := s.eng.Transform(platform.Handle(p.Handle), target); err != nil {
		return NewErrorResponse(err.Error())
	}
	s.refreshBestEffort()
	resp, err := NewOKResponse(nil)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleRevert(payload []byte) *Response {
	var p RevertPayload
	if err := unmarshalPayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}

	outcome, err := s.eng.Revert(platform.Handle(p.Handle))
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	s.refreshBestEffort()

	data := RevertData{Outcome: "reverted"}
	if outcome == engine.RevertNoOp {
		data.Outcome = "noop"
	}
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleRefresh() *Response {
	part, err := s.coord.Refresh()
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, err := NewOKResponse(partitionData(part))
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleGetStatus() *Response {
	st := s.coord.CurrentStatus()
	handles, processes := s.eng.Tracked()
	data := StatusData{
		DaemonRunning:    true,
		UptimeSeconds:    int64(st.Uptime.Seconds()),
		IntervalSeconds:  int(st.Interval.Seconds()),
		Visible:          st.Visible,
		WindowedCount:    st.WindowedCount,
		FullscreenCount:  st.FullscreenCount,
		TrackedHandles:   handles,
		TrackedProcesses: processes,
		Elevated:         platform.IsElevated(),
	}
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleSetVisible(payload []byte) *Response {
	var p SetVisiblePayload
	if err := unmarshalPayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	s.coord.SetVisible(p.Visible)
	resp, err := NewOKResponse(nil)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

// refreshBestEffort refreshes the published partition after a user-triggered
// mutation. Failures here are background noise, not the caller's problem.
func (s *Server) refreshBestEffort() {
	if _, err := s.coord.Refresh(); err != nil && !errors.Is(err, daemon.ErrStopped) {
		s.logger.Debug("post-action refresh failed", "error", err)
	}
}

func partitionData(part engine.Partition) WindowsData {
	data := WindowsData{
		Windowed:   make([]WindowInfo, 0, len(part.Windowed)),
		Fullscreen: make([]WindowInfo, 0, len(part.Fullscreen)),
	}
	for _, w := range part.Windowed {
		data.Windowed = append(data.Windowed, windowInfo(w))
	}
	for _, w := range part.Fullscreen {
		data.Fullscreen = append(data.Fullscreen, windowInfo(w))
	}
	return data
}

func windowInfo(w platform.Window) WindowInfo {
	return WindowInfo{
		Handle:  uint64(w.Handle),
		PID:     w.PID,
		Process: w.ProcessName,
		Title:   w.Title,
	}
}

func unmarshalPayload(payload []byte, v interface{}) error {
	if len(payload) == 0 {
		return fmt.Errorf("missing payload")
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}
