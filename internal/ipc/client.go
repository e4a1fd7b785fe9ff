package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

// Client handles IPC communication with the daemon.
type Client struct {
	addr    string
	timeout time.Duration
}

// NewClient creates a client for the daemon at the given loopback address.
func NewClient(addr string) *Client {
	return &Client{
		addr:    addr,
		timeout: 5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response.
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("tcp", c.addr, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}
	return &resp, nil
}

func (c *Client) sendWithPayload(cmd CommandType, payload interface{}) (*Response, error) {
	req := &Request{Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		req.Payload = data
	}
	return c.sendRequest(req)
}

// ListWindows retrieves the current windowed/fullscreen partition after a
// fresh reconciliation pass.
func (c *Client) ListWindows() (*WindowsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandListWindows})
	if err != nil {
		return nil, err
	}
	var data WindowsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse windows data: %w", err)
	}
	return &data, nil
}

// ListMonitors retrieves the display monitors.
func (c *Client) ListMonitors() (*MonitorsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandListMonitors})
	if err != nil {
		return nil, err
	}
	var data MonitorsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse monitors data: %w", err)
	}
	return &data, nil
}

// Fullscreen makes the window borderless fullscreen. A nil monitor targets
// the primary display.
func (c *Client) Fullscreen(handle uint64, monitor *int) error {
	_, err := c.sendWithPayload(CommandFullscreen, FullscreenPayload{Handle: handle, Monitor: monitor})
	return err
}

// Revert restores a window to its original windowed state. Returns the
// outcome: "reverted" or "noop".
func (c *Client) Revert(handle uint64) (string, error) {
	resp, err := c.sendWithPayload(CommandRevert, RevertPayload{Handle: handle})
	if err != nil {
		return "", err
	}
	var data RevertData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return "", fmt.Errorf("failed to parse revert data: %w", err)
	}
	return data.Outcome, nil
}

// Refresh triggers an immediate reconciliation pass.
func (c *Client) Refresh() (*WindowsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandRefresh})
	if err != nil {
		return nil, err
	}
	var data WindowsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse windows data: %w", err)
	}
	return &data, nil
}

// GetStatus retrieves daemon status.
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}
	var data StatusData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}
	return &data, nil
}

// SetVisible tells the daemon whether a UI is currently watching, switching
// the refresh cadence accordingly.
func (c *Client) SetVisible(visible bool) error {
	_, err := c.sendWithPayload(CommandSetVisible, SetVisiblePayload{Visible: visible})
	return err
}
