package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/1broseidon/noborders/internal/config"
	"github.com/1broseidon/noborders/internal/ipc"
)

// newClient builds an IPC client for the daemon address in the config file.
// Config errors fall back to the default address so the CLI stays usable.
func newClient() *ipc.Client {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}
	return ipc.NewClient(cfg.Listen)
}

func parseHandle(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("window handle is required")
	}
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}
	h, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid window handle %q", s)
	}
	return h, nil
}

func printWindows(data *ipc.WindowsData) {
	fmt.Printf("windowed (%d):\n", len(data.Windowed))
	for _, w := range data.Windowed {
		fmt.Printf("  %#x  %-24s %s\n", w.Handle, w.Process, w.Title)
	}
	fmt.Printf("fullscreen (%d):\n", len(data.Fullscreen))
	for _, w := range data.Fullscreen {
		fmt.Printf("  %#x  %-24s %s\n", w.Handle, w.Process, w.Title)
	}
}

func runList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: noborders list")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List visible windows partitioned into windowed and fullscreen.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "list takes no arguments")
		fs.Usage()
		return 2
	}

	data, err := newClient().ListWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printWindows(data)
	return 0
}

func runMonitors(args []string) int {
	fs := flag.NewFlagSet("monitors", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: noborders monitors")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List attached displays. The id column is what 'fullscreen --monitor' takes.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "monitors takes no arguments")
		fs.Usage()
		return 2
	}

	data, err := newClient().ListMonitors()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, m := range data.Monitors {
		primary := ""
		if m.Primary {
			primary = " (primary)"
		}
		fmt.Printf("%d: %s %dx%d at (%d,%d)%s\n",
			m.ID, m.Device, m.Right-m.Left, m.Bottom-m.Top, m.Left, m.Top, primary)
	}
	return 0
}

func runFullscreen(args []string) int {
	fs := flag.NewFlagSet("fullscreen", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: noborders fullscreen [--monitor N] <handle>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Strip a window's chrome and stretch it across a monitor (default: primary).")
		fmt.Fprintln(os.Stderr, "Handles come from 'noborders list' and may be hex or decimal.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	monitor := fs.Int("monitor", -1, "Monitor id from 'noborders monitors'")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "fullscreen requires <handle>")
		fs.Usage()
		return 2
	}

	handle, err := parseHandle(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	var target *int
	if *monitor >= 0 {
		target = monitor
	}
	if err := newClient().Fullscreen(handle, target); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runRevert(args []string) int {
	fs := flag.NewFlagSet("revert", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: noborders revert <handle>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Restore a window's remembered styles and geometry.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "revert requires <handle>")
		fs.Usage()
		return 2
	}

	handle, err := parseHandle(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	outcome, err := newClient().Revert(handle)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(outcome)
	return 0
}

func runRefresh(args []string) int {
	fs := flag.NewFlagSet("refresh", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: noborders refresh")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run one refresh pass now and print the resulting window partition.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "refresh takes no arguments")
		fs.Usage()
		return 2
	}

	data, err := newClient().Refresh()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printWindows(data)
	return 0
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: noborders status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	status, err := newClient().GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("daemon_running:    %v\n", status.DaemonRunning)
	fmt.Printf("uptime_seconds:    %d\n", status.UptimeSeconds)
	fmt.Printf("interval_seconds:  %d\n", status.IntervalSeconds)
	fmt.Printf("visible:           %v\n", status.Visible)
	fmt.Printf("windowed_count:    %d\n", status.WindowedCount)
	fmt.Printf("fullscreen_count:  %d\n", status.FullscreenCount)
	fmt.Printf("tracked_handles:   %d\n", status.TrackedHandles)
	fmt.Printf("tracked_processes: %d\n", status.TrackedProcesses)
	fmt.Printf("elevated:          %v\n", status.Elevated)
	return 0
}
