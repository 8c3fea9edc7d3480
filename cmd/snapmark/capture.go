package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/example/snapmark/internal/capture"
)

var (
	captureScreenFn = capture.Screen
	sleepFn         = time.Sleep
)

type captureCmd struct {
	*root
	fs      *flag.FlagSet
	display string
	output  string
	delay   time.Duration
	hold    time.Duration
	cursor  bool
}

func (c *captureCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *captureCmd) Template() string {
	return "capture.txt"
}

func parseCaptureCmd(args []string, r *root) (*captureCmd, error) {
	fs := flag.NewFlagSet("capture", flag.ExitOnError)
	cmd := &captureCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.display, "display", "", "capture one monitor instead of the whole desktop")
	fs.StringVar(&cmd.output, "output", "", "also save the finished region to this PNG file")
	fs.DurationVar(&cmd.delay, "delay", 0, "wait before capturing, e.g. 3s")
	fs.DurationVar(&cmd.hold, "hold", 0, "after copying, keep serving the clipboard this long or until it is replaced")
	fs.BoolVar(&cmd.cursor, "cursor", false, "include the mouse pointer when the backend supports it")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	if cmd.delay < 0 || cmd.hold < 0 {
		return nil, fmt.Errorf("-delay and -hold must not be negative")
	}
	return cmd, nil
}

func (c *captureCmd) Run() error {
	if c.delay > 0 {
		sleepFn(c.delay)
	}
	shot, err := captureScreenFn(capture.Options{Display: c.display, IncludeCursor: c.cursor})
	if err != nil {
		return fmt.Errorf("%s %s: %w", c.program, c.describe(), err)
	}
	if c.debug != nil {
		c.debug.Printf("captured %v via %s", shot.Area, shot.Source)
	}
	return c.annotate(shot.Image, delivery{output: c.output, hold: c.hold})
}

func (c *captureCmd) describe() string {
	if c.display == "" {
		return "screen"
	}
	return "display " + c.display
}

type monitorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseMonitorsCmd(args []string, r *root) (*monitorsCmd, error) {
	fs := flag.NewFlagSet("monitors", flag.ExitOnError)
	cmd := &monitorsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

var listMonitorsFn = capture.ListMonitors

func (c *monitorsCmd) Run() error {
	monitors, err := listMonitorsFn()
	if err != nil {
		return fmt.Errorf("list monitors: %w", err)
	}
	fmt.Fprintln(os.Stdout, "available monitors (* marks the primary monitor):")
	for _, mon := range monitors {
		marker := " "
		if mon.Primary {
			marker = "*"
		}
		r := mon.Rect
		fmt.Fprintf(os.Stdout, "%s %d: %-12s %dx%d+%d+%d\n", marker, mon.Index, mon.Name, r.Dx(), r.Dy(), r.Min.X, r.Min.Y)
	}
	v := capture.VirtualBounds(monitors)
	fmt.Fprintf(os.Stdout, "desktop: %dx%d+%d+%d\n", v.Dx(), v.Dy(), v.Min.X, v.Min.Y)
	return nil
}

func (c *monitorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *monitorsCmd) Template() string {
	return "monitors.txt"
}
