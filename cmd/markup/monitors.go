package main

import (
	"flag"
	"fmt"

	"github.com/example/markup/internal/capture"
)

var listMonitorsFn = capture.ListMonitors

type monitorsCmd struct {
	*root
	fs *flag.FlagSet
}

func (c *monitorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *monitorsCmd) Template() string {
	return "monitors.txt"
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

func (c *monitorsCmd) Run() error {
	monitors, err := listMonitorsFn()
	if err != nil {
		return fmt.Errorf("list monitors: %w", err)
	}
	if len(monitors) == 0 {
		fmt.Fprintln(c.stdout, "no monitors available")
		return nil
	}
	fmt.Fprintln(c.stdout, "available monitors (* marks the primary monitor):")
	for _, m := range monitors {
		marker := " "
		if m.Primary {
			marker = "*"
		}
		r := m.Rect
		fmt.Fprintf(c.stdout, "%s %d: %s %dx%d+%d+%d\n", marker, m.Index, m.Name, r.Dx(), r.Dy(), r.Min.X, r.Min.Y)
	}
	fmt.Fprintln(c.stdout, "use screen:monitor=<name|#index|primary> as an image source")
	return nil
}
