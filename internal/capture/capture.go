// Package capture grabs the desktop so it can be annotated.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"strconv"
	"strings"
)

var errNoMonitors = errors.New("no monitors available")

// ErrUnsupported is returned when no capture backend works on this platform.
var ErrUnsupported = errors.New("screen capture is not supported on this platform")

// Options select how the desktop is captured.
type Options struct {
	// Interactive asks the portal to let the user pick a region.
	Interactive bool
	// Monitor crops the result to a monitor selected by index, name or "primary".
	Monitor string
	// Cursor embeds the pointer in portal captures.
	Cursor bool
	// X11 skips the portal and reads the root window directly.
	X11 bool
}

// MonitorInfo describes an individual monitor in the display layout.
type MonitorInfo struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

var (
	portalScreenshotFn = portalScreenshot
	x11ScreenshotFn    = x11Screenshot
	listMonitorsFn     = listMonitors
)

// Screenshot captures the desktop. The portal is tried first. When it is
// missing and the capture is not interactive the X11 root window is read.
func Screenshot(ctx context.Context, opts Options) (*image.RGBA, error) {
	img, err := grab(ctx, opts)
	if err != nil {
		return nil, err
	}
	if opts.Monitor == "" {
		return img, nil
	}
	monitors, err := listMonitorsFn()
	if err != nil {
		return nil, fmt.Errorf("capture monitor %q: %w", opts.Monitor, err)
	}
	mon, err := FindMonitor(monitors, opts.Monitor)
	if err != nil {
		return nil, err
	}
	return cropToRect(img, mon.Rect)
}

func grab(ctx context.Context, opts Options) (*image.RGBA, error) {
	if opts.X11 {
		return x11ScreenshotFn()
	}
	img, err := portalScreenshotFn(ctx, opts)
	if err == nil {
		return img, nil
	}
	if opts.Interactive || !isPortalUnsupportedError(err) {
		return nil, err
	}
	img, xerr := x11ScreenshotFn()
	if xerr != nil {
		return nil, fmt.Errorf("screenshot: %v; x11 fallback failed: %w", err, xerr)
	}
	return img, nil
}

// ListMonitors retrieves the monitor layout.
func ListMonitors() ([]MonitorInfo, error) {
	return listMonitorsFn()
}

// FindMonitor resolves a monitor selector against the provided list.
func FindMonitor(monitors []MonitorInfo, selector string) (MonitorInfo, error) {
	if len(monitors) == 0 {
		return MonitorInfo{}, errNoMonitors
	}
	sel := strings.ToLower(strings.TrimSpace(selector))
	if sel == "" {
		return monitors[0], nil
	}
	if sel == "primary" {
		for _, mon := range monitors {
			if mon.Primary {
				return mon, nil
			}
		}
		return monitors[0], nil
	}
	if idx, err := strconv.Atoi(strings.TrimPrefix(sel, "#")); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return MonitorInfo{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, mon := range monitors {
		if strings.Contains(strings.ToLower(mon.Name), sel) {
			return mon, nil
		}
	}
	return MonitorInfo{}, fmt.Errorf("monitor %q not found", selector)
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}
