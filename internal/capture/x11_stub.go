//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import "image"

func x11Screenshot() (*image.RGBA, error) { return nil, ErrUnsupported }

func listMonitors() ([]MonitorInfo, error) { return nil, ErrUnsupported }
