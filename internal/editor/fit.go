package editor

// Placement is where a background image sits inside the container.
type Placement struct {
	Scale         float64
	X, Y          float64
	Width, Height float64
}

// ContainFit scales an iw×ih image uniformly so it lies entirely inside a
// w×h container and touches at least one edge. The result is centred.
func ContainFit(w, h float64, iw, ih int) Placement {
	if iw <= 0 || ih <= 0 || w <= 0 || h <= 0 {
		return Placement{}
	}
	fw, fh := float64(iw), float64(ih)
	var s float64
	if fw/fh >= w/h {
		s = w / fw
	} else {
		s = h / fh
	}
	// Near-equal aspect ratios can still overflow one axis after the
	// first pass.
	if fw*s > w {
		s = w / fw
	}
	if fh*s > h {
		s = h / fh
	}
	pw, ph := fw*s, fh*s
	return Placement{
		Scale:  s,
		X:      (w - pw) / 2,
		Y:      (h - ph) / 2,
		Width:  pw,
		Height: ph,
	}
}
