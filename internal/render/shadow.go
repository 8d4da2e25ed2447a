package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow placed behind an exported image.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions returns a soft shadow suited to annotated images.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  16,
		Offset:  image.Pt(8, 8),
		Opacity: 0.5,
	}
}

// Shadow returns img on a transparent canvas grown to fit a blurred drop
// shadow. The second result is where img's top-left corner landed. With a
// zero opacity img is copied unchanged.
func Shadow(img image.Image, o ShadowOptions) (*image.RGBA, image.Point) {
	src := img.Bounds()
	if o.Opacity <= 0 || src.Empty() {
		out := image.NewRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))
		draw.Draw(out, out.Bounds(), img, src.Min, draw.Src)
		return out, image.Point{}
	}
	o.Opacity = min(o.Opacity, 1)
	o.Radius = max(o.Radius, 0)

	local := src.Sub(src.Min)
	shadow := local.Inset(-o.Radius).Add(o.Offset)
	total := local.Union(shadow)
	origin := local.Min.Sub(total.Min)

	out := image.NewRGBA(image.Rect(0, 0, total.Dx(), total.Dy()))
	mask := image.NewAlpha(out.Bounds())
	draw.Draw(mask, local.Add(origin).Add(o.Offset), img, src.Min, draw.Src)
	boxBlur(mask.Pix, mask.Stride, total.Dx(), total.Dy(), o.Radius)

	ink := image.NewUniform(color.RGBA{A: uint8(o.Opacity*255 + 0.5)})
	draw.DrawMask(out, out.Bounds(), ink, image.Point{}, mask, image.Point{}, draw.Over)
	draw.Draw(out, local.Add(origin), img, src.Min, draw.Over)
	return out, origin
}

// boxBlur runs a horizontal then a vertical running-average pass over an
// 8-bit plane.
func boxBlur(pix []uint8, stride, w, h, r int) {
	if r <= 0 {
		return
	}
	line := make([]uint8, max(w, h))
	for y := 0; y < h; y++ {
		blurLine(pix[y*stride:], 1, w, r, line)
	}
	for x := 0; x < w; x++ {
		blurLine(pix[x:], stride, h, r, line)
	}
}

func blurLine(pix []uint8, step, n, r int, tmp []uint8) {
	sum, count := 0, 0
	for i := 0; i < r && i < n; i++ {
		sum += int(pix[i*step])
		count++
	}
	for i := 0; i < n; i++ {
		if j := i + r; j < n {
			sum += int(pix[j*step])
			count++
		}
		if j := i - r - 1; j >= 0 {
			sum -= int(pix[j*step])
			count--
		}
		tmp[i] = uint8(sum / count)
	}
	for i := 0; i < n; i++ {
		pix[i*step] = tmp[i]
	}
}
