// Package render rasterises an editor scene with gg.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/example/markup/internal/editor"
	"github.com/example/markup/internal/theme"
)

const (
	arrowPointerLength = 10
	arrowPointerWidth  = 10
	layerCount         = 3
)

// Canvas is a retained-mode editor.Surface backed by a software rasteriser.
// It also implements editor.Exporter.
type Canvas struct {
	width, height int
	theme         *theme.Theme
	layers        [layerCount][]editor.Node
	font          *text.FontSource
	faces         map[float64]text.Face
	scaled        map[*editor.Background]*image.RGBA
	onDraw        func()
}

// NewCanvas returns a w×h canvas painted with th.
func NewCanvas(w, h int, th *theme.Theme) (*Canvas, error) {
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	if th == nil {
		th = theme.Default()
	}
	return &Canvas{
		width:  w,
		height: h,
		theme:  th,
		font:   src,
		faces:  map[float64]text.Face{},
		scaled: map[*editor.Background]*image.RGBA{},
	}, nil
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (int, int) { return c.width, c.height }

// SetSize changes the raster dimensions. Callers refit the scene afterwards.
func (c *Canvas) SetSize(w, h int) {
	c.width, c.height = w, h
}

// SetTheme swaps the palette used for the backdrop and handles.
func (c *Canvas) SetTheme(th *theme.Theme) { c.theme = th }

// OnDraw registers fn to be called whenever the scene requests a redraw.
func (c *Canvas) OnDraw(fn func()) { c.onDraw = fn }

func (c *Canvas) AddNode(l editor.Layer, n editor.Node) {
	c.layers[l] = append(c.layers[l], n)
}

func (c *Canvas) RemoveNode(l editor.Layer, id string) {
	nodes := c.layers[l]
	for i, n := range nodes {
		if n.NodeID() != id {
			continue
		}
		if bg, ok := n.(*editor.Background); ok {
			delete(c.scaled, bg)
		}
		c.layers[l] = append(nodes[:i], nodes[i+1:]...)
		return
	}
}

func (c *Canvas) RemoveChildren(l editor.Layer) {
	if l == editor.LayerBackground {
		clear(c.scaled)
	}
	c.layers[l] = nil
}

func (c *Canvas) Draw() {
	if c.onDraw != nil {
		c.onDraw()
	}
}

// Nodes returns the nodes retained on l.
func (c *Canvas) Nodes(l editor.Layer) []editor.Node {
	return append([]editor.Node(nil), c.layers[l]...)
}

// Render paints every layer. Handles are included when withHandles is set.
func (c *Canvas) Render(withHandles bool) (*image.RGBA, error) {
	if c.width <= 0 || c.height <= 0 {
		return nil, fmt.Errorf("render: empty canvas %dx%d", c.width, c.height)
	}
	dc := gg.NewContext(c.width, c.height)
	defer dc.Close()
	dc.ClearWithColor(gg.FromColor(c.theme.Canvas))

	for _, n := range c.layers[editor.LayerBackground] {
		if bg, ok := n.(*editor.Background); ok {
			c.drawBackground(dc, bg)
		}
	}
	for _, n := range c.layers[editor.LayerAnnotations] {
		sh, ok := n.(*editor.Shape)
		if !ok || sh.Hidden {
			continue
		}
		if err := c.drawShape(dc, sh); err != nil {
			return nil, fmt.Errorf("render %s: %w", sh.Kind(), err)
		}
	}
	if withHandles {
		for _, n := range c.layers[editor.LayerHandles] {
			h, ok := n.(*editor.Handles)
			if !ok || h.Hidden {
				continue
			}
			if err := c.drawHandles(dc, h); err != nil {
				return nil, fmt.Errorf("render handles: %w", err)
			}
		}
	}
	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		return nil, fmt.Errorf("render: unexpected image type %T", dc.Image())
	}
	return img, nil
}

// RenderToImage paints the scene without selection handles.
func (c *Canvas) RenderToImage() (image.Image, error) {
	return c.Render(false)
}

func (c *Canvas) drawBackground(dc *gg.Context, bg *editor.Background) {
	pl := bg.Placement
	w, h := int(math.Round(pl.Width)), int(math.Round(pl.Height))
	if bg.Image == nil || w <= 0 || h <= 0 {
		return
	}
	scaled, ok := c.scaled[bg]
	if !ok {
		scaled = image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), bg.Image, bg.Image.Bounds(), xdraw.Over, nil)
		c.scaled[bg] = scaled
	}
	dc.DrawImage(gg.ImageBufFromImage(scaled), math.Round(pl.X), math.Round(pl.Y))
}

func (c *Canvas) face(size float64) text.Face {
	if f, ok := c.faces[size]; ok {
		return f
	}
	f := c.font.Face(size)
	c.faces[size] = f
	return f
}

func (c *Canvas) drawShape(dc *gg.Context, sh *editor.Shape) error {
	dc.Push()
	defer dc.Pop()
	if sh.Rotation != 0 {
		ctr := sh.Bounds().Center()
		dc.RotateAbout(sh.Rotation*math.Pi/180, ctr.X, ctr.Y)
	}
	st := sh.Style
	dc.SetLineWidth(st.StrokeWidth)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.SetColor(st.Stroke)

	switch g := sh.Geometry.(type) {
	case *editor.Rect:
		dc.DrawRectangle(g.X, g.Y, g.Width, g.Height)
		return dc.Stroke()
	case *editor.Circle:
		dc.DrawCircle(g.X, g.Y, g.Radius)
		return dc.Stroke()
	case *editor.Line:
		polyline(dc, g.Points)
		return dc.Stroke()
	case *editor.Freehand:
		polyline(dc, g.Points)
		return dc.Stroke()
	case *editor.Arrow:
		abs := g.Abs()
		polyline(dc, abs[:])
		if err := dc.Stroke(); err != nil {
			return err
		}
		arrowHead(dc, abs[0], abs[1])
		dc.SetColor(st.Fill)
		return dc.Fill()
	case *editor.Text:
		c.drawText(dc, g, st.Fill)
		return nil
	}
	return fmt.Errorf("unknown geometry %T", sh.Geometry)
}

func polyline(dc *gg.Context, pts []editor.Point) {
	for i, p := range pts {
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
			continue
		}
		dc.LineTo(p.X, p.Y)
	}
}

func arrowHead(dc *gg.Context, from, to editor.Point) {
	angle := math.Atan2(to.Y-from.Y, to.X-from.X)
	sin, cos := math.Sincos(angle)
	bx := to.X - arrowPointerLength*cos
	by := to.Y - arrowPointerLength*sin
	hw := arrowPointerWidth / 2.0
	dc.MoveTo(to.X, to.Y)
	dc.LineTo(bx-hw*sin, by+hw*cos)
	dc.LineTo(bx+hw*sin, by-hw*cos)
	dc.ClosePath()
}

// drawText word-wraps t to its width. Rotation is not applied to glyphs.
func (c *Canvas) drawText(dc *gg.Context, t *editor.Text, col color.RGBA) {
	face := c.face(t.FontSize)
	dc.SetFont(face)
	dc.SetColor(col)
	lh := t.LineHeight()
	for i, line := range editor.WrapText(t.Text, t.Width, face.Advance) {
		dc.DrawString(line, t.X, t.Y+float64(i)*lh+face.Metrics().Ascent)
	}
}

func (c *Canvas) drawHandles(dc *gg.Context, h *editor.Handles) error {
	sh := h.Shape()
	dc.Push()
	defer dc.Pop()
	if sh.Rotation != 0 {
		ctr := sh.Bounds().Center()
		dc.RotateAbout(sh.Rotation*math.Pi/180, ctr.X, ctr.Y)
	}
	th := c.theme
	b := h.Outline()
	dc.SetLineWidth(1)
	dc.SetColor(th.SelectionOutline)
	dc.DrawRectangle(b.Min.X, b.Min.Y, b.Width(), b.Height())
	rp := h.RotatePoint()
	dc.MoveTo(rp.X, rp.Y)
	dc.LineTo(rp.X, b.Min.Y)
	if err := dc.Stroke(); err != nil {
		return err
	}

	for _, r := range h.ResizeRects() {
		dc.DrawRectangle(r.Min.X, r.Min.Y, r.Width(), r.Height())
	}
	dc.DrawCircle(rp.X, rp.Y, editor.HandleSize/2)
	dc.SetColor(th.HandleFill)
	if err := dc.FillPreserve(); err != nil {
		return err
	}
	dc.SetColor(th.HandleStroke)
	return dc.Stroke()
}
