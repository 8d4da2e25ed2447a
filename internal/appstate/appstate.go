// Package appstate hosts the editor in a shiny window: toolbar, status bar,
// text field overlay and the translation of window events into editor
// input.
package appstate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"

	"github.com/example/markup/internal/editor"
	"github.com/example/markup/internal/theme"
)

const (
	buttonHeight = 24
	swatchSize   = 16
	swatchStep   = 18
	widthRow     = 16
	statusHeight = 24
)

var toolbarWidth = 64

// PaletteColor is a named swatch offered in the toolbar.
type PaletteColor struct {
	Name  string
	Color color.RGBA
}

var palette = []PaletteColor{
	{"Black", color.RGBA{0, 0, 0, 255}},
	{"White", color.RGBA{255, 255, 255, 255}},
	{"Red", color.RGBA{255, 0, 0, 255}},
	{"Lime", color.RGBA{0, 255, 0, 255}},
	{"Blue", color.RGBA{0, 0, 255, 255}},
	{"Yellow", color.RGBA{255, 255, 0, 255}},
	{"Cyan", color.RGBA{0, 255, 255, 255}},
	{"Magenta", color.RGBA{255, 0, 255, 255}},
	{"Maroon", color.RGBA{128, 0, 0, 255}},
	{"Green", color.RGBA{0, 128, 0, 255}},
	{"Navy", color.RGBA{0, 0, 128, 255}},
	{"Orange", color.RGBA{255, 165, 0, 255}},
}

var widths = []float64{2, 4, 6, 8, 12}

// PaletteColors returns the toolbar swatches.
func PaletteColors() []PaletteColor {
	return append([]PaletteColor(nil), palette...)
}

// toolLabels are shown on the mode buttons. The letter is the shortcut.
var toolLabels = map[editor.Mode]string{
	editor.ModeSelect:     "S:Select",
	editor.ModeAddRect:    "X:Rect",
	editor.ModeAddCircle:  "O:Circle",
	editor.ModeAddText:    "T:Text",
	editor.ModeAddLine:    "L:Line",
	editor.ModeAddArrow:   "A:Arrow",
	editor.ModePaintBrush: "B:Brush",
}

var toolRunes = map[editor.Mode]rune{
	editor.ModeSelect:     's',
	editor.ModeAddRect:    'x',
	editor.ModeAddCircle:  'o',
	editor.ModeAddText:    't',
	editor.ModeAddLine:    'l',
	editor.ModeAddArrow:   'a',
	editor.ModePaintBrush: 'b',
}

var goregularFont *opentype.Font

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	goregularFont = f

	// The toolbar must fit the widest label.
	d := &font.Drawer{Face: basicfont.Face7x13}
	for _, lbl := range toolLabels {
		if w := d.MeasureString(lbl).Ceil() + 8; w > toolbarWidth {
			toolbarWidth = w
		}
	}
}

var faces sync.Map // map[float64]font.Face

func faceForSize(size float64) (font.Face, error) {
	if size <= 0 {
		size = editor.DefaultFontSize
	}
	if f, ok := faces.Load(size); ok {
		return f.(font.Face), nil
	}
	face, err := opentype.NewFace(goregularFont, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	faces.Store(size, face)
	return face, nil
}

// layout places the chrome around the editor canvas for a window size.
type layout struct {
	width, height int
	tools         []image.Rectangle
	swatches      []image.Rectangle
	widths        []image.Rectangle
	status        image.Rectangle
	canvas        image.Rectangle
}

func computeLayout(w, h int) layout {
	l := layout{width: w, height: h}
	y := 0
	for range editor.Modes() {
		l.tools = append(l.tools, image.Rect(0, y, toolbarWidth, y+buttonHeight))
		y += buttonHeight
	}
	y += 4
	x := 4
	for range palette {
		l.swatches = append(l.swatches, image.Rect(x, y, x+swatchSize, y+swatchSize))
		x += swatchStep
		if x+swatchSize > toolbarWidth {
			x = 4
			y += swatchStep
		}
	}
	if x != 4 {
		y += swatchStep
	}
	y += 4
	for range widths {
		l.widths = append(l.widths, image.Rect(0, y, toolbarWidth, y+widthRow))
		y += widthRow
	}
	l.status = image.Rect(0, max(h-statusHeight, 0), w, h)
	l.canvas = image.Rect(toolbarWidth, 0, max(w, toolbarWidth), l.status.Min.Y)
	return l
}

// hitIndex returns the index of the rectangle containing p, or -1.
func hitIndex(rects []image.Rectangle, p image.Point) int {
	for i, r := range rects {
		if p.In(r) {
			return i
		}
	}
	return -1
}

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
type Button interface {
	Draw(dst *image.RGBA, th *theme.Theme, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states. The cache
// is dropped when the rectangle or theme changes.
type CacheButton struct {
	Button
	theme *theme.Theme
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, th *theme.Theme, state ButtonState) {
	if cb.theme != th {
		cb.theme = th
		cb.cache = [3]*image.RGBA{}
	}
	if cb.cache[state] == nil {
		img := image.NewRGBA(cb.Button.Rect())
		cb.Button.Draw(img, th, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

// labelButton is a flat button with a text label. It serves as both a tool
// button and a status bar shortcut.
type labelButton struct {
	label    string
	rect     image.Rectangle
	onSelect func()
}

func buttonFill(th *theme.Theme, state ButtonState) color.RGBA {
	switch state {
	case StateHover:
		return th.ButtonBackgroundHover
	case StatePressed:
		return th.ButtonBackgroundActive
	}
	return th.ButtonBackground
}

func (b *labelButton) Draw(dst *image.RGBA, th *theme.Theme, state ButtonState) {
	draw.Draw(dst, b.rect, image.NewUniform(buttonFill(th, state)), image.Point{}, draw.Src)
	drawRect(dst, b.rect, th.ButtonBorder)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.ButtonText), Face: basicfont.Face7x13,
		Dot: fixed.P(b.rect.Min.X+4, b.rect.Min.Y+(b.rect.Dy()+9)/2)}
	d.DrawString(b.label)
}

func (b *labelButton) Rect() image.Rectangle     { return b.rect }
func (b *labelButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *labelButton) Activate() {
	if b.onSelect != nil {
		b.onSelect()
	}
}

// KeyShortcut binds a key to an action. Rune matches case-insensitively;
// Code is used for keys without a printable rune.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

func (sc KeyShortcut) matches(e key.Event) bool {
	mods := e.Modifiers & (key.ModControl | key.ModAlt | key.ModMeta)
	if mods != sc.Modifiers {
		return false
	}
	if sc.Rune != 0 {
		return toLower(e.Rune) == sc.Rune
	}
	return sc.Code != key.CodeUnknown && e.Code == sc.Code
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func drawRect(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	u := image.NewUniform(c)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), u, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), u, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), u, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Over)
}

func drawString(dst *image.RGBA, face font.Face, c color.RGBA, x, baseline int, s string) int {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face, Dot: fixed.P(x, baseline)}
	d.DrawString(s)
	return d.Dot.X.Ceil()
}

func measure(face font.Face, s string) int {
	return (&font.Drawer{Face: face}).MeasureString(s).Ceil()
}

// drawWidthRow previews a stroke width with a bar of that thickness.
func drawWidthRow(dst *image.RGBA, th *theme.Theme, r image.Rectangle, w float64, col color.RGBA, state ButtonState) {
	draw.Draw(dst, r, image.NewUniform(buttonFill(th, state)), image.Point{}, draw.Src)
	drawString(dst, basicfont.Face7x13, th.ButtonText, r.Min.X+4, r.Min.Y+12, fmt.Sprintf("%g", w))
	half := int(math.Max(w/2, 0.5))
	cy := r.Min.Y + r.Dy()/2
	bar := image.Rect(r.Min.X+24, cy-half, r.Max.X-4, cy-half+max(int(w), 1))
	draw.Draw(dst, bar.Intersect(r), image.NewUniform(col), image.Point{}, draw.Over)
}
