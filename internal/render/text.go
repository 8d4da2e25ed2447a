package render

import (
	"log"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/example/markup/internal/editor"
)

// metrics measures text for editor layout with the font the canvas draws.
type metrics struct {
	mu    sync.Mutex
	font  *text.FontSource
	faces map[float64]text.Face
}

func (m *metrics) advance(s string, size float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.faces[size]
	if !ok {
		f = m.font.Face(size)
		m.faces[size] = f
	}
	return f.Advance(s)
}

func init() {
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		log.Printf("text metrics: %v", err)
		return
	}
	m := &metrics{font: src, faces: map[float64]text.Face{}}
	editor.SetTextMeasure(m.advance)
}
