package editor

import (
	"strings"
	"sync"
)

// TextMeasure reports the advance width of s set at size. Renderers
// register their font metrics with SetTextMeasure so Text bounds wrap
// exactly like the drawn glyphs.
type TextMeasure func(s string, size float64) float64

var (
	measureMu sync.RWMutex
	measure   TextMeasure = estimateWidth
)

// SetTextMeasure installs m for Text layout. A nil m restores the built-in
// estimate.
func SetTextMeasure(m TextMeasure) {
	measureMu.Lock()
	defer measureMu.Unlock()
	if m == nil {
		m = estimateWidth
	}
	measure = m
}

func textMeasure() TextMeasure {
	measureMu.RLock()
	defer measureMu.RUnlock()
	return measure
}

// estimateWidth assumes every rune is half an em wide.
func estimateWidth(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * 0.5
}

// WrapText breaks s into lines no wider than width according to adv.
// Explicit newlines always break. A single word wider than width gets a
// line of its own.
func WrapText(s string, width float64, adv func(string) float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			next := cur + " " + w
			if width > 0 && adv(next) > width {
				lines = append(lines, cur)
				cur = w
				continue
			}
			cur = next
		}
		lines = append(lines, cur)
	}
	return lines
}

// Lines lays t out with the registered measure.
func (t *Text) Lines() []string {
	m := textMeasure()
	return WrapText(t.Text, t.Width, func(s string) float64 { return m(s, t.FontSize) })
}

// LineHeight is the distance between consecutive baselines.
func (t *Text) LineHeight() float64 { return t.FontSize * lineHeight }
