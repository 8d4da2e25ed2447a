package script

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/example/markup/internal/editor"
	"github.com/example/markup/internal/export"
	"github.com/example/markup/internal/render"
	"github.com/example/markup/internal/theme"
)

func commands() map[string]command {
	pointer := func(kind editor.EventKind) command {
		return command{"X Y", func(s *Session, args []string) error {
			p, err := floats(args, 2)
			if err != nil {
				return err
			}
			s.editor.Handle(editor.MouseAt(kind, p[0], p[1]))
			return nil
		}}
	}
	mode := command{"NAME", (*Session).mode}
	return map[string]command{
		"size":     {"W H", (*Session).size},
		"load":     {"SOURCE", (*Session).load},
		"mode":     mode,
		"tool":     mode,
		"click":    pointer(editor.EventClick),
		"dblclick": pointer(editor.EventDoubleClick),
		"press":    pointer(editor.EventPress),
		"move":     pointer(editor.EventMove),
		"release":  pointer(editor.EventRelease),
		"drag":     {"X1 Y1 X2 Y2", (*Session).drag},
		"key":      {"enter|escape|backspace|delete", (*Session).key},
		"type":     {"TEXT", (*Session).typeText},
		"color":    {"NAME|#RRGGBB[AA]", (*Session).color},
		"width":    {"N", (*Session).width},
		"undo":     {"", func(s *Session, _ []string) error { s.editor.Undo(); return nil }},
		"clear":    {"", func(s *Session, _ []string) error { s.editor.ClearAll(); return nil }},
		"delete":   {"", func(s *Session, _ []string) error { s.editor.DeleteSelected(); return nil }},
		"shadow":   {"on|off|RADIUS", (*Session).setShadow},
		"export":   {"PATH", (*Session).export},
		"copy":     {"", (*Session).copy},
		"status":   {"", (*Session).status},
		"shapes":   {"", (*Session).shapes},
	}
}

func (s *Session) size(args []string) error {
	v, err := floats(args, 2)
	if err != nil {
		return err
	}
	w, h := int(v[0]), int(v[1])
	if w <= 0 || h <= 0 {
		return fmt.Errorf("size must be positive")
	}
	s.geom.Width, s.geom.Height = float64(w), float64(h)
	s.canvas.SetSize(w, h)
	s.editor.Resize()
	return nil
}

// load blocks until the editor has applied the result.
func (s *Session) load(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected one source")
	}
	if !s.canLoad {
		return fmt.Errorf("no image loader configured")
	}
	s.editor.LoadImage(args[0])
	(<-s.posted)()
	if st := s.editor.Status(); strings.HasPrefix(st, "could not load image") {
		return fmt.Errorf("%s", st)
	}
	return nil
}

func (s *Session) mode(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected a mode name")
	}
	m, ok := editor.ParseMode(strings.ToLower(args[0]))
	if !ok {
		return fmt.Errorf("unknown mode %q", args[0])
	}
	s.editor.SetMode(m)
	return nil
}

func (s *Session) drag(args []string) error {
	v, err := floats(args, 4)
	if err != nil {
		return err
	}
	s.editor.Handle(editor.MouseAt(editor.EventPress, v[0], v[1]))
	s.editor.Handle(editor.MouseAt(editor.EventMove, v[2], v[3]))
	s.editor.Handle(editor.MouseAt(editor.EventRelease, v[2], v[3]))
	return nil
}

var keyNames = map[string]editor.KeyCode{
	"enter":     editor.KeyEnter,
	"return":    editor.KeyEnter,
	"escape":    editor.KeyEscape,
	"esc":       editor.KeyEscape,
	"backspace": editor.KeyBackspace,
	"delete":    editor.KeyDelete,
}

func (s *Session) key(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected a key name")
	}
	code, ok := keyNames[strings.ToLower(args[0])]
	if !ok {
		return fmt.Errorf("unknown key %q", args[0])
	}
	s.editor.HandleKey(editor.KeyEvent{Code: code})
	return nil
}

func (s *Session) typeText(args []string) error {
	for _, r := range strings.Join(args, " ") {
		s.editor.HandleKey(editor.KeyEvent{Code: editor.KeyRune, Rune: r})
	}
	return nil
}

func (s *Session) color(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected a color")
	}
	c, err := theme.ParseColor(args[0])
	if err != nil {
		return err
	}
	s.editor.SetColor(c)
	return nil
}

func (s *Session) width(args []string) error {
	v, err := floats(args, 1)
	if err != nil {
		return err
	}
	if v[0] <= 0 {
		return fmt.Errorf("width must be positive")
	}
	s.editor.SetStrokeWidth(v[0])
	return nil
}

func (s *Session) setShadow(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected on, off or a radius")
	}
	switch strings.ToLower(args[0]) {
	case "off":
		s.shadow = nil
		return nil
	case "on":
		o := render.DefaultShadowOptions()
		s.shadow = &o
		return nil
	}
	r, err := strconv.Atoi(args[0])
	if err != nil || r < 0 {
		return fmt.Errorf("invalid shadow radius %q", args[0])
	}
	o := render.DefaultShadowOptions()
	o.Radius = r
	s.shadow = &o
	return nil
}

func (s *Session) export(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected an output path")
	}
	img, err := s.editor.Export()
	if err != nil {
		return err
	}
	return s.exporter.Save(args[0], img, export.Options{Shadow: s.shadow})
}

func (s *Session) copy(args []string) error {
	img, err := s.editor.Export()
	if err != nil {
		return err
	}
	return s.exporter.Copy(img)
}

func (s *Session) status(_ []string) error {
	_, err := fmt.Fprintf(s.out, "mode=%s shapes=%d undo=%d status=%q\n",
		s.editor.Mode(), s.editor.Scene().Len(), s.editor.UndoLen(), s.editor.Status())
	return err
}

func (s *Session) shapes(_ []string) error {
	sel := s.editor.Selection().Selected()
	for i, sh := range s.editor.Scene().Shapes() {
		b := sh.Bounds()
		mark := ""
		if sh == sel {
			mark = " *"
		}
		if _, err := fmt.Fprintf(s.out, "%d %s %.0f,%.0f %.0fx%.0f rot=%.0f%s\n",
			i, sh.Kind(), b.Min.X, b.Min.Y, b.Width(), b.Height(), sh.Rotation, mark); err != nil {
			return err
		}
	}
	return nil
}
