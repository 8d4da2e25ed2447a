// Package script drives an editor from text commands without a window.
// It backs the script subcommand and the end-to-end tests.
package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/example/markup/internal/editor"
	"github.com/example/markup/internal/export"
	"github.com/example/markup/internal/render"
	"github.com/example/markup/internal/theme"
)

// DefaultWidth and DefaultHeight size the canvas until a size command runs.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// ErrUnknownCommand is returned for lines that name no command.
var ErrUnknownCommand = errors.New("unknown command")

// Session owns a headless editor and its canvas.
type Session struct {
	editor   *editor.Editor
	canvas   *render.Canvas
	geom     *editor.FixedContainer
	exporter *export.Exporter
	posted   chan func()
	out      io.Writer
	shadow   *render.ShadowOptions
	cmds     map[string]command
	canLoad  bool
}

type command struct {
	usage string
	run   func(s *Session, args []string) error
}

type config struct {
	loader   editor.ImageLoader
	exporter *export.Exporter
	theme    *theme.Theme
	out      io.Writer
	ctx      context.Context
	editor   []editor.Option
}

// Option configures a Session.
type Option func(*config)

// WithLoader sets the image source resolver used by load.
func WithLoader(l editor.ImageLoader) Option { return func(c *config) { c.loader = l } }

// WithExporter sets the writer used by export and copy.
func WithExporter(x *export.Exporter) Option { return func(c *config) { c.exporter = x } }

// WithTheme sets the canvas palette.
func WithTheme(th *theme.Theme) Option { return func(c *config) { c.theme = th } }

// WithOutput sets where status and listing commands print.
func WithOutput(w io.Writer) Option { return func(c *config) { c.out = w } }

// WithContext bounds image loads.
func WithContext(ctx context.Context) Option { return func(c *config) { c.ctx = ctx } }

// WithEditorOptions passes extra options to the editor.
func WithEditorOptions(opts ...editor.Option) Option {
	return func(c *config) { c.editor = append(c.editor, opts...) }
}

// New builds a Session with a DefaultWidth×DefaultHeight canvas.
func New(opts ...Option) (*Session, error) {
	cfg := config{out: io.Discard, ctx: context.Background()}
	for _, o := range opts {
		o(&cfg)
	}
	canvas, err := render.NewCanvas(DefaultWidth, DefaultHeight, cfg.theme)
	if err != nil {
		return nil, err
	}
	if cfg.exporter == nil {
		cfg.exporter = export.New()
	}
	s := &Session{
		canvas:   canvas,
		geom:     &editor.FixedContainer{Width: DefaultWidth, Height: DefaultHeight},
		exporter: cfg.exporter,
		posted:   make(chan func(), 1),
		out:      cfg.out,
		cmds:     commands(),
		canLoad:  cfg.loader != nil,
	}
	eopts := append([]editor.Option{
		editor.WithSurface(canvas),
		editor.WithContainer(s.geom),
		editor.WithExporter(canvas),
		editor.WithScheduler(func(fn func()) { s.posted <- fn }),
		editor.WithContext(cfg.ctx),
	}, cfg.editor...)
	if cfg.loader != nil {
		eopts = append(eopts, editor.WithLoader(cfg.loader))
	}
	s.editor = editor.New(eopts...)
	return s, nil
}

// Editor exposes the driven editor.
func (s *Session) Editor() *editor.Editor { return s.editor }

// Canvas exposes the render target.
func (s *Session) Canvas() *render.Canvas { return s.canvas }

// Run executes each line of r until EOF or an exit command. Blank lines and
// lines starting with # are skipped. The first failing line stops the run.
func (s *Session) Run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		done, err := s.Exec(sc.Text())
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		if done {
			return nil
		}
	}
	return sc.Err()
}

// Exec runs a single command line. done reports an exit command.
func (s *Session) Exec(line string) (done bool, err error) {
	args, err := Split(line)
	if err != nil {
		return false, err
	}
	if len(args) == 0 || strings.HasPrefix(args[0], "#") {
		return false, nil
	}
	name := strings.ToLower(args[0])
	if name == "exit" || name == "quit" {
		return true, nil
	}
	cmd, ok := s.cmds[name]
	if !ok {
		return false, fmt.Errorf("%w %q", ErrUnknownCommand, args[0])
	}
	if err := cmd.run(s, args[1:]); err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	return false, nil
}

// Usage lists the commands and their arguments.
func (s *Session) Usage() []string {
	out := make([]string, 0, len(s.cmds))
	for name, c := range s.cmds {
		out = append(out, strings.TrimSpace(name+" "+c.usage))
	}
	sort.Strings(out)
	return out
}

// Split breaks a line into words. Double quotes group words and \" escapes a
// quote inside them.
func Split(line string) ([]string, error) {
	var (
		out     []string
		cur     strings.Builder
		inQuote bool
		started bool
	)
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case inQuote && ch == '\\' && i+1 < len(line) && line[i+1] == '"':
			cur.WriteByte('"')
			i++
		case ch == '"':
			inQuote = !inQuote
			started = true
		case !inQuote && (ch == ' ' || ch == '\t'):
			if started {
				out = append(out, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteByte(ch)
			started = true
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated quote")
	}
	if started {
		out = append(out, cur.String())
	}
	return out, nil
}

func floats(args []string, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("expected %d numbers, got %d", n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out[i] = v
	}
	return out, nil
}
