package config

import (
	"fmt"
	"image/color"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/example/markup/internal/editor"
	"github.com/example/markup/internal/theme"
)

// ThemeEnv names the environment variable consulted by ThemeName.
const ThemeEnv = "MARKUP_THEME"

// Editor holds the defaults applied to new shapes.
type Editor struct {
	Color             color.RGBA
	StrokeWidth       float64
	FontSize          float64
	DeclaredDraggable bool
}

// Notify selects which actions raise a desktop notification.
type Notify struct {
	Export bool
	Copy   bool
}

// Config holds the application configuration.
type Config struct {
	Theme  string
	Output string
	Editor Editor
	Notify Notify
	Themes map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme: "", // empty lets the environment or the built-in default decide
		Editor: Editor{
			Color:       editor.DefaultColor,
			StrokeWidth: editor.DefaultStrokeWidth,
			FontSize:    editor.DefaultFontSize,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// ThemeName resolves the theme to use: flag, then $MARKUP_THEME, then the
// config file.
func (c *Config) ThemeName(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(ThemeEnv); env != "" {
		return env
	}
	return c.Theme
}

// LoadTheme resolves name against the themes defined in the config before
// falling back to l.
func (c *Config) LoadTheme(l *theme.Loader, name string) (*theme.Theme, error) {
	if t, ok := c.Themes[name]; ok {
		return t, nil
	}
	return l.Load(name)
}

// EditorOptions converts the editor defaults into editor options.
func (c *Config) EditorOptions() []editor.Option {
	return []editor.Option{
		editor.WithColor(c.Editor.Color),
		editor.WithStrokeWidth(c.Editor.StrokeWidth),
		editor.WithFontSize(c.Editor.FontSize),
		editor.WithDeclaredDraggable(c.Editor.DeclaredDraggable),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.Output != "" {
		fmt.Fprintf(&sb, "output = %s\n", c.Output)
	}
	sb.WriteString("\n")

	sb.WriteString("[editor]\n")
	fmt.Fprintf(&sb, "color = %s\n", theme.FormatColor(c.Editor.Color))
	fmt.Fprintf(&sb, "stroke_width = %g\n", c.Editor.StrokeWidth)
	fmt.Fprintf(&sb, "font_size = %g\n", c.Editor.FontSize)
	fmt.Fprintf(&sb, "declared_draggable = %v\n", c.Editor.DeclaredDraggable)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// sorted for deterministic output
	var names []string
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		writeTheme(&sb, c.Themes[name])
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeTheme(sb *strings.Builder, t *theme.Theme) {
	fmt.Fprintf(sb, "Name: %s\n", t.Name)
	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		col, ok := val.Field(i).Interface().(color.RGBA)
		if !ok {
			continue
		}
		fmt.Fprintf(sb, "%s: %s\n", typ.Field(i).Name, theme.FormatColor(col))
	}
}
