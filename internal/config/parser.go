package config

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/example/markup/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	var current *theme.Theme
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			current = nil

			if name, ok := strings.CutPrefix(section, "theme."); ok {
				// start with defaults so missing keys are fine
				current = theme.Default()
				current.Name = name
				cfg.Themes[name] = current
			}
			continue
		}

		key, value, ok := splitKV(line)
		if !ok {
			continue
		}

		var err error
		switch {
		case current != nil:
			err = setThemeField(current, key, value)
		case section == "editor":
			err = setEditorField(&cfg.Editor, key, value)
		case section == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case section == "":
			setRootField(cfg, key, value)
		}
		if err != nil {
			if section == "" {
				return nil, fmt.Errorf("line %d: root section: %w", lineNo, err)
			}
			return nil, fmt.Errorf("line %d: section [%s]: %w", lineNo, section, err)
		}
	}

	return cfg, scanner.Err()
}

// splitKV accepts "key = value" and "Key: value". Surrounding quotes are
// removed from the value.
func splitKV(line string) (string, string, bool) {
	sep := "="
	if !strings.Contains(line, "=") {
		sep = ":"
	}
	key, value, ok := strings.Cut(line, sep)
	if !ok {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
		value = value[1 : len(value)-1]
	}
	return key, value, true
}

func setRootField(cfg *Config, key, value string) {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "output":
		cfg.Output = value
	}
}

func setEditorField(e *Editor, key, value string) error {
	switch strings.ToLower(key) {
	case "color":
		c, err := theme.ParseColor(value)
		if err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		e.Color = c
	case "stroke_width":
		w, err := parsePositive(key, value)
		if err != nil {
			return err
		}
		e.StrokeWidth = w
	case "font_size":
		s, err := parsePositive(key, value)
		if err != nil {
			return err
		}
		e.FontSize = s
	case "declared_draggable":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for key %s: %w", key, err)
		}
		e.DeclaredDraggable = b
	}
	return nil
}

func parsePositive(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	if f <= 0 {
		return 0, fmt.Errorf("key %s must be positive, got %v", key, f)
	}
	return f, nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "export":
		n.Export = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func setThemeField(t *theme.Theme, key, value string) error {
	if strings.EqualFold(key, "Name") {
		t.Name = value
		return nil
	}

	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !strings.EqualFold(f.Name, key) {
			continue
		}
		if f.Type != reflect.TypeOf(color.RGBA{}) {
			return nil
		}
		col, err := theme.ParseColor(value)
		if err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		val.Field(i).Set(reflect.ValueOf(col))
		return nil
	}
	return nil // unknown keys are ignored
}
