// Package notify announces completed exports and clipboard copies.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/markup/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventExport fires when an annotated image is written to disk.
	EventExport Event = "export"
	// EventCopy fires when an annotated image is copied to the clipboard.
	EventCopy Event = "copy"
)

// Preferences describes notification behaviour.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the default notification text.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: platform.AppName,
		Templates: map[Event]string{
			EventExport: "Exported %s",
			EventCopy:   "Copied %s to clipboard",
		},
	}
}

// LoadPreferences applies MARKUP_NOTIFY_* environment overrides to the
// defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("MARKUP_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	if v := strings.TrimSpace(os.Getenv("MARKUP_NOTIFY_EXPORT_TEXT")); v != "" {
		prefs.Templates[EventExport] = v
	}
	if v := strings.TrimSpace(os.Getenv("MARKUP_NOTIFY_COPY_TEXT")); v != "" {
		prefs.Templates[EventCopy] = v
	}
	return prefs
}

var send = platform.Notify

// Notifier sends desktop notifications for enabled events. A nil Notifier
// is silent.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New creates a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	n := &Notifier{
		prefs:   Preferences{Title: prefs.Title, Templates: make(map[Event]string, len(prefs.Templates))},
		enabled: map[Event]bool{},
	}
	for k, v := range prefs.Templates {
		n.prefs.Templates[k] = v
	}
	return n
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Export announces a written file, showing it as the icon when it exists.
func (n *Notifier) Export(path string) {
	if !n.enabledFor(EventExport) {
		return
	}
	opts := platform.Options{}
	detail := path
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, err := os.Stat(abs); err == nil && strings.EqualFold(filepath.Ext(abs), ".png") {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventExport, detail, opts)
}

// Copy announces a clipboard copy with a preview of img.
func (n *Notifier) Copy(img image.Image) {
	if !n.enabledFor(EventCopy) {
		return
	}
	opts := platform.Options{}
	if img != nil {
		path, cleanup, err := createPreview(img)
		if err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	detail := "image"
	if img != nil {
		detail = fmt.Sprintf("%dx%d image", img.Bounds().Dx(), img.Bounds().Dy())
	}
	n.dispatch(EventCopy, detail, opts)
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	tmpl := strings.TrimSpace(n.prefs.Templates[event])
	if tmpl == "" {
		return
	}
	body := tmpl
	if strings.Contains(tmpl, "%s") {
		body = fmt.Sprintf(tmpl, strings.TrimSpace(detail))
	}
	if err := send(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

func createPreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "markup-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, fmt.Errorf("encode preview: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}
