package theme

import (
	"embed"
	"image/color"
)

// EmbeddedThemes holds the themes shipped with the binary.
//
//go:embed defaults/*.theme
var EmbeddedThemes embed.FS

// Theme defines the color palette for the editor window.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background around the canvas
	Foreground color.RGBA // Default text color

	// Toolbar
	ToolbarBackground      color.RGBA
	ButtonBackground       color.RGBA
	ButtonBackgroundHover  color.RGBA
	ButtonBackgroundActive color.RGBA // Button of the active tool
	ButtonText             color.RGBA
	ButtonBorder           color.RGBA

	// Status bar
	StatusBackground color.RGBA
	StatusText       color.RGBA

	// Canvas
	Canvas           color.RGBA // Backdrop behind the fitted image
	SelectionOutline color.RGBA
	HandleFill       color.RGBA
	HandleStroke     color.RGBA

	// Text edit overlay
	FieldBackground color.RGBA
	FieldBorder     color.RGBA
	FieldText       color.RGBA
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:                   "Default",
		Background:             color.RGBA{220, 220, 220, 255},
		Foreground:             color.RGBA{0, 0, 0, 255},
		ToolbarBackground:      color.RGBA{220, 220, 220, 255},
		ButtonBackground:       color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover:  color.RGBA{180, 180, 180, 255},
		ButtonBackgroundActive: color.RGBA{150, 150, 150, 255},
		ButtonText:             color.RGBA{0, 0, 0, 255},
		ButtonBorder:           color.RGBA{0, 0, 0, 255},
		StatusBackground:       color.RGBA{235, 235, 235, 255},
		StatusText:             color.RGBA{40, 40, 40, 255},
		Canvas:                 color.RGBA{255, 255, 255, 255},
		SelectionOutline:       color.RGBA{0, 161, 255, 255},
		HandleFill:             color.RGBA{255, 255, 255, 255},
		HandleStroke:           color.RGBA{0, 161, 255, 255},
		FieldBackground:        color.RGBA{255, 255, 255, 230},
		FieldBorder:            color.RGBA{0, 161, 255, 255},
		FieldText:              color.RGBA{0, 0, 0, 255},
	}
}
