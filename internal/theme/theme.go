package theme

import (
	"image/color"
)

// Theme defines the colours of the editor window around the canvas.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Behind the canvas
	Foreground color.RGBA // Status and label text

	// Bars
	ToolbarBackground color.RGBA
	StatusBackground  color.RGBA

	// Tool Buttons
	ButtonBackground       color.RGBA
	ButtonBackgroundHover  color.RGBA
	ButtonBackgroundActive color.RGBA
	ButtonText             color.RGBA
	ButtonBorder           color.RGBA

	// Canvas overlays
	SelectionOutline color.RGBA
	MarqueeOutline   color.RGBA
	CheckerLight     color.RGBA
	CheckerDark      color.RGBA
}

// Default returns the built in light theme.
func Default() *Theme {
	return &Theme{
		Name:                   "Default",
		Background:             color.RGBA{128, 128, 128, 255},
		Foreground:             color.RGBA{0, 0, 0, 255},
		ToolbarBackground:      color.RGBA{220, 220, 220, 255},
		StatusBackground:       color.RGBA{235, 235, 235, 255},
		ButtonBackground:       color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover:  color.RGBA{180, 180, 180, 255},
		ButtonBackgroundActive: color.RGBA{150, 150, 150, 255},
		ButtonText:             color.RGBA{0, 0, 0, 255},
		ButtonBorder:           color.RGBA{0, 0, 0, 255},
		SelectionOutline:       color.RGBA{0, 0, 255, 255},
		MarqueeOutline:         color.RGBA{0, 0, 0, 255},
		CheckerLight:           color.RGBA{220, 220, 220, 255},
		CheckerDark:            color.RGBA{192, 192, 192, 255},
	}
}
