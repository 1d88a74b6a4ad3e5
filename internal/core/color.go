package core

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a "#rrggbb" hex color tag. The empty string means the terminal's
// default foreground.
type Color string

// Colors used by the HUD and overlays.
const (
	ColorDefault    Color = ""
	ColorBackground Color = "#000000"
	ColorWhite      Color = "#ffffff"
	ColorGray       Color = "#8a8a8a"
	ColorYellow     Color = "#ffd75f"
	ColorRed        Color = "#ff5f5f"
)

// ParseColor validates a hex color string and returns it normalized to
// lowercase "#rrggbb".
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return ColorDefault, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color(c.Hex()), nil
}

// Darken returns the color with its lightness reduced by amount (0..1).
// Unparseable colors are returned unchanged.
func (c Color) Darken(amount float64) Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return c
	}
	h, s, l := col.Hsl()
	l *= 1 - ClampF(amount, 0, 1)
	return Color(colorful.Hsl(h, s, l).Clamped().Hex())
}

// Fade blends the color toward bg, where alpha 1 keeps the color and alpha 0
// yields bg. The terminal has no transparency, so this stands in for it.
func (c Color) Fade(bg Color, alpha float64) Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return c
	}
	back, err := colorful.Hex(string(bg))
	if err != nil {
		return c
	}
	return Color(back.BlendRgb(col, ClampF(alpha, 0, 1)).Clamped().Hex())
}
