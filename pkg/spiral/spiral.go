package spiral

import (
	"math"
	"unicode/utf8"
)

// DefaultCanvasSize is the side length of the square layout area used when
// none is given.
const DefaultCanvasSize = 650.0

// charWidthRatio approximates the advance width of a glyph as a fraction of
// its font size (monospaced approximation).
const charWidthRatio = 0.6

// tangentOffset rotates glyphs from radial to tangential orientation.
const tangentOffset = 90.0

// Config holds the caller-facing layout hints.
type Config struct {
	// CanvasSize is the side length of the square layout area. Coordinates
	// are emitted in the same units. Must be finite and positive; the
	// package does not check.
	CanvasSize float64 `json:"canvasSize"`

	// PrintMode selects the print column of the parameter table.
	PrintMode bool `json:"printMode"`
}

// DefaultConfig returns the screen configuration on a 650 unit canvas.
func DefaultConfig() Config {
	return Config{CanvasSize: DefaultCanvasSize}
}

// WithDefaults returns c with a zero CanvasSize replaced by
// DefaultCanvasSize. Other values are returned unchanged.
func (c Config) WithDefaults() Config {
	if c.CanvasSize == 0 {
		c.CanvasSize = DefaultCanvasSize
	}
	return c
}

// Glyph is the placement of a single character.
type Glyph struct {
	Char          string  `json:"char"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Angle         float64 `json:"angle"` // degrees
	FontSize      float64 `json:"fontSize"`
	LetterSpacing float64 `json:"letterSpacing"`
}

// Result bundles the derived parameters with the placements they produced.
type Result struct {
	Params Params  `json:"params"`
	Glyphs []Glyph `json:"glyphs"`
}

// Layout places text on a spiral using cfg. It is shorthand for
// Compute(text, cfg).Glyphs.
func Layout(text string, cfg Config) []Glyph {
	return Compute(text, cfg).Glyphs
}

// Compute selects parameters for text and integrates the spiral.
// A zero CanvasSize in cfg falls back to DefaultCanvasSize.
func Compute(text string, cfg Config) Result {
	cfg = cfg.WithDefaults()
	p := Select(utf8.RuneCountInString(text), cfg.PrintMode)
	return Result{Params: p, Glyphs: Integrate(text, cfg.CanvasSize, p)}
}

// Integrate walks text once and returns one Glyph per rune, in order.
//
// Each glyph is placed at the angle and radius reached before its own step:
// the first glyph always sits at angle 0 on p.StartRadius. After emission
// the angle advances by the glyph's width divided by the current radius and
// the radius grows by p.FontSize*p.PitchMultiplier per full turn.
func Integrate(text string, canvasSize float64, p Params) []Glyph {
	if text == "" {
		return []Glyph{}
	}

	center := canvasSize / 2
	charWidth := p.FontSize * charWidthRatio
	growth := p.FontSize * p.PitchMultiplier / (2 * math.Pi)

	glyphs := make([]Glyph, 0, utf8.RuneCountInString(text))
	angle, radius := 0.0, p.StartRadius

	for _, r := range text {
		step := charWidth / radius

		sin, cos := math.Sincos(angle)
		glyphs = append(glyphs, Glyph{
			Char:     string(r),
			X:        center + radius*cos,
			Y:        center + radius*sin,
			Angle:    angle*180/math.Pi + tangentOffset,
			FontSize: p.FontSize,
		})

		angle += step
		radius += growth * step
	}
	return glyphs
}
