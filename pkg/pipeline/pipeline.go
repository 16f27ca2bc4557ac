// Package pipeline provides the layout → render pipeline shared by the CLI
// and the HTTP server.
//
// By centralizing this logic both entry points apply the same defaults,
// validation and caching.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: place every character of the text on the spiral
//  2. Render: generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Text:    lyrics,
//	    Title:   "Hey Jude",
//	    Artist:  "The Beatles",
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	doc, err := runner.Layout(ctx, opts)
//	artifacts, err := runner.Render(ctx, doc, opts)
package pipeline

import (
	"fmt"
	"io"
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lyricspiral/pkg/cache"
	"github.com/matzehuels/lyricspiral/pkg/errors"
	"github.com/matzehuels/lyricspiral/pkg/poster"
	"github.com/matzehuels/lyricspiral/pkg/render/sink"
	"github.com/matzehuels/lyricspiral/pkg/spiral"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultCanvasSize is the default square canvas side in user units.
	DefaultCanvasSize = spiral.DefaultCanvasSize

	// DefaultTheme is the default color theme.
	DefaultTheme = sink.ThemeLight

	// DefaultScale is the default PNG pixel density.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ContentType returns the MIME type of format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the poster pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Text       string  `json:"text"`
	Title      string  `json:"title,omitempty"`
	Artist     string  `json:"artist,omitempty"`
	Source     string  `json:"source,omitempty"`
	CanvasSize float64 `json:"canvasSize,omitempty"`
	PrintMode  bool    `json:"printMode,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Theme       string   `json:"theme,omitempty"`
	CenterLabel bool     `json:"centerLabel,omitempty"`
	QR          string   `json:"qr,omitempty"`
	Scale       float64  `json:"scale,omitempty"`

	// MaxTextLength caps the text in runes; zero uses errors.DefaultMaxTextLength.
	MaxTextLength int `json:"-"`

	// Refresh bypasses cached layouts and artifacts.
	Refresh bool `json:"-"`

	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the computed layout.
	Document poster.Document

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Chars      int
	Glyphs     int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool // all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTheme checks that a theme name is known.
func ValidateTheme(theme string) error {
	_, err := sink.LookupTheme(theme)
	return err
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the text and applies defaults for the full
// pipeline. Unlike layout alone, a poster needs at least one visible
// character.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := errors.ValidateVisibleText(o.Text); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.CanvasSize == 0 {
		o.CanvasSize = DefaultCanvasSize
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidateText(o.Text, o.MaxTextLength); err != nil {
		return err
	}
	return errors.ValidateCanvasSize(o.CanvasSize)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateTheme(o.Theme); err != nil {
		return err
	}
	if o.Scale < 0 || o.Scale > 8 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be between 0 and 8, got %v", o.Scale)
	}
	if o.QR != "" {
		if err := errors.ValidateURL(o.QR); err != nil {
			return fmt.Errorf("qr: %w", err)
		}
		if err := sink.ValidateQR(o.QR); err != nil {
			return err
		}
	}
	if o.CanvasSize > 0 && slices.Contains(o.Formats, FormatPNG) {
		return ValidatePNGSize(o.CanvasSize, o.Scale)
	}
	return nil
}

// ValidatePNGSize rejects a canvas that would rasterize beyond
// sink.MaxPNGSide pixels per side at the given scale.
func ValidatePNGSize(canvasSize, scale float64) error {
	if scale <= 0 {
		scale = DefaultScale
	}
	if side := canvasSize * scale; side > sink.MaxPNGSide {
		return errors.New(errors.ErrCodeInvalidCanvas,
			"png would be %gpx wide (canvas %g at scale %g, max %dpx); lower the canvas size or scale",
			math.Ceil(side), canvasSize, scale, sink.MaxPNGSide)
	}
	return nil
}

// Config returns the layout configuration.
func (o *Options) Config() spiral.Config {
	return spiral.Config{CanvasSize: o.CanvasSize, PrintMode: o.PrintMode}
}

// Meta returns the document metadata.
func (o *Options) Meta() poster.Meta {
	return poster.Meta{Title: o.Title, Artist: o.Artist, Source: o.Source}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		CanvasSize: o.CanvasSize,
		PrintMode:  o.PrintMode,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	if format == FormatJSON {
		return k
	}
	k.Theme = o.Theme
	k.CenterLabel = o.CenterLabel
	k.QR = o.QR
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
