// Package poster defines the layout document: one computed spiral layout
// together with the metadata needed to render it again.
//
// Documents are what `lyricspiral layout` writes and `lyricspiral visualize`
// reads, what the server returns from /api/layout, and what the pipeline
// caches. Rendering only ever needs a Document.
package poster

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/matzehuels/lyricspiral/pkg/spiral"
)

// Version is the current document format version.
const Version = 1

// Meta is the optional descriptive information carried with a layout.
type Meta struct {
	Title  string
	Artist string
	Source string
}

// Document is a serialized layout.
type Document struct {
	Version    int            `json:"version"`
	Title      string         `json:"title,omitempty"`
	Artist     string         `json:"artist,omitempty"`
	Source     string         `json:"source,omitempty"`
	CanvasSize float64        `json:"canvasSize"`
	PrintMode  bool           `json:"printMode"`
	Params     spiral.Params  `json:"params"`
	Glyphs     []spiral.Glyph `json:"glyphs"`
}

// New lays out text with cfg and wraps the result.
func New(text string, meta Meta, cfg spiral.Config) Document {
	cfg = cfg.WithDefaults()
	res := spiral.Compute(text, cfg)
	return Document{
		Version:    Version,
		Title:      meta.Title,
		Artist:     meta.Artist,
		Source:     meta.Source,
		CanvasSize: cfg.CanvasSize,
		PrintMode:  cfg.PrintMode,
		Params:     res.Params,
		Glyphs:     res.Glyphs,
	}
}

// Text reassembles the laid out text from the glyphs.
func (d Document) Text() string {
	var sb strings.Builder
	for _, g := range d.Glyphs {
		sb.WriteString(g.Char)
	}
	return sb.String()
}

// Label returns "Title - Artist", or whichever of the two is set.
func (d Document) Label() string {
	switch {
	case d.Title != "" && d.Artist != "":
		return d.Title + " - " + d.Artist
	case d.Title != "":
		return d.Title
	default:
		return d.Artist
	}
}

// Center returns the canvas center.
func (d Document) Center() (float64, float64) {
	return d.CanvasSize / 2, d.CanvasSize / 2
}

// InnerRadius is the radius of the empty disc in the middle of the spiral,
// with half a font size kept clear of the first loop.
func (d Document) InnerRadius() float64 {
	return max(0, d.Params.StartRadius-d.Params.FontSize/2)
}

// Validate checks a document read from an untrusted source.
func (d Document) Validate() error {
	if d.Version != Version {
		return fmt.Errorf("unsupported layout version %d (want %d)", d.Version, Version)
	}
	if !finitePositive(d.CanvasSize) {
		return fmt.Errorf("invalid canvas size %v", d.CanvasSize)
	}
	for i, g := range d.Glyphs {
		if !finitePositive(g.FontSize) {
			return fmt.Errorf("glyph %d: invalid font size %v", i, g.FontSize)
		}
		if !finite(g.X) || !finite(g.Y) || !finite(g.Angle) {
			return fmt.Errorf("glyph %d: non-finite placement", i)
		}
	}
	return nil
}

// Marshal encodes d as indented JSON.
func Marshal(d Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal decodes and validates a document.
func Unmarshal(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("decode layout: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Document{}, err
	}
	return d, nil
}

// Read decodes a document from r.
func Read(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, err
	}
	return Unmarshal(data)
}

// ReadFile decodes the document at path.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	return Unmarshal(data)
}

// WriteFile writes d to path as indented JSON.
func WriteFile(path string, d Document) error {
	data, err := Marshal(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func finitePositive(v float64) bool { return finite(v) && v > 0 }
