// Package fonts provides the typeface used for posters.
//
// Posters are set in Go Regular, which ships with golang.org/x/image, so the
// SVG, PNG and PDF outputs match without any system fonts installed. The SVG
// sink inlines the TTF as a base64 data URL; the PNG sink rasterizes with a
// face built by [Face].
package fonts

import (
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontFamily is the CSS font-family name declared by the SVG @font-face.
const FontFamily = "Go Regular"

// FallbackFontFamily is the CSS font stack for viewers that ignore the
// embedded font.
const FallbackFontFamily = `'Go Regular', 'Helvetica Neue', Helvetica, Arial, sans-serif`

// RegularTTF returns the TrueType data of Go Regular.
func RegularTTF() []byte {
	return goregular.TTF
}

var (
	ttfBase64     string
	ttfBase64Once sync.Once
)

// RegularTTFBase64 returns RegularTTF base64 encoded, computed once.
func RegularTTFBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return ttfBase64
}

var (
	parsed     *opentype.Font
	parsedErr  error
	parsedOnce sync.Once
)

func regular() (*opentype.Font, error) {
	parsedOnce.Do(func() {
		parsed, parsedErr = opentype.Parse(goregular.TTF)
	})
	return parsed, parsedErr
}

// Face returns a new Go Regular face at size points (72 DPI, so one point is
// one pixel). Faces are not safe for concurrent use; callers create one per
// render and Close it when done.
func Face(size float64) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %v", size)
	}
	f, err := regular()
	if err != nil {
		return nil, fmt.Errorf("parse Go Regular: %w", err)
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
