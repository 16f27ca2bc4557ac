package errors

import (
	"math"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxTextLength bounds the number of characters accepted for layout
// from untrusted callers. The layout itself is linear in the text length but
// the rendered artifacts are not small.
const DefaultMaxTextLength = 20000

// Canvas size limits accepted by ValidateCanvasSize.
const (
	MinCanvasSize = 100.0
	MaxCanvasSize = 10000.0
)

// ValidateText checks that text is valid UTF-8 and holds at most maxLen
// characters. Empty and whitespace-only text is accepted: it lays out to an
// empty or invisible spiral. A maxLen of zero or less uses
// DefaultMaxTextLength.
func ValidateText(text string, maxLen int) error {
	if maxLen <= 0 {
		maxLen = DefaultMaxTextLength
	}
	if !utf8.ValidString(text) {
		return New(ErrCodeInvalidInput, "text is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(text); n > maxLen {
		return New(ErrCodeTextTooLong, "text too long: %d characters (max %d)", n, maxLen)
	}
	return nil
}

// ValidateVisibleText rejects text with nothing to print, for callers that
// need a poster with ink on it.
func ValidateVisibleText(text string) error {
	if strings.TrimSpace(text) == "" {
		return New(ErrCodeInvalidInput, "text cannot be empty")
	}
	return nil
}

// ValidateCanvasSize rejects non-finite sizes and sizes outside
// [MinCanvasSize, MaxCanvasSize].
func ValidateCanvasSize(size float64) error {
	if math.IsNaN(size) || math.IsInf(size, 0) {
		return New(ErrCodeInvalidCanvas, "canvas size must be a finite number")
	}
	if size < MinCanvasSize || size > MaxCanvasSize {
		return New(ErrCodeInvalidCanvas, "canvas size %g out of range [%g, %g]", size, MinCanvasSize, MaxCanvasSize)
	}
	return nil
}

// ValidateQuery validates a catalog search term.
func ValidateQuery(q string) error {
	q = strings.TrimSpace(q)
	if q == "" {
		return New(ErrCodeInvalidInput, "search query cannot be empty")
	}
	if len(q) > 256 {
		return New(ErrCodeInvalidInput, "search query too long (max 256 characters)")
	}
	for _, r := range q {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "search query contains control characters")
		}
	}
	return nil
}

// ValidateURL accepts absolute http and https URLs with a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL must have a host")
	}
	return nil
}
