package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

const rsvgConvert = "rsvg-convert"

// ErrNoConverter is returned when rsvg-convert is not on PATH.
var ErrNoConverter = errors.New("PDF export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin")

// ConverterAvailable reports whether rsvg-convert can be found.
func ConverterAvailable() bool {
	_, err := exec.LookPath(rsvgConvert)
	return err == nil
}

// ToPDF converts SVG bytes to PDF using rsvg-convert.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	if !ConverterAvailable() {
		return nil, ErrNoConverter
	}

	cmd := exec.CommandContext(ctx, rsvgConvert, "-f", "pdf")
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}
