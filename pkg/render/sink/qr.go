package sink

import (
	"math"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/matzehuels/lyricspiral/pkg/errors"
	"github.com/matzehuels/lyricspiral/pkg/poster"
)

// ValidateQR reports whether content fits in a QR code at the error
// correction level the sinks draw with.
func ValidateQR(content string) error {
	if _, err := qrcode.New(content, qrLevel); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "qr content cannot be encoded (%d bytes)", len(content))
	}
	return nil
}

const qrLevel = qrcode.Medium

// qrBox is a QR code fitted into the center disc.
type qrBox struct {
	modules [][]bool
	x, y    float64 // top-left
	module  float64 // module side length
}

// fitQR encodes content and fits it into the square inscribed in the inner
// disc of doc, with a little padding. ok is false when there is no content
// or no room.
func fitQR(doc poster.Document, content string) (qrBox, bool, error) {
	if content == "" {
		return qrBox{}, false, nil
	}
	q, err := qrcode.New(content, qrLevel)
	if err != nil {
		return qrBox{}, false, err
	}
	q.DisableBorder = true
	bitmap := q.Bitmap()
	if len(bitmap) == 0 {
		return qrBox{}, false, nil
	}

	side := doc.InnerRadius() * math.Sqrt2 * 0.85
	if side <= 0 {
		return qrBox{}, false, nil
	}
	module := side / float64(len(bitmap))
	cx, cy := doc.Center()
	return qrBox{
		modules: bitmap,
		x:       cx - side/2,
		y:       cy - side/2,
		module:  module,
	}, true, nil
}

// runs calls fn for every horizontal run of dark modules.
func (b qrBox) runs(fn func(x, y, w, h float64)) {
	for row, line := range b.modules {
		start := -1
		for col := 0; col <= len(line); col++ {
			dark := col < len(line) && line[col]
			switch {
			case dark && start < 0:
				start = col
			case !dark && start >= 0:
				fn(b.x+float64(start)*b.module, b.y+float64(row)*b.module, float64(col-start)*b.module, b.module)
				start = -1
			}
		}
	}
}
