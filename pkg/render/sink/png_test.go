package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/lyricspiral/pkg/errors"
)

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	return img
}

func TestRenderPNG(t *testing.T) {
	doc := testDoc("hello world")

	data, err := RenderPNG(doc)
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img := decodePNG(t, data)

	if b := img.Bounds(); b.Dx() != 1300 || b.Dy() != 1300 {
		t.Errorf("size = %dx%d, want 1300x1300", b.Dx(), b.Dy())
	}
	if got := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA); got != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("corner = %v, want white", got)
	}
}

func TestRenderPNGOptions(t *testing.T) {
	doc := testDoc("hello world")
	dark, _ := LookupTheme(ThemeDark)

	tests := []struct {
		name   string
		opts   []Option
		side   int
		corner color.RGBA
	}{
		{"scale 1", []Option{WithScale(1)}, 650, color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{"dark", []Option{WithScale(1), WithTheme(dark)}, 650, color.RGBA{0x14, 0x14, 0x14, 0xff}},
		{"transparent", []Option{WithScale(1), WithBackground(false)}, 650, color.RGBA{}},
		{"qr", []Option{WithScale(1), WithQR("https://example.com")}, 650, color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{"label", []Option{WithScale(0.5), WithCenterLabel()}, 325, color.RGBA{0xff, 0xff, 0xff, 0xff}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := RenderPNG(doc, tt.opts...)
			if err != nil {
				t.Fatalf("RenderPNG() error: %v", err)
			}
			img := decodePNG(t, data)
			if b := img.Bounds(); b.Dx() != tt.side {
				t.Errorf("width = %d, want %d", b.Dx(), tt.side)
			}
			if got := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA); got != tt.corner {
				t.Errorf("corner = %v, want %v", got, tt.corner)
			}
		})
	}
}

func TestRenderPNGDrawsQR(t *testing.T) {
	doc := testDoc("hello world")

	data, err := RenderPNG(doc, WithScale(1), WithQR("https://example.com"))
	if err != nil {
		t.Fatal(err)
	}
	img := decodePNG(t, data)

	box, ok, err := fitQR(doc, "https://example.com")
	if err != nil || !ok {
		t.Fatalf("fitQR() = %v, %v", ok, err)
	}
	// the top-left module of a QR code is always dark (finder pattern)
	x := int(box.x + box.module/2)
	y := int(box.y + box.module/2)
	r, _, _, _ := img.At(x, y).RGBA()
	if r>>8 > 0x40 {
		t.Errorf("pixel at (%d, %d) should be ink, got red=%#x", x, y, r>>8)
	}
}

func TestRenderPNGTooLarge(t *testing.T) {
	doc := testDoc("hello")
	doc.CanvasSize = 10000
	_, err := RenderPNG(doc, WithScale(4))
	if !errors.Is(err, errors.ErrCodeInvalidCanvas) {
		t.Errorf("RenderPNG() error = %v, want INVALID_CANVAS", err)
	}
}

func TestRenderPNGUnencodableQRFallsBackToLabel(t *testing.T) {
	doc := testDoc("hello world")
	long := "https://example.com/" + strings.Repeat("a", 3000)

	data, err := RenderPNG(doc, WithScale(1), WithCenterLabel(), WithQR(long))
	if err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}
	plain, err := RenderPNG(doc, WithScale(1), WithCenterLabel())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, plain) {
		t.Error("unencodable QR should render the same as the label alone")
	}
}
