package sink

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/lyricspiral/pkg/errors"
	"github.com/matzehuels/lyricspiral/pkg/fonts"
	"github.com/matzehuels/lyricspiral/pkg/poster"
)

// MaxPNGSide bounds the raster size in pixels so a large canvas and scale
// cannot exhaust memory.
const MaxPNGSide = 12000

// RenderPNG rasterizes the poster in-process. Faces are rendered at the
// target pixel size rather than scaled, so glyphs stay sharp at any scale.
func RenderPNG(doc poster.Document, opts ...Option) ([]byte, error) {
	s := newSettings(opts...)
	side := int(math.Ceil(doc.CanvasSize * s.scale))
	if side <= 0 || side > MaxPNGSide {
		return nil, errors.New(errors.ErrCodeInvalidCanvas,
			"png size %dpx out of range (canvas %v, scale %v, max %dpx)", side, doc.CanvasSize, s.scale, MaxPNGSide)
	}

	dc := gg.NewContext(side, side)
	if s.background {
		dc.SetColor(hexColor(s.theme.Paper))
		dc.Clear()
	}

	faces := newFaceSet()
	defer faces.close()

	dc.SetColor(hexColor(s.theme.Ink))
	for _, g := range doc.Glyphs {
		if !visible(g.Char) {
			continue
		}
		face, err := faces.get(g.FontSize * s.scale)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)

		x, y := g.X*s.scale, g.Y*s.scale
		dc.Push()
		dc.RotateAbout(gg.Radians(g.Angle), x, y)
		dc.DrawStringAnchored(g.Char, x, y, 0.5, 0.5)
		dc.Pop()
	}

	if err := drawPNGCenter(dc, doc, s, faces); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawPNGCenter(dc *gg.Context, doc poster.Document, s settings, faces *faceSet) error {
	if box, ok, err := fitQR(doc, s.qr); err == nil && ok {
		dc.SetColor(hexColor(s.theme.Ink))
		box.runs(func(x, y, w, h float64) {
			dc.DrawRectangle(x*s.scale, y*s.scale, w*s.scale, h*s.scale)
		})
		dc.Fill()
		return nil
	}

	if !s.label {
		return nil
	}
	label := doc.Label()
	size, ok := labelFontSize(doc, label)
	if !ok {
		return nil
	}
	face, err := faces.get(size * s.scale)
	if err != nil {
		return err
	}
	cx, cy := doc.Center()
	dc.SetFontFace(face)
	dc.SetColor(hexColor(s.theme.Accent))
	dc.DrawStringAnchored(label, cx*s.scale, cy*s.scale, 0.5, 0.5)
	return nil
}

// faceSet caches one face per pixel size for a single render.
type faceSet struct {
	faces map[float64]font.Face
}

func newFaceSet() *faceSet {
	return &faceSet{faces: make(map[float64]font.Face)}
}

func (f *faceSet) get(size float64) (font.Face, error) {
	if face, ok := f.faces[size]; ok {
		return face, nil
	}
	face, err := fonts.Face(size)
	if err != nil {
		return nil, err
	}
	f.faces[size] = face
	return face, nil
}

func (f *faceSet) close() {
	for _, face := range f.faces {
		face.Close()
	}
}
