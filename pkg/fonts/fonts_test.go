package fonts

import (
	"encoding/base64"
	"testing"
)

func TestRegularTTFBase64(t *testing.T) {
	enc := RegularTTFBase64()
	dec, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(dec) != len(RegularTTF()) {
		t.Errorf("decoded %d bytes, want %d", len(dec), len(RegularTTF()))
	}
	if RegularTTFBase64() != enc {
		t.Error("RegularTTFBase64 should be stable")
	}
}

func TestFace(t *testing.T) {
	face, err := Face(24)
	if err != nil {
		t.Fatalf("Face(24): %v", err)
	}
	defer face.Close()

	adv, ok := face.GlyphAdvance('M')
	if !ok || adv <= 0 {
		t.Errorf("GlyphAdvance('M') = %v, %v; want positive", adv, ok)
	}
	if h := face.Metrics().Height.Ceil(); h < 20 || h > 40 {
		t.Errorf("line height = %d, want roughly 24-30", h)
	}
}

func TestFaceInvalidSize(t *testing.T) {
	for _, size := range []float64{0, -3} {
		if _, err := Face(size); err == nil {
			t.Errorf("Face(%v) should fail", size)
		}
	}
}
