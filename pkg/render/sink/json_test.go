package sink

import (
	"testing"

	"github.com/matzehuels/lyricspiral/pkg/poster"
)

func TestRenderJSON(t *testing.T) {
	doc := testDoc("hello world")

	data, err := RenderJSON(doc)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	back, err := poster.Unmarshal(data)
	if err != nil {
		t.Fatalf("poster.Unmarshal() error: %v", err)
	}
	if back.Text() != "hello world" {
		t.Errorf("Text() = %q", back.Text())
	}
	if back.Label() != "Song - Band" {
		t.Errorf("Label() = %q", back.Label())
	}
	if len(back.Glyphs) != len(doc.Glyphs) {
		t.Errorf("glyphs = %d, want %d", len(back.Glyphs), len(doc.Glyphs))
	}
}
