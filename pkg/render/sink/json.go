package sink

import "github.com/matzehuels/lyricspiral/pkg/poster"

// RenderJSON exports the layout document, pretty printed. It can be read
// back with poster.Unmarshal and rendered again identically.
func RenderJSON(doc poster.Document) ([]byte, error) {
	return poster.Marshal(doc)
}
