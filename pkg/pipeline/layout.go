package pipeline

import (
	"github.com/matzehuels/lyricspiral/pkg/poster"
)

// GenerateLayout lays out opts.Text. The caller validates opts.
func GenerateLayout(opts Options) poster.Document {
	return poster.New(opts.Text, opts.Meta(), opts.Config())
}
