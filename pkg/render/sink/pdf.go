package sink

import (
	"context"

	"github.com/matzehuels/lyricspiral/pkg/poster"
	"github.com/matzehuels/lyricspiral/pkg/render"
)

// RenderPDF renders the SVG and converts it with rsvg-convert. The font is
// not inlined since librsvg resolves fonts through fontconfig.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, doc poster.Document, opts ...Option) ([]byte, error) {
	opts = append(opts[:len(opts):len(opts)], WithFontEmbed(false))
	return render.ToPDF(ctx, RenderSVG(doc, opts...))
}
