// Package sink renders a [poster.Document] into output formats.
//
//   - [RenderSVG]: one rotated <text> per glyph, Go Regular inlined
//   - [RenderPNG]: rasterized with gg, no external tools
//   - [RenderPDF]: SVG converted by rsvg-convert
//   - [RenderJSON]: the layout document
//
// Options apply to all visual formats:
//
//	theme, _ := sink.LookupTheme("dark")
//	svg := sink.RenderSVG(doc, sink.WithTheme(theme), sink.WithCenterLabel())
//	png, err := sink.RenderPNG(doc, sink.WithTheme(theme), sink.WithScale(3))
//
// The empty disc inside the first loop of the spiral holds either a QR code
// ([WithQR]) or the title and artist ([WithCenterLabel]).
//
// [poster.Document]: github.com/matzehuels/lyricspiral/pkg/poster.Document
package sink
