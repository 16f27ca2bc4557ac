// Package render turns layout documents into poster artifacts.
//
// The format sinks live in [sink]: SVG is written directly, PNG is
// rasterized in-process with gg, PDF is converted from the SVG by
// rsvg-convert ([ToPDF]) and JSON is the layout document itself.
//
//	svg := sink.RenderSVG(doc, sink.WithTheme(sink.ThemeDark))
//	pdf, err := render.ToPDF(svg)
//
// [sink]: github.com/matzehuels/lyricspiral/pkg/render/sink
package render
