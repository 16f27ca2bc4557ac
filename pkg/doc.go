// Package pkg provides the core libraries for lyricspiral poster generation.
//
// # Overview
//
// Lyricspiral sets the characters of a song's lyrics along an Archimedean
// spiral and renders the result as a square poster. The pkg directory is
// organized as follows:
//
//  1. [spiral] - Parameter selection and the spiral integrator
//  2. [poster] - The layout document and its JSON format
//  3. [render] - SVG, PNG, PDF and JSON sinks, themes and the QR center
//  4. [pipeline] - Orchestration (layout → render) with caching
//  5. [integrations] - The lrclib lyrics client
//  6. [server] - The HTTP API used by the web front end
//  7. [cache] - File, Redis and MongoDB cache backends
//
// # Architecture
//
//	Lyrics (file, stdin, lrclib)
//	         ↓
//	    [spiral] package (parameters + glyph placement)
//	         ↓
//	    [poster] package (layout document)
//	         ↓
//	    [render/sink] package (visualization)
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
//	doc := poster.New("Hey Jude, don't make it bad", poster.Meta{
//	    Title:  "Hey Jude",
//	    Artist: "The Beatles",
//	}, spiral.Config{CanvasSize: 650})
//
//	svg := sink.RenderSVG(doc, sink.WithCenterLabel())
//
// For cached, validated end-to-end runs use [pipeline.Runner].
package pkg
