// Package spiral places the characters of a text along an outward-growing
// Archimedean spiral.
//
// # Overview
//
// A layout is computed in two steps:
//
//  1. [Select] derives the font size, start radius and pitch multiplier from
//     the number of characters and the print flag. The values come from a
//     tuned lookup and interpolation table so that a few words and several
//     thousand characters both fill the canvas without overlapping loops.
//  2. [Integrate] walks the text once, carrying the running angle and radius,
//     and emits one [Glyph] per character.
//
// [Layout] and [Compute] run both steps for a piece of text and a [Config].
//
// # Geometry
//
// Every character occupies a fixed arc length of 0.6×fontSize. The angular
// step at radius r is therefore width/r (s = r·θ), which keeps the visual
// spacing constant as the spiral grows. The radius grows by
// fontSize×pitchMultiplier per full revolution, so loops never touch.
//
// Each glyph is rotated by the current angle plus 90 degrees, which puts it
// tangent to the spiral and upright relative to the direction of travel.
//
// A character is one Unicode code point. The selector counts code points,
// not bytes.
//
// # Degenerate input
//
// The package never returns errors. Empty text yields an empty layout. A
// non-positive or non-finite canvas size is not rejected; it only moves the
// center and produces degenerate coordinates. Callers that accept untrusted
// input should validate the canvas size and bound the text length first.
//
// Text is not required to be valid UTF-8. Each byte that does not start a
// valid encoding counts as one character and is emitted as a glyph holding
// U+FFFD, so "a\xffb" lays out as "a", "\uFFFD", "b".
//
// # Concurrency
//
// All functions are pure and keep their state on the stack, so they are safe
// to call from any number of goroutines. Results depend only on the inputs
// and may be memoized by (text, canvas size, print mode).
package spiral
