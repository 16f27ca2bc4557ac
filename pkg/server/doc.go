// Package server exposes the lyrics proxy and the poster pipeline over HTTP.
//
// Routes:
//
//	GET  /api/health                     liveness
//	GET  /api/search?q=                  top 10 songs from lrclib
//	GET  /api/lyrics?artist=&track=      lyrics of one track (album, duration optional)
//	POST /api/layout                     layout document for {text, canvasSize, printMode}
//	POST /api/poster?format=svg          poster artifact for a JSON body
//	GET  /api/poster?artist=&track=      fetch lyrics, then render
//
// Errors are JSON objects {"error": ..., "details": ..., "code": ...} with a
// status derived from the [errors.Code] of the failure.
//
// [errors.Code]: github.com/matzehuels/lyricspiral/pkg/errors.Code
package server
