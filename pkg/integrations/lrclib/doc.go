// Package lrclib is a client for the lrclib.net lyrics catalog.
//
// Two calls are supported:
//
//   - [Client.Search] finds songs by free text (GET /api/search?q=)
//   - [Client.GetLyrics] fetches lyrics for an artist and track, optionally
//     narrowed by album and duration (GET /api/get)
//
// Responses are cached through the shared integrations client. Synced (LRC)
// lyrics can be turned into plain text with [StripTimestamps].
package lrclib
