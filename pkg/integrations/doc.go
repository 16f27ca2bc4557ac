// Package integrations provides the shared HTTP client used by lyrics catalog
// clients.
//
// Each catalog has its own subpackage; today that is [lrclib]. Clients embed
// [Client], which handles:
//
//   - default headers (User-Agent)
//   - retry with exponential backoff for network errors, 429 and 5xx
//   - mapping 404 to [ErrNotFound]
//   - response caching through [cache.Cache] under a namespace and TTL
//
// Typical use from a catalog client:
//
//	var songs []Song
//	err := c.Cached(ctx, "search:"+q, refresh, &songs, func() error {
//	    return c.Get(ctx, c.baseURL+"/api/search?q="+integrations.URLEncode(q), &songs)
//	})
//
// [lrclib]: github.com/matzehuels/lyricspiral/pkg/integrations/lrclib
// [cache.Cache]: github.com/matzehuels/lyricspiral/pkg/cache.Cache
package integrations
