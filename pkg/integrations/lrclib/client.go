package lrclib

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/lyricspiral/pkg/buildinfo"
	"github.com/matzehuels/lyricspiral/pkg/cache"
	"github.com/matzehuels/lyricspiral/pkg/integrations"
)

// DefaultBaseURL is the public lrclib instance.
const DefaultBaseURL = "https://lrclib.net"

// MaxSearchResults caps the number of songs returned by Search.
const MaxSearchResults = 10

// ErrInvalidQuery is returned for empty search terms or lookups without
// artist or track.
var ErrInvalidQuery = errors.New("invalid lyrics query")

// Song is one search hit.
type Song struct {
	ID         int64   `json:"id"`
	TrackName  string  `json:"trackName"`
	ArtistName string  `json:"artistName"`
	AlbumName  string  `json:"albumName"`
	Duration   float64 `json:"duration"`
}

// LyricsQuery identifies a track. Album and Duration narrow the match and are
// optional; Duration is in seconds.
type LyricsQuery struct {
	Artist   string  `json:"artist"`
	Track    string  `json:"track"`
	Album    string  `json:"album,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}

// Lyrics is the lyrics of one track. Lyrics holds the plain text when
// available and the synced text otherwise. Source is the catalog URL the
// lyrics were looked up at; it is not part of the JSON form.
type Lyrics struct {
	Lyrics       string `json:"lyrics"`
	SyncedLyrics string `json:"syncedLyrics"`
	PlainLyrics  string `json:"plainLyrics"`
	Instrumental bool   `json:"instrumental"`
	Source       string `json:"-"`
}

// Text returns lyrics suitable for layout: plain lyrics, or synced lyrics
// with their timestamps removed.
func (l *Lyrics) Text() string {
	if l.PlainLyrics != "" {
		return l.PlainLyrics
	}
	return StripTimestamps(l.SyncedLyrics)
}

// searchHit tolerates both the current and the legacy field names.
type searchHit struct {
	ID         int64   `json:"id"`
	TrackName  string  `json:"trackName"`
	Name       string  `json:"name"`
	ArtistName string  `json:"artistName"`
	Artist     string  `json:"artist"`
	AlbumName  string  `json:"albumName"`
	Album      string  `json:"album"`
	Duration   float64 `json:"duration"`
}

type getResponse struct {
	PlainLyrics  *string `json:"plainLyrics"`
	SyncedLyrics *string `json:"syncedLyrics"`
	Instrumental bool    `json:"instrumental"`
}

// Client talks to the lrclib API.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a client caching responses in c for ttl. An empty
// baseURL uses DefaultBaseURL.
func NewClient(c cache.Cache, baseURL string, ttl time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if ttl <= 0 {
		ttl = cache.TTLHTTP
	}
	headers := map[string]string{
		"User-Agent": "lyricspiral/" + buildinfo.Version + " (+https://github.com/matzehuels/lyricspiral)",
		"Accept":     "application/json",
	}
	return &Client{
		Client:  integrations.NewClient(c, "lrclib", ttl, headers),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// BaseURL returns the API root in use.
func (c *Client) BaseURL() string { return c.baseURL }

// Search returns at most MaxSearchResults songs matching query.
func (c *Client) Search(ctx context.Context, query string, refresh bool) ([]Song, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrInvalidQuery)
	}

	var songs []Song
	err := c.Cached(ctx, "search:"+integrations.NormalizeQuery(q), refresh, &songs, func() error {
		return c.search(ctx, q, &songs)
	})
	if err != nil {
		return nil, err
	}
	return songs, nil
}

func (c *Client) search(ctx context.Context, q string, songs *[]Song) error {
	var hits []searchHit
	if err := c.Get(ctx, c.baseURL+"/api/search?q="+integrations.URLEncode(q), &hits); err != nil {
		return err
	}
	if len(hits) > MaxSearchResults {
		hits = hits[:MaxSearchResults]
	}

	out := make([]Song, 0, len(hits))
	for _, h := range hits {
		out = append(out, Song{
			ID:         h.ID,
			TrackName:  firstNonEmpty(h.TrackName, h.Name),
			ArtistName: firstNonEmpty(h.ArtistName, h.Artist),
			AlbumName:  firstNonEmpty(h.AlbumName, h.Album),
			Duration:   h.Duration,
		})
	}
	*songs = out
	return nil
}

// GetLyrics fetches the lyrics for q. It returns an error wrapping
// integrations.ErrNotFound when the catalog has no match.
func (c *Client) GetLyrics(ctx context.Context, q LyricsQuery, refresh bool) (*Lyrics, error) {
	q.Artist = strings.TrimSpace(q.Artist)
	q.Track = strings.TrimSpace(q.Track)
	q.Album = strings.TrimSpace(q.Album)
	if q.Artist == "" || q.Track == "" {
		return nil, fmt.Errorf("%w: artist and track name are required", ErrInvalidQuery)
	}

	params := lyricsParams(q)
	var lyrics Lyrics
	err := c.Cached(ctx, "get:"+strings.ToLower(params.Encode()), refresh, &lyrics, func() error {
		return c.getLyrics(ctx, params, &lyrics)
	})
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, fmt.Errorf("%w: lyrics for %s - %s", err, q.Artist, q.Track)
		}
		return nil, err
	}
	lyrics.Source = c.lyricsURL(params)
	return &lyrics, nil
}

func (c *Client) lyricsURL(params url.Values) string {
	return c.baseURL + "/api/get?" + params.Encode()
}

func (c *Client) getLyrics(ctx context.Context, params url.Values, lyrics *Lyrics) error {
	var resp getResponse
	if err := c.Get(ctx, c.lyricsURL(params), &resp); err != nil {
		return err
	}
	plain, synced := deref(resp.PlainLyrics), deref(resp.SyncedLyrics)
	*lyrics = Lyrics{
		Lyrics:       firstNonEmpty(plain, synced),
		SyncedLyrics: synced,
		PlainLyrics:  plain,
		Instrumental: resp.Instrumental,
	}
	return nil
}

func lyricsParams(q LyricsQuery) url.Values {
	params := url.Values{}
	params.Set("artist_name", q.Artist)
	params.Set("track_name", q.Track)
	if q.Album != "" {
		params.Set("album_name", q.Album)
	}
	if q.Duration > 0 {
		params.Set("duration", strconv.FormatFloat(q.Duration, 'f', -1, 64))
	}
	return params
}

var timestampRE = regexp.MustCompile(`\[\d{1,3}:\d{2}(?:[.:]\d{1,3})?\]`)

// StripTimestamps removes LRC time tags such as [01:23.45] and trims the
// space they leave at the start of each line.
func StripTimestamps(synced string) string {
	if synced == "" {
		return ""
	}
	lines := strings.Split(synced, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(timestampRE.ReplaceAllString(line, ""))
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
