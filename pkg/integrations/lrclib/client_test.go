package lrclib

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/lyricspiral/pkg/cache"
	"github.com/matzehuels/lyricspiral/pkg/integrations"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewClient(c, server.URL, time.Hour), &calls
}

func TestSearch(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search" {
			t.Errorf("path = %s, want /api/search", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); !strings.EqualFold(got, "dancing queen") {
			t.Errorf("q = %q", got)
		}
		if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "lyricspiral/") {
			t.Errorf("User-Agent = %q", ua)
		}
		hits := []map[string]any{
			{"id": 1, "trackName": "Dancing Queen", "artistName": "ABBA", "albumName": "Arrival", "duration": 231.0},
			{"id": 2, "name": "Dancing Queen (Live)", "artist": "ABBA", "album": "Live", "duration": 240.5},
		}
		for i := 3; i <= 15; i++ {
			hits = append(hits, map[string]any{"id": i, "trackName": fmt.Sprintf("t%d", i)})
		}
		json.NewEncoder(w).Encode(hits)
	})

	songs, err := client.Search(context.Background(), "  Dancing Queen ", false)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(songs) != MaxSearchResults {
		t.Fatalf("len = %d, want %d", len(songs), MaxSearchResults)
	}
	want := Song{ID: 1, TrackName: "Dancing Queen", ArtistName: "ABBA", AlbumName: "Arrival", Duration: 231}
	if songs[0] != want {
		t.Errorf("songs[0] = %+v, want %+v", songs[0], want)
	}
	legacy := Song{ID: 2, TrackName: "Dancing Queen (Live)", ArtistName: "ABBA", AlbumName: "Live", Duration: 240.5}
	if songs[1] != legacy {
		t.Errorf("songs[1] = %+v, want %+v", songs[1], legacy)
	}

	if _, err := client.Search(context.Background(), "dancing   queen", false); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(calls); n != 1 {
		t.Errorf("upstream calls = %d, want 1 (second search should hit cache)", n)
	}

	if _, err := client.Search(context.Background(), "dancing queen", true); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(calls); n != 2 {
		t.Errorf("upstream calls = %d, want 2 after refresh", n)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := client.Search(context.Background(), "   ", false)
	if !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("error = %v, want ErrInvalidQuery", err)
	}
	if *calls != 0 {
		t.Error("empty query should not reach upstream")
	}
}

func TestSearchNoResults(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	})
	songs, err := client.Search(context.Background(), "zzzz", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(songs) != 0 {
		t.Errorf("len = %d, want 0", len(songs))
	}
}

func TestGetLyrics(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/get" {
			t.Errorf("path = %s, want /api/get", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("artist_name") != "ABBA" || q.Get("track_name") != "Waterloo" {
			t.Errorf("query = %v", q)
		}
		if q.Get("album_name") != "Waterloo" || q.Get("duration") != "168" {
			t.Errorf("optional params = %v", q)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"plainLyrics":  "My my\nAt Waterloo",
			"syncedLyrics": "[00:01.00] My my\n[00:03.50] At Waterloo",
			"instrumental": false,
		})
	})

	lyrics, err := client.GetLyrics(context.Background(), LyricsQuery{
		Artist: "ABBA", Track: "Waterloo", Album: "Waterloo", Duration: 168,
	}, false)
	if err != nil {
		t.Fatalf("GetLyrics() error: %v", err)
	}
	if lyrics.Lyrics != "My my\nAt Waterloo" {
		t.Errorf("Lyrics = %q", lyrics.Lyrics)
	}
	if lyrics.SyncedLyrics == "" || lyrics.PlainLyrics == "" {
		t.Error("both plain and synced lyrics should be kept")
	}
}

func TestGetLyricsSource(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"plainLyrics":"hello","instrumental":false}`))
	})
	q := LyricsQuery{Artist: "Queen", Track: "Bohemian Rhapsody"}
	want := client.BaseURL() + "/api/get?artist_name=Queen&track_name=Bohemian+Rhapsody"

	for i, label := range []string{"fetch", "cache hit"} {
		lyrics, err := client.GetLyrics(context.Background(), q, false)
		if err != nil {
			t.Fatalf("%s: %v", label, err)
		}
		if lyrics.Source != want {
			t.Errorf("%s: Source = %q, want %q", label, lyrics.Source, want)
		}
		if got := atomic.LoadInt32(calls); got != 1 {
			t.Errorf("after call %d: upstream calls = %d, want 1", i+1, got)
		}
	}

	data, err := json.Marshal(&Lyrics{Lyrics: "x", Source: want})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "source") || strings.Contains(string(data), "api/get") {
		t.Errorf("Source should not be serialized: %s", data)
	}
}

func TestGetLyricsSyncedFallback(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("album_name") || r.URL.Query().Has("duration") {
			t.Errorf("unexpected optional params: %v", r.URL.Query())
		}
		w.Write([]byte(`{"plainLyrics":null,"syncedLyrics":"[00:01.00] hello","instrumental":false}`))
	})

	lyrics, err := client.GetLyrics(context.Background(), LyricsQuery{Artist: "a", Track: "b"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if lyrics.Lyrics != "[00:01.00] hello" {
		t.Errorf("Lyrics = %q, want synced fallback", lyrics.Lyrics)
	}
	if lyrics.PlainLyrics != "" {
		t.Errorf("PlainLyrics = %q, want empty", lyrics.PlainLyrics)
	}
	if lyrics.Text() != "hello" {
		t.Errorf("Text() = %q, want %q", lyrics.Text(), "hello")
	}
}

func TestGetLyricsInstrumental(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"plainLyrics":null,"syncedLyrics":null,"instrumental":true}`))
	})
	lyrics, err := client.GetLyrics(context.Background(), LyricsQuery{Artist: "a", Track: "b"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if !lyrics.Instrumental || lyrics.Lyrics != "" {
		t.Errorf("lyrics = %+v, want instrumental with empty text", lyrics)
	}
}

func TestGetLyricsNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	_, err := client.GetLyrics(context.Background(), LyricsQuery{Artist: "nobody", Track: "nothing"}, false)
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestGetLyricsMissingFields(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	tests := []LyricsQuery{
		{Track: "b"},
		{Artist: "a"},
		{Artist: " ", Track: "b"},
	}
	for _, q := range tests {
		if _, err := client.GetLyrics(context.Background(), q, false); !errors.Is(err, ErrInvalidQuery) {
			t.Errorf("GetLyrics(%+v) error = %v, want ErrInvalidQuery", q, err)
		}
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(nil, "", 0)
	if c.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL = %s, want %s", c.BaseURL(), DefaultBaseURL)
	}
	c = NewClient(nil, "http://localhost:3001/", 0)
	if c.BaseURL() != "http://localhost:3001" {
		t.Errorf("trailing slash should be trimmed: %s", c.BaseURL())
	}
}

func TestStripTimestamps(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"single", "[00:12.34] Hello", "Hello"},
		{"multi line", "[00:01.00] one\n[00:02.50]two\n[01:02.003] three", "one\ntwo\nthree"},
		{"no fraction", "[03:15] end", "end"},
		{"repeated tags", "[00:01.00][00:30.00] chorus", "chorus"},
		{"blank lines kept", "[00:01.00] a\n[00:02.00]\n[00:03.00] b", "a\n\nb"},
		{"brackets in text", "[00:01.00] [Chorus] la", "[Chorus] la"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripTimestamps(tt.input); got != tt.want {
				t.Errorf("StripTimestamps(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
