package pipeline

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/lyricspiral/pkg/cache"
	"github.com/matzehuels/lyricspiral/pkg/errors"
	"github.com/matzehuels/lyricspiral/pkg/observability"
	"github.com/matzehuels/lyricspiral/pkg/poster"
	"github.com/matzehuels/lyricspiral/pkg/render"
)

const lyrics = "Is this the real life? Is this just fantasy?"

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	r := NewRunner(c, nil, nil)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Errorf("NewRunner(nil, nil, nil) left nil fields: %+v", r)
	}
}

func TestRunnerExecute(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{
		Text:    lyrics,
		Title:   "Bohemian Rhapsody",
		Artist:  "Queen",
		Formats: []string{FormatSVG, FormatJSON},
	}

	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("first run should miss the cache: %+v", res.CacheInfo)
	}
	if res.Stats.Glyphs != len([]rune(lyrics)) {
		t.Errorf("Glyphs = %d, want %d", res.Stats.Glyphs, len([]rune(lyrics)))
	}
	if res.Document.Label() != "Bohemian Rhapsody - Queen" {
		t.Errorf("Label() = %q", res.Document.Label())
	}
	if !bytes.HasPrefix(res.Artifacts[FormatSVG], []byte("<svg")) {
		t.Error("svg artifact missing")
	}
	doc, err := poster.Unmarshal(res.Artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if doc.Text() != lyrics {
		t.Errorf("json artifact text = %q", doc.Text())
	}

	res2, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if !res2.CacheInfo.LayoutHit || !res2.CacheInfo.RenderHit {
		t.Errorf("second run should hit the cache: %+v", res2.CacheInfo)
	}
	if !bytes.Equal(res.Artifacts[FormatSVG], res2.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}
}

func TestRunnerLayoutCacheIgnoresMeta(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	if _, hit, err := r.LayoutWithCacheInfo(ctx, Options{Text: lyrics, Title: "One"}); err != nil || hit {
		t.Fatalf("first layout: hit=%v err=%v", hit, err)
	}

	doc, hit, err := r.LayoutWithCacheInfo(ctx, Options{Text: lyrics, Title: "Two"})
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("same text should hit the layout cache regardless of title")
	}
	if doc.Title != "Two" {
		t.Errorf("Title = %q, want metadata of the current request", doc.Title)
	}
}

func TestRunnerLayoutCacheKeyedByOptions(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	if _, err := r.Layout(ctx, Options{Text: lyrics}); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		opts Options
		hit  bool
	}{
		{"same", Options{Text: lyrics}, true},
		{"print mode", Options{Text: lyrics, PrintMode: true}, false},
		{"canvas size", Options{Text: lyrics, CanvasSize: 800}, false},
		{"other text", Options{Text: lyrics + "!"}, false},
		{"refresh", Options{Text: lyrics, Refresh: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, hit, err := r.LayoutWithCacheInfo(ctx, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if hit != tt.hit {
				t.Errorf("hit = %v, want %v", hit, tt.hit)
			}
		})
	}
}

func TestRunnerRenderPartialCache(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	doc, err := r.Layout(ctx, Options{Text: lyrics})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Render(ctx, doc, Options{Formats: []string{FormatSVG}}); err != nil {
		t.Fatal(err)
	}

	artifacts, hit, err := r.RenderWithCacheInfo(ctx, doc, Options{Formats: []string{FormatSVG, FormatJSON}})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("json was never rendered, RenderHit should be false")
	}
	if len(artifacts) != 2 {
		t.Errorf("artifacts = %d, want 2", len(artifacts))
	}

	// a different theme is a different artifact
	if _, hit, _ := r.RenderWithCacheInfo(ctx, doc, Options{Formats: []string{FormatSVG}, Theme: "dark"}); hit {
		t.Error("dark svg should not hit the light svg entry")
	}
}

func TestRunnerExecuteInvalid(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	_, err := r.Execute(context.Background(), Options{Text: "  "})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("blank text: error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}

	_, err = r.Execute(context.Background(), Options{Text: lyrics, Formats: []string{"gif"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format: error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestRenderPDFWithoutConverter(t *testing.T) {
	if render.ConverterAvailable() {
		t.Skip("rsvg-convert is installed")
	}
	doc := GenerateLayout(Options{Text: lyrics, CanvasSize: DefaultCanvasSize})

	_, err := Render(context.Background(), doc, Options{Formats: []string{FormatPDF}, Theme: DefaultTheme})
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeUnsupported)
	}
}

func TestRenderFromLayoutData(t *testing.T) {
	doc := GenerateLayout(Options{Text: lyrics, CanvasSize: DefaultCanvasSize})
	data, err := poster.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}

	artifacts, err := RenderFromLayoutData(context.Background(), data, Options{Formats: []string{FormatPNG}, Scale: 1})
	if err != nil {
		t.Fatalf("RenderFromLayoutData() error: %v", err)
	}
	if !bytes.HasPrefix(artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("png artifact missing")
	}

	_, err = RenderFromLayoutData(context.Background(), []byte("{"), Options{Formats: []string{FormatSVG}})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad data: error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) OnLayoutStart(context.Context, int, bool) {
	h.record("layout:start")
}

func (h *recordingHooks) OnLayoutComplete(context.Context, int, time.Duration, error) {
	h.record("layout:done")
}

func (h *recordingHooks) OnRenderStart(context.Context, []string) {
	h.record("render:start")
}

func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.record("render:done")
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func TestRunnerFiresHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)

	if _, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{Text: lyrics}); err != nil {
		t.Fatal(err)
	}

	got := strings.Join(hooks.events, ",")
	want := "layout:start,layout:done,render:start,render:done"
	if got != want {
		t.Errorf("events = %s, want %s", got, want)
	}
}
