package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/lyricspiral/pkg/buildinfo"
	"github.com/matzehuels/lyricspiral/pkg/errors"
	"github.com/matzehuels/lyricspiral/pkg/integrations"
	"github.com/matzehuels/lyricspiral/pkg/integrations/lrclib"
	"github.com/matzehuels/lyricspiral/pkg/pipeline"
	"github.com/matzehuels/lyricspiral/pkg/poster"
)

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code,omitempty"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Message: "Proxy server is running", Version: buildinfo.Short()})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if err := errors.ValidateQuery(q); err != nil {
		writeError(w, http.StatusBadRequest, "Search query is required", errors.UserMessage(err), errors.ErrCodeInvalidInput)
		return
	}

	songs, err := s.lyrics.Search(r.Context(), q, refresh(r))
	if err != nil {
		s.writeLyricsError(w, r, "Failed to search songs", err)
		return
	}
	if songs == nil {
		songs = []lrclib.Song{}
	}
	writeJSON(w, http.StatusOK, songs)
}

func (s *Server) handleLyrics(w http.ResponseWriter, r *http.Request) {
	q, err := lyricsQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Artist and track name are required", err.Error(), errors.ErrCodeInvalidInput)
		return
	}

	lyrics, err := s.lyrics.GetLyrics(r.Context(), q, refresh(r))
	if err != nil {
		s.writeLyricsError(w, r, "Failed to fetch lyrics", err)
		return
	}
	writeJSON(w, http.StatusOK, lyrics)
}

type layoutRequest struct {
	Text       string  `json:"text"`
	Title      string  `json:"title,omitempty"`
	Artist     string  `json:"artist,omitempty"`
	CanvasSize float64 `json:"canvasSize,omitempty"`
	PrintMode  bool    `json:"printMode,omitempty"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if !s.decode(w, r, &req) {
		return
	}

	opts := pipeline.Options{
		Text:          req.Text,
		Title:         req.Title,
		Artist:        req.Artist,
		CanvasSize:    req.CanvasSize,
		PrintMode:     req.PrintMode,
		MaxTextLength: s.cfg.MaxTextLength,
	}
	doc, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.writePipelineError(w, r, err)
		return
	}
	setCacheHeader(w, hit)
	writeJSON(w, http.StatusOK, doc)
}

type posterRequest struct {
	layoutRequest
	Theme       string  `json:"theme,omitempty"`
	CenterLabel bool    `json:"centerLabel,omitempty"`
	QR          string  `json:"qr,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
}

func (s *Server) handlePoster(w http.ResponseWriter, r *http.Request) {
	var req posterRequest
	if !s.decode(w, r, &req) {
		return
	}

	s.renderPoster(w, r, pipeline.Options{
		Text:        req.Text,
		Title:       req.Title,
		Artist:      req.Artist,
		CanvasSize:  req.CanvasSize,
		PrintMode:   req.PrintMode,
		Theme:       req.Theme,
		CenterLabel: req.CenterLabel,
		QR:          req.QR,
		Scale:       req.Scale,
	})
}

// handlePosterFromLyrics fetches lyrics and renders them in one request.
// Render options come from the query string.
func (s *Server) handlePosterFromLyrics(w http.ResponseWriter, r *http.Request) {
	q, err := lyricsQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Artist and track name are required", err.Error(), errors.ErrCodeInvalidInput)
		return
	}

	lyrics, err := s.lyrics.GetLyrics(r.Context(), q, refresh(r))
	if err != nil {
		s.writeLyricsError(w, r, "Failed to fetch lyrics", err)
		return
	}
	text := lyrics.Text()
	if strings.TrimSpace(text) == "" {
		writeError(w, http.StatusNotFound, "No lyrics found for this song", "track is instrumental", errors.ErrCodeLyricsNotFound)
		return
	}

	params := r.URL.Query()
	opts := pipeline.Options{
		Text:        text,
		Title:       q.Track,
		Artist:      q.Artist,
		Source:      lyrics.Source,
		PrintMode:   boolParam(params.Get("print")),
		Theme:       params.Get("theme"),
		CenterLabel: boolParam(params.Get("label")),
		QR:          params.Get("qr"),
	}
	if v := params.Get("canvasSize"); v != "" {
		size, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid canvas size", err.Error(), errors.ErrCodeInvalidCanvas)
			return
		}
		opts.CanvasSize = size
	}
	if v := params.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid scale", err.Error(), errors.ErrCodeInvalidInput)
			return
		}
		opts.Scale = scale
	}
	s.renderPoster(w, r, opts)
}

func (s *Server) renderPoster(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}
	opts.MaxTextLength = s.cfg.MaxTextLength

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RenderTimeout)
	defer cancel()

	res, err := s.runner.Execute(ctx, opts)
	if err != nil {
		s.writePipelineError(w, r, err)
		return
	}

	data := res.Artifacts[format]
	setCacheHeader(w, res.CacheInfo.RenderHit)
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if format != pipeline.FormatJSON {
		w.Header().Set("Content-Disposition", `inline; filename="`+filename(res.Document, format)+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// decode reads a JSON body, answering 400 or 413 itself on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large", err.Error(), errors.ErrCodeTextTooLong)
			return false
		}
		writeError(w, http.StatusBadRequest, "Invalid JSON body", err.Error(), errors.ErrCodeInvalidInput)
		return false
	}
	return true
}

func (s *Server) writePipelineError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	switch {
	case code != "":
	case stderrors.Is(err, context.DeadlineExceeded):
		code = errors.ErrCodeTimeout
	default:
		code = errors.ErrCodeInternal
	}

	status := errors.HTTPStatus(code)
	if status >= 500 {
		s.logger.Error("pipeline failed", "err", err, "id", RequestID(r.Context()))
	}
	writeError(w, status, http.StatusText(status), errors.UserMessage(err), code)
}

// writeLyricsError maps catalog failures onto the proxy's historical
// responses: 404 for unknown tracks, 500 with details otherwise.
func (s *Server) writeLyricsError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case stderrors.Is(err, lrclib.ErrInvalidQuery):
		writeError(w, http.StatusBadRequest, msg, err.Error(), errors.ErrCodeInvalidInput)
	case stderrors.Is(err, integrations.ErrNotFound):
		writeError(w, http.StatusNotFound, "No lyrics found for this song", "", errors.ErrCodeLyricsNotFound)
	case stderrors.Is(err, integrations.ErrRateLimited):
		var rl *errors.RateLimitedError
		if stderrors.As(err, &rl) && rl.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfter))
		}
		writeError(w, http.StatusTooManyRequests, msg, err.Error(), errors.ErrCodeRateLimited)
	default:
		s.logger.Error(msg, "err", err, "id", RequestID(r.Context()))
		writeError(w, http.StatusInternalServerError, msg, err.Error(), errors.ErrCodeNetwork)
	}
}

func lyricsQuery(r *http.Request) (lrclib.LyricsQuery, error) {
	params := r.URL.Query()
	q := lrclib.LyricsQuery{
		Artist: strings.TrimSpace(params.Get("artist")),
		Track:  strings.TrimSpace(params.Get("track")),
		Album:  strings.TrimSpace(params.Get("album")),
	}
	if q.Artist == "" || q.Track == "" {
		return q, stderrors.New("artist and track query parameters are required")
	}
	if v := params.Get("duration"); v != "" {
		d, err := strconv.ParseFloat(v, 64)
		if err != nil || d < 0 {
			return q, stderrors.New("duration must be a non-negative number of seconds")
		}
		q.Duration = d
	}
	return q, nil
}

func refresh(r *http.Request) bool {
	return boolParam(r.URL.Query().Get("refresh"))
}

func boolParam(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
}

// filename builds "title-artist.format" from the document label.
func filename(doc poster.Document, format string) string {
	base := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, doc.Label())
	base = strings.Trim(base, "-")
	for strings.Contains(base, "--") {
		base = strings.ReplaceAll(base, "--", "-")
	}
	if base == "" {
		base = "poster"
	}
	return base + "." + format
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, details string, code errors.Code) {
	writeJSON(w, status, errorResponse{Error: msg, Details: details, Code: string(code)})
}
