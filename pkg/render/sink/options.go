package sink

// Option configures the SVG, PNG and PDF sinks.
type Option func(*settings)

type settings struct {
	theme      Theme
	label      bool
	qr         string
	background bool
	embedFont  bool
	scale      float64
}

func newSettings(opts ...Option) settings {
	s := settings{
		theme:      themes[ThemeLight],
		background: true,
		embedFont:  true,
		scale:      2,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.scale <= 0 {
		s.scale = 2
	}
	return s
}

// WithTheme sets the colors. Use LookupTheme to resolve a name.
func WithTheme(t Theme) Option { return func(s *settings) { s.theme = t } }

// WithCenterLabel writes the document label in the empty center of the
// spiral. It is ignored when a QR code is drawn.
func WithCenterLabel() Option { return func(s *settings) { s.label = true } }

// WithQR draws a QR code for content in the center of the spiral. Content
// that ValidateQR rejects is skipped and the center falls back to the label.
func WithQR(content string) Option { return func(s *settings) { s.qr = content } }

// WithBackground controls whether the paper color is painted. Without it the
// poster is transparent.
func WithBackground(on bool) Option { return func(s *settings) { s.background = on } }

// WithFontEmbed controls inlining Go Regular into the SVG (on by default).
func WithFontEmbed(on bool) Option { return func(s *settings) { s.embedFont = on } }

// WithScale sets the PNG pixel density; 2 (the default) renders a 650 unit
// canvas at 1300x1300 pixels.
func WithScale(f float64) Option { return func(s *settings) { s.scale = f } }
