package sink

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/matzehuels/lyricspiral/pkg/errors"
)

// Theme is a paper and ink color pair.
type Theme struct {
	Name  string
	Paper string // hex, #rrggbb
	Ink   string
	// Accent colors the center label.
	Accent string
}

// Built-in theme names.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

var themes = map[string]Theme{
	ThemeLight: {Name: ThemeLight, Paper: "#ffffff", Ink: "#1a1a1a", Accent: "#8a8a8a"},
	ThemeDark:  {Name: ThemeDark, Paper: "#141414", Ink: "#f2efe8", Accent: "#9a968c"},
}

// ThemeNames lists the built-in themes in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LookupTheme returns the named theme. The empty name is the light theme.
func LookupTheme(name string) (Theme, error) {
	if name == "" {
		return themes[ThemeLight], nil
	}
	t, ok := themes[strings.ToLower(name)]
	if !ok {
		return Theme{}, errors.New(errors.ErrCodeInvalidStyle, "unknown theme %q (want one of %s)", name, strings.Join(ThemeNames(), ", "))
	}
	return t, nil
}

func hexColor(s string) color.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(strings.TrimPrefix(s, "#"), "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.Black
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
