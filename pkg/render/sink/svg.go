package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matzehuels/lyricspiral/pkg/fonts"
	"github.com/matzehuels/lyricspiral/pkg/poster"
)

// RenderSVG writes one <text> element per visible glyph, rotated about its
// own position. Whitespace glyphs keep their place in the layout but emit
// nothing.
func RenderSVG(doc poster.Document, opts ...Option) []byte {
	s := newSettings(opts...)
	size := doc.CanvasSize

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(size), num(size), num(size), num(size))
	if label := doc.Label(); label != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(label))
	}

	writeDefs(&buf, s)
	if s.background {
		fmt.Fprintf(&buf, `  <rect width="%s" height="%s" fill="%s"/>`+"\n", num(size), num(size), s.theme.Paper)
	}

	buf.WriteString(`  <g class="spiral" text-anchor="middle" dominant-baseline="middle">` + "\n")
	for _, g := range doc.Glyphs {
		if !visible(g.Char) {
			continue
		}
		x, y := num(g.X), num(g.Y)
		fmt.Fprintf(&buf, `    <text x="%s" y="%s" font-size="%s"`, x, y, num(g.FontSize))
		if g.LetterSpacing != 0 {
			fmt.Fprintf(&buf, ` letter-spacing="%s"`, num(g.LetterSpacing))
		}
		fmt.Fprintf(&buf, ` transform="rotate(%s %s %s)">%s</text>`+"\n", num(g.Angle), x, y, escapeXML(g.Char))
	}
	buf.WriteString("  </g>\n")

	writeCenter(&buf, doc, s)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeDefs(buf *bytes.Buffer, s settings) {
	buf.WriteString("  <defs>\n    <style>\n")
	if s.embedFont {
		fmt.Fprintf(buf, "      @font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }\n",
			fonts.FontFamily, fonts.RegularTTFBase64())
	}
	fmt.Fprintf(buf, "      text { font-family: %s; fill: %s; }\n", fonts.FallbackFontFamily, s.theme.Ink)
	fmt.Fprintf(buf, "      .label { fill: %s; }\n", s.theme.Accent)
	buf.WriteString("    </style>\n  </defs>\n")
}

// writeCenter fills the empty disc with either the QR code or the label.
// Content that cannot be encoded falls back to the label, as in RenderPNG.
func writeCenter(buf *bytes.Buffer, doc poster.Document, s settings) {
	if box, ok, err := fitQR(doc, s.qr); err == nil && ok {
		fmt.Fprintf(buf, `  <g class="qr" fill="%s">`+"\n", s.theme.Ink)
		box.runs(func(x, y, w, h float64) {
			fmt.Fprintf(buf, `    <rect x="%s" y="%s" width="%s" height="%s"/>`+"\n", num(x), num(y), num(w), num(h))
		})
		buf.WriteString("  </g>\n")
		return
	}

	if !s.label {
		return
	}
	label := doc.Label()
	size, ok := labelFontSize(doc, label)
	if !ok {
		return
	}
	cx, cy := doc.Center()
	fmt.Fprintf(buf, `  <text class="label" x="%s" y="%s" font-size="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		num(cx), num(cy), num(size), escapeXML(label))
}

// labelFontSize sizes label to fit across the inner disc, capped at the
// poster's own font size.
func labelFontSize(doc poster.Document, label string) (float64, bool) {
	n := utf8.RuneCountInString(label)
	if n == 0 {
		return 0, false
	}
	width := 2 * doc.InnerRadius() * 0.85
	size := min(doc.Params.FontSize*0.8, width/(float64(n)*0.6))
	if size < 4 {
		return 0, false
	}
	return size, true
}

func visible(char string) bool {
	return strings.TrimFunc(char, unicode.IsSpace) != ""
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
