package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/lyricspiral/pkg/poster"
	"github.com/matzehuels/lyricspiral/pkg/spiral"
)

func captureUI(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	oldOut, oldErr := uiOut, uiErr
	uiOut, uiErr = &out, &errOut
	t.Cleanup(func() { uiOut, uiErr = oldOut, oldErr })
	return &out, &errOut
}

func TestPrintStats(t *testing.T) {
	out, _ := captureUI(t)

	doc := poster.New("abc", poster.Meta{}, spiral.Config{PrintMode: true})
	printStats(doc, true)

	line := out.String()
	for _, want := range []string{"3", "glyphs", "34pt", "print", "cached"} {
		if !strings.Contains(line, want) {
			t.Errorf("stats line %q missing %q", line, want)
		}
	}
}

func TestWarningsGoToStderr(t *testing.T) {
	out, errOut := captureUI(t)

	printWarning("Hey Jude is instrumental")
	printInfo("No songs found")

	if !strings.Contains(errOut.String(), "instrumental") {
		t.Error("warning should be written to stderr")
	}
	if strings.Contains(out.String(), "instrumental") || !strings.Contains(out.String(), "No songs found") {
		t.Errorf("stdout = %q", out.String())
	}
}
