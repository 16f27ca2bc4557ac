package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lyricspiral/pkg/pipeline"
)

// stdinName is the input argument that reads from standard input.
const stdinName = "-"

// readText reads the poster text from a file or, for "-", from stdin.
func (c *CLI) readText(input string) (string, error) {
	var (
		data []byte
		err  error
	)
	if input == stdinName {
		data, err = io.ReadAll(c.stdin)
	} else {
		data, err = os.ReadFile(input)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", input, err)
	}
	return string(data), nil
}

// inputArg returns the single positional argument, defaulting to stdin.
func inputArg(args []string) string {
	if len(args) == 0 {
		return stdinName
	}
	return args[0]
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path; "-" is stdout.
func (c *CLI) openOutput(path string) (io.WriteCloser, error) {
	if path == stdinName {
		return nopCloser{c.stdout}, nil
	}
	return os.Create(path)
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input; stdin input uses
// fallback. If output has a format extension (.svg, .pdf, etc.), it strips
// that extension.
func basePath(output, input, fallback string) string {
	if output == "" {
		if input == stdinName || input == "" {
			return fallback
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	fallback  string // base name when reading stdin
	cacheHit  bool
}

// writeArtifacts writes one file per format. A single format goes to output
// verbatim (or stdout for "-"); several formats share a base path.
func (c *CLI) writeArtifacts(p artifactWriteParams) error {
	formats := p.formats
	if len(formats) == 0 {
		for f := range p.artifacts {
			formats = append(formats, f)
		}
		sort.Strings(formats)
	}

	var paths []string
	for _, format := range formats {
		data, ok := p.artifacts[format]
		if !ok {
			return fmt.Errorf("no %s output produced", format)
		}

		path := basePath(p.output, p.input, p.fallback) + "." + format
		if len(formats) == 1 && p.output != "" {
			path = p.output
		}

		out, err := c.openOutput(path)
		if err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		if _, err := out.Write(data); err != nil {
			out.Close()
			return fmt.Errorf("write output %s: %w", path, err)
		}
		if err := out.Close(); err != nil {
			return err
		}
		if path != stdinName {
			paths = append(paths, path)
		}
	}

	if len(paths) == 0 {
		return nil
	}
	printSuccess("Poster complete")
	for _, path := range paths {
		printFile(path)
	}
	return nil
}

// =============================================================================
// Shared Flags
// =============================================================================

type layoutFlags struct {
	canvasSize float64
	printMode  bool
	title      string
	artist     string
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.canvasSize, "canvas-size", pipeline.DefaultCanvasSize, "square canvas side in user units")
	cmd.Flags().BoolVar(&f.printMode, "print", false, "use print-mode parameters")
	cmd.Flags().StringVar(&f.title, "title", "", "song title for the label and metadata")
	cmd.Flags().StringVar(&f.artist, "artist", "", "artist for the label and metadata")
}

// apply copies the flags into opts, letting config values stand in for
// flags the user did not set.
func (f *layoutFlags) apply(cmd *cobra.Command, cfg Config, opts *pipeline.Options) {
	opts.CanvasSize = f.canvasSize
	if !cmd.Flags().Changed("canvas-size") && cfg.Layout.CanvasSize > 0 {
		opts.CanvasSize = cfg.Layout.CanvasSize
	}
	opts.PrintMode = f.printMode
	if !cmd.Flags().Changed("print") {
		opts.PrintMode = cfg.Layout.PrintMode
	}
	opts.Title = f.title
	opts.Artist = f.artist
}

type renderFlags struct {
	formats string
	theme   string
	label   bool
	qr      string
	scale   float64
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&f.theme, "theme", pipeline.DefaultTheme, "color theme: light, dark")
	cmd.Flags().BoolVar(&f.label, "label", false, "write title and artist in the center")
	cmd.Flags().StringVar(&f.qr, "qr", "", "draw a QR code for this URL in the center")
	cmd.Flags().Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG pixel density")
}

func (f *renderFlags) apply(cmd *cobra.Command, cfg Config, opts *pipeline.Options) error {
	opts.Formats = parseFormats(f.formats)
	if !cmd.Flags().Changed("format") && len(cfg.Render.Formats) > 0 {
		opts.Formats = cfg.Render.Formats
	}
	opts.Theme = f.theme
	if !cmd.Flags().Changed("theme") && cfg.Render.Theme != "" {
		opts.Theme = cfg.Render.Theme
	}
	opts.CenterLabel = f.label
	if !cmd.Flags().Changed("label") {
		opts.CenterLabel = cfg.Render.Label
	}
	opts.Scale = f.scale
	if !cmd.Flags().Changed("scale") && cfg.Render.Scale > 0 {
		opts.Scale = cfg.Render.Scale
	}
	opts.QR = f.qr
	return opts.ValidateForRender()
}
