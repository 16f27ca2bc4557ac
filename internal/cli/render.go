package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lyricspiral/pkg/pipeline"
)

// renderCommand creates the render command: text straight to poster.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		lf      layoutFlags
		rf      renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render text to a spiral poster",
		Long: `Render text to a spiral poster.

Reads a text file (or stdin), computes the layout and writes the poster in
every requested format. Equivalent to 'layout' followed by 'visualize'.

Examples:
  lyricspiral render lyrics.txt
  lyricspiral render lyrics.txt -f svg,png --theme dark --label --title "Hey Jude"
  pbpaste | lyricspiral render - -o poster.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{Logger: c.Logger}
			lf.apply(cmd, c.Config, &opts)
			if err := rf.apply(cmd, c.Config, &opts); err != nil {
				return err
			}
			input := inputArg(args)
			text, err := c.readText(input)
			if err != nil {
				return err
			}
			opts.Text = text
			return c.runPipeline(cmd.Context(), opts, input, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	lf.register(cmd)
	rf.register(cmd)

	return cmd
}

// runPipeline executes layout and render and writes the artifacts. It backs
// the render, poster and search commands.
func (c *CLI) runPipeline(ctx context.Context, opts pipeline.Options, input, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering poster...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := c.writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		fallback:  slug(result.Document.Label()),
		cacheHit:  result.CacheInfo.RenderHit,
	}); err != nil {
		return err
	}
	if output != stdinName {
		printStats(result.Document, result.CacheInfo.LayoutHit)
	}
	return nil
}

// trimLayoutExt maps "song.layout.json" to "song" so rendered files sit next
// to their layout.
func trimLayoutExt(path string) string {
	return strings.TrimSuffix(path, ".layout.json")
}

// slug turns a label into a file name base; empty labels become "poster".
func slug(label string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(label) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "poster"
	}
	return s
}
