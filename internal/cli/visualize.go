package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lyricspiral/pkg/errors"
	"github.com/matzehuels/lyricspiral/pkg/pipeline"
	"github.com/matzehuels/lyricspiral/pkg/poster"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		rf      renderFlags
	)

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a poster from a computed layout",
		Long: `Render a poster from a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it to SVG, PNG, PDF or JSON. The layout contains all positioning
information, so this step is purely about rendering.

Use 'render' as a shortcut to go directly from text to poster.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{Logger: c.Logger}
			if err := rf.apply(cmd, c.Config, &opts); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	rf.register(cmd)

	return cmd
}

// runVisualize loads the layout and renders it. Without a cache there is
// nothing for the runner to add, so the file is rendered straight from its
// bytes.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	spinner := newSpinnerWithContext(ctx, "Rendering poster...")
	spinner.Start()

	artifacts, cacheHit, err := c.renderLayout(ctx, data, opts, noCache)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize %s: %w", input, err)
	}
	spinner.Stop()

	return c.writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     trimLayoutExt(input),
		output:    output,
		fallback:  "poster",
		cacheHit:  cacheHit,
	})
}

func (c *CLI) renderLayout(ctx context.Context, data []byte, opts pipeline.Options, noCache bool) (map[string][]byte, bool, error) {
	if noCache {
		artifacts, err := pipeline.RenderFromLayoutData(ctx, data, opts)
		return artifacts, false, err
	}

	doc, err := poster.Unmarshal(data)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse layout")
	}
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return nil, false, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	return runner.RenderWithCacheInfo(ctx, doc, opts)
}
