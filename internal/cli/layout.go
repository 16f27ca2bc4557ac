package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lyricspiral/pkg/pipeline"
	"github.com/matzehuels/lyricspiral/pkg/poster"
)

// layoutCommand creates the layout command for computing spiral layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		lf      layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [file|-]",
		Short: "Compute a spiral layout from text",
		Long: `Compute a spiral layout from text.

The layout command reads a text file (or stdin) and places every character on
the spiral. The output is a layout.json document (same format as
'render -f json') that can be rendered with the 'visualize' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{Logger: c.Logger}
			lf.apply(cmd, c.Config, &opts)
			return c.runLayout(cmd.Context(), inputArg(args), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json, - for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	lf.register(cmd)

	return cmd
}

// runLayout reads the text, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	text, err := c.readText(input)
	if err != nil {
		return err
	}
	opts.Text = text

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	doc, cacheHit, err := runner.LayoutWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input, "poster") + ".layout.json"
	}

	if outputPath == stdinName {
		data, err := poster.Marshal(doc)
		if err != nil {
			return err
		}
		_, err = c.stdout.Write(append(data, '\n'))
		return err
	}

	if err := poster.WriteFile(outputPath, doc); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(doc, cacheHit)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}
