package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lyricspiral/pkg/errors"
	"github.com/matzehuels/lyricspiral/pkg/integrations/lrclib"
	"github.com/matzehuels/lyricspiral/pkg/pipeline"
)

// posterCommand creates the poster command: song lookup straight to poster.
func (c *CLI) posterCommand() *cobra.Command {
	var (
		query   lrclib.LyricsQuery
		output  string
		noCache bool
		refresh bool
		lf      layoutFlags
		rf      renderFlags
	)

	cmd := &cobra.Command{
		Use:   "poster",
		Short: "Fetch lyrics for a song and render them as a poster",
		Long: `Fetch lyrics for a song from lrclib and render them as a spiral poster.

Title and artist are taken from the song unless --title or --artist are set.

Examples:
  lyricspiral poster --artist "The Beatles" --track "Hey Jude"
  lyricspiral poster --artist Queen --track "Bohemian Rhapsody" -f png --label`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// --artist names both the song to fetch and the label artist.
			query.Artist = strings.TrimSpace(lf.artist)
			if query.Artist == "" {
				return fmt.Errorf("required flag \"artist\" not set")
			}
			opts := pipeline.Options{Logger: c.Logger}
			lf.apply(cmd, c.Config, &opts)
			if err := rf.apply(cmd, c.Config, &opts); err != nil {
				return err
			}
			return c.renderSong(cmd.Context(), query, opts, output, noCache, refresh)
		},
	}

	cmd.Flags().StringVar(&query.Track, "track", "", "track name (required)")
	cmd.Flags().StringVar(&query.Album, "album", "", "album name to narrow the match")
	cmd.Flags().Float64Var(&query.Duration, "duration", 0, "track length in seconds to narrow the match")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached lyrics")
	lf.register(cmd)
	rf.register(cmd)
	_ = cmd.MarkFlagRequired("track")

	return cmd
}

// renderSong fetches lyrics for q and renders them through the pipeline.
func (c *CLI) renderSong(ctx context.Context, q lrclib.LyricsQuery, opts pipeline.Options, output string, noCache, refresh bool) error {
	text, source, err := c.fetchLyrics(ctx, q, noCache, refresh)
	if err != nil {
		return err
	}

	opts.Text = text
	opts.Source = source
	if opts.Title == "" {
		opts.Title = q.Track
	}
	if opts.Artist == "" {
		opts.Artist = q.Artist
	}
	return c.runPipeline(ctx, opts, stdinName, output, noCache)
}

// fetchLyrics looks up a song and returns layout-ready text along with the
// catalog URL it came from.
func (c *CLI) fetchLyrics(ctx context.Context, q lrclib.LyricsQuery, noCache, refresh bool) (string, string, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return "", "", fmt.Errorf("initialize cache: %w", err)
	}
	defer cc.Close()

	client := c.newLyricsClient(cc)
	c.Logger.Debug("fetching lyrics", "artist", q.Artist, "track", q.Track, "url", client.BaseURL())

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Fetching lyrics for %s - %s...", q.Artist, q.Track))
	spinner.Start()
	lyrics, err := client.GetLyrics(ctx, q, refresh)
	if err != nil {
		spinner.StopWithError("Lookup failed")
		return "", "", err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Fetched lyrics for %s - %s", q.Artist, q.Track))

	if lyrics.Instrumental {
		printWarning("%s - %s is instrumental", q.Artist, q.Track)
		return "", "", errors.New(errors.ErrCodeLyricsNotFound, "%s - %s has no lyrics", q.Artist, q.Track)
	}
	text := lyrics.Text()
	if strings.TrimSpace(text) == "" {
		printWarning("No lyrics text for %s - %s", q.Artist, q.Track)
		return "", "", errors.New(errors.ErrCodeLyricsNotFound, "%s - %s has no lyrics", q.Artist, q.Track)
	}
	return text, lyrics.Source, nil
}
