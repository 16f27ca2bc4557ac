package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lyricspiral/pkg/errors"
	"github.com/matzehuels/lyricspiral/pkg/integrations/lrclib"
	"github.com/matzehuels/lyricspiral/pkg/pipeline"
)

// searchCommand creates the search command.
func (c *CLI) searchCommand() *cobra.Command {
	var (
		pick    bool
		output  string
		noCache bool
		refresh bool
		lf      layoutFlags
		rf      renderFlags
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search lrclib for songs",
		Long: `Search lrclib for songs by title, artist or album.

With --pick, an interactive list lets you choose a result, whose lyrics are
then rendered as a poster using the layout and render flags.

Examples:
  lyricspiral search "hey jude"
  lyricspiral search "bohemian rhapsody" --pick -f svg,png --label`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := errors.ValidateQuery(args[0]); err != nil {
				return err
			}

			songs, err := c.searchSongs(cmd, args[0], noCache, refresh)
			if err != nil {
				return err
			}
			if len(songs) == 0 {
				printInfo("No songs found for %q", args[0])
				return nil
			}
			if !pick {
				printSongs(songs)
				return nil
			}

			finalModel, err := tea.NewProgram(NewSongListModel(songs)).Run()
			if err != nil {
				return err
			}
			fm, ok := finalModel.(SongListModel)
			if !ok || fm.Selected == nil {
				printDetail("No selection made")
				return nil
			}

			opts := pipeline.Options{Logger: c.Logger}
			lf.apply(cmd, c.Config, &opts)
			if err := rf.apply(cmd, c.Config, &opts); err != nil {
				return err
			}
			q := lrclib.LyricsQuery{
				Artist:   fm.Selected.ArtistName,
				Track:    fm.Selected.TrackName,
				Album:    fm.Selected.AlbumName,
				Duration: fm.Selected.Duration,
			}
			return c.renderSong(ctx, q, opts, output, noCache, refresh)
		},
	}

	cmd.Flags().BoolVar(&pick, "pick", false, "choose a result interactively and render it")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached lrclib responses")
	lf.register(cmd)
	rf.register(cmd)

	return cmd
}

func (c *CLI) searchSongs(cmd *cobra.Command, query string, noCache, refresh bool) ([]lrclib.Song, error) {
	ctx := cmd.Context()
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, fmt.Errorf("initialize cache: %w", err)
	}
	defer cc.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Searching lrclib for %q...", query))
	spinner.Start()
	songs, err := c.newLyricsClient(cc).Search(ctx, query, refresh)
	if err != nil {
		spinner.StopWithError("Search failed")
		return nil, err
	}
	spinner.Stop()
	return songs, nil
}

// printSongs prints search results as a table.
func printSongs(songs []lrclib.Song) {
	rows := make([][]string, 0, len(songs))
	for _, s := range songs {
		rows = append(rows, songRow(s))
	}

	t := songTable(rows).StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return tableHeaderStyle
		}
		if col == 3 {
			return lipgloss.NewStyle().Foreground(colorGray)
		}
		return StyleValue
	}).Headers("Track", "Artist", "Album", "Length")

	fmt.Fprintln(uiOut, t.Render())
	printNextStep("Render one", `lyricspiral poster --artist "<artist>" --track "<track>"`)
}
