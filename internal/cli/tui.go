package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/lyricspiral/pkg/integrations/lrclib"
)

// =============================================================================
// SongListModel - Interactive song selection
// =============================================================================

// SongListModel is the bubbletea model for picking a search result.
type SongListModel struct {
	Songs    []lrclib.Song
	Cursor   int
	Selected *lrclib.Song
	Height   int
	Offset   int
}

// NewSongListModel creates a new song list model.
func NewSongListModel(songs []lrclib.Song) SongListModel {
	return SongListModel{
		Songs:  songs,
		Height: 10,
	}
}

func (m SongListModel) Init() tea.Cmd {
	return nil
}

func (m SongListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Songs)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Songs) == 0 {
				return m, tea.Quit
			}
			song := m.Songs[m.Cursor]
			m.Selected = &song
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 3)
	}
	return m, nil
}

func (m SongListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Song"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ render poster  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Songs))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, append([]string{cursor}, songRow(m.Songs[i])...))
	}

	t := songTable(rows).StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return tableHeaderStyle
		}
		if m.Offset+row == m.Cursor {
			return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
		}
		if col == 4 {
			return lipgloss.NewStyle().Foreground(colorGray)
		}
		return lipgloss.NewStyle().Foreground(colorWhite)
	}).Headers("", "Track", "Artist", "Album", "Length")

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Songs))))

	return b.String()
}

// =============================================================================
// Table Helpers
// =============================================================================

var tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

// songTable returns a bordered table with rows.
func songTable(rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Rows(rows...)
}

func songRow(s lrclib.Song) []string {
	album := s.AlbumName
	if album == "" {
		album = "—"
	}
	return []string{s.TrackName, s.ArtistName, album, formatDuration(s.Duration)}
}

// formatDuration renders seconds as m:ss.
func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return "—"
	}
	total := int(seconds + 0.5)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
