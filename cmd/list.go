package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/killallgit/podcast-catalog/api/types"
	"github.com/killallgit/podcast-catalog/internal/catalog"
	"github.com/killallgit/podcast-catalog/internal/views"
	"github.com/spf13/cobra"
)

var (
	listGenre string
	listSort  string
)

// listCmd prints the catalog
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List podcasts",
	Long: `Print the catalog filtered by genre and sorted.

Example:
  catalog list
  catalog list --genre 3
  catalog list --sort popular`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listGenre, "genre", catalog.AllGenresValue, "genre id, or \"all\"")
	listCmd.Flags().StringVar(&listSort, "sort", string(catalog.SortUpdated), "updated, newest or popular")
}

type styles struct {
	title  lipgloss.Style
	id     lipgloss.Style
	faint  lipgloss.Style
	genre  lipgloss.Style
	header lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		title:  r.NewStyle().Bold(true),
		id:     r.NewStyle().Foreground(lipgloss.Color("8")),
		faint:  r.NewStyle().Faint(true),
		genre:  r.NewStyle().Foreground(lipgloss.Color("6")),
		header: r.NewStyle().Bold(true).Underline(true),
	}
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}

	filter, err := catalog.ParseGenreFilter(listGenre)
	if err != nil {
		return err
	}
	key := catalog.ParseSortKey(listSort)

	deps, closeDB, err := buildDependencies(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	session := deps.NewSession()
	session.Apply(filter, key)

	writeList(cmd.OutOrStdout(), deps, filter, key, session.Grid.Views())
	return nil
}

func writeList(out io.Writer, deps *types.Dependencies, filter catalog.GenreFilter, key catalog.SortKey, cards []views.CardView) {
	s := newStyles(out)

	genre := "All Genres"
	if !filter.All() {
		genre = fmt.Sprintf("genre %d", filter.ID())
		if g, ok := deps.Genres.Lookup(filter.ID()); ok {
			genre = g.Title
		}
	}
	fmt.Fprintln(out, s.header.Render(fmt.Sprintf("%s · %s", genre, key.Label())))

	if len(cards) == 0 {
		fmt.Fprintln(out, s.faint.Render("No podcasts match this genre."))
		return
	}

	for _, card := range cards {
		fmt.Fprintf(out, "%s %s\n", s.title.Render(card.Title), s.id.Render("#"+card.ID))
		fmt.Fprintf(out, "  %s · %s\n", card.SeasonsText, s.faint.Render(card.UpdatedText))
		if len(card.Genres) > 0 {
			tags := make([]string, 0, len(card.Genres))
			for _, g := range card.Genres {
				tags = append(tags, s.genre.Render(g))
			}
			fmt.Fprintf(out, "  %s\n", strings.Join(tags, ", "))
		}
	}
	fmt.Fprintln(out, s.faint.Render(fmt.Sprintf("%d %s", len(cards), plural(len(cards), "podcast", "podcasts"))))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
