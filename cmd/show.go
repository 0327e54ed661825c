package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/killallgit/podcast-catalog/internal/catalog"
	"github.com/killallgit/podcast-catalog/internal/views"
	"github.com/spf13/cobra"
)

// showCmd prints the detail view of one podcast
var showCmd = &cobra.Command{
	Use:   "show <podcast-id>",
	Short: "Show a podcast",
	Long: `Print the detail view of one podcast: genres, last update,
description and seasons.

Example:
  catalog show 10716`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}

	deps, closeDB, err := buildDependencies(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	session := deps.NewSession()
	if err := session.Select(args[0]); err != nil {
		return err
	}

	view, ok := session.Modal.View()
	if !ok {
		return fmt.Errorf("podcast %q: %w", args[0], catalog.ErrPodcastNotFound)
	}

	writeDetail(cmd.OutOrStdout(), view)
	return nil
}

func writeDetail(out io.Writer, view views.DetailView) {
	s := newStyles(out)

	fmt.Fprintf(out, "%s %s\n", s.title.Render(view.Title), s.id.Render("#"+view.ID))
	if len(view.Genres) > 0 {
		tags := make([]string, 0, len(view.Genres))
		for _, g := range view.Genres {
			tags = append(tags, s.genre.Render(g))
		}
		fmt.Fprintln(out, strings.Join(tags, ", "))
	}
	fmt.Fprintln(out, s.faint.Render(view.UpdatedText))

	if view.Description != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, view.Description)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, s.header.Render("Seasons"))
	if len(view.Seasons) == 0 {
		fmt.Fprintln(out, s.faint.Render("No seasons listed."))
		return
	}
	for _, season := range view.Seasons {
		fmt.Fprintf(out, "  Season %d: %s %s\n", season.Number, season.Title, s.faint.Render("("+season.EpisodesText+")"))
	}
}
