package views

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/killallgit/podcast-catalog/internal/dataset"
	"github.com/killallgit/podcast-catalog/internal/dates"
	"github.com/killallgit/podcast-catalog/internal/genres"
	"github.com/killallgit/podcast-catalog/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 4, 12, 0, 0, 0, time.UTC)

func testFormatter() dates.Formatter {
	return dates.Formatter{Now: func() time.Time { return testNow }}
}

func testGenres() []models.Genre {
	return []models.Genre{
		{ID: 1, Title: "Personal Growth"},
		{ID: 2, Title: "History"},
		{ID: 5, Title: "Entertainment"},
	}
}

func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(
		[]models.Podcast{
			{ID: "A", Title: "Alpha Hour", Image: "https://img.example.com/a.jpg", Description: "About alpha.", Genres: models.GenreIDs{1}, Seasons: 1, Updated: "2024-01-01"},
			{ID: "B", Title: "Bravo Stories", Image: "https://img.example.com/b.jpg", Genres: models.GenreIDs{2, 5}, Seasons: 3, Updated: "2024-06-01"},
		},
		testGenres(),
		map[string][]models.Season{
			"B": {
				{Number: 1, Title: "Beginnings", Episodes: 1},
				{Number: 2, Title: "Middles", Episodes: 8},
			},
		},
	)
	require.NoError(t, err)
	return ds
}

func testSession(t *testing.T) (*Session, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	ds := testDataset(t)
	return NewSession(ds, genres.NewResolver(ds.Genres()), testFormatter(), zerolog.New(&logs)), &logs
}

func render(t *testing.T, c Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	return buf.String()
}

func containsAll(t *testing.T, s string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		if !strings.Contains(s, p) {
			t.Errorf("expected output to contain %q\n%s", p, s)
		}
	}
}
