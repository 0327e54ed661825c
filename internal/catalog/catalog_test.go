package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/killallgit/podcast-catalog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(records []models.Podcast) []string {
	out := make([]string, len(records))
	for i, p := range records {
		out[i] = p.ID
	}
	return out
}

func sampleRecords() []models.Podcast {
	return []models.Podcast{
		{ID: "a", Title: "Alpha", Genres: models.GenreIDs{1, 5}, Seasons: 2, Updated: "2024-01-01"},
		{ID: "b", Title: "Bravo", Genres: models.GenreIDs{2}, Seasons: 4, Updated: "2024-06-01", Released: "2020-03-01"},
		{ID: "c", Title: "Charlie", Genres: models.GenreIDs{5}, Seasons: 2, Updated: "2023-02-10", Released: "2024-09-01"},
		{ID: "d", Title: "Delta", Genres: models.GenreIDs{}, Seasons: 1, Updated: "not a date"},
	}
}

func TestParseGenreFilter(t *testing.T) {
	tests := []struct {
		input   string
		wantAll bool
		wantID  int
		wantErr bool
	}{
		{input: "all", wantAll: true},
		{input: "ALL", wantAll: true},
		{input: "", wantAll: true},
		{input: "5", wantID: 5},
		{input: " 12 ", wantID: 12},
		{input: "comedy", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := ParseGenreFilter(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAll, f.All())
			assert.Equal(t, tt.wantID, f.ID())
		})
	}
}

func TestGenreFilter_String(t *testing.T) {
	assert.Equal(t, "all", AllGenres().String())
	assert.Equal(t, "7", ByGenre(7).String())
}

func TestFilterByGenre(t *testing.T) {
	records := sampleRecords()

	all := FilterByGenre(records, AllGenres())
	assert.Len(t, all, len(records))

	five := FilterByGenre(records, ByGenre(5))
	assert.Equal(t, []string{"a", "c"}, ids(five))
	for _, p := range five {
		assert.True(t, p.HasGenre(5))
	}

	assert.Empty(t, FilterByGenre(records, ByGenre(99)))
	assert.Empty(t, FilterByGenre(nil, AllGenres()))
}

func TestSortBy(t *testing.T) {
	tests := []struct {
		name string
		key  SortKey
		want []string
	}{
		{name: "updated", key: SortUpdated, want: []string{"b", "a", "c", "d"}},
		{name: "newest uses release then updated", key: SortNewest, want: []string{"c", "a", "b", "d"}},
		{name: "popular with title tie break", key: SortPopular, want: []string{"b", "a", "c", "d"}},
		{name: "unknown key falls back to updated", key: SortKey("loudest"), want: []string{"b", "a", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(SortBy(sampleRecords(), tt.key))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SortBy(%s) mismatch (-want +got):\n%s", tt.key, diff)
			}
		})
	}
}

func TestSortBy_PopularTieIsAlphabetical(t *testing.T) {
	records := []models.Podcast{
		{ID: "z", Title: "Zebra Talk", Seasons: 3},
		{ID: "m", Title: "Middle Ground", Seasons: 3},
	}
	assert.Equal(t, []string{"m", "z"}, ids(SortBy(records, SortPopular)))
}

func TestSortBy_DoesNotMutateInput(t *testing.T) {
	records := sampleRecords()
	before := sampleRecords()

	for _, key := range append(SortKeys, SortKey("other")) {
		_ = SortBy(records, key)
		if diff := cmp.Diff(before, records); diff != "" {
			t.Fatalf("SortBy(%s) mutated input (-before +after):\n%s", key, diff)
		}
	}
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortPopular, ParseSortKey("popular"))
	assert.Equal(t, SortNewest, ParseSortKey(" Newest "))
	assert.Equal(t, SortUpdated, ParseSortKey(""))
	assert.Equal(t, SortUpdated, ParseSortKey("bogus"))
	assert.Equal(t, "Most Popular", SortPopular.Label())
}

func TestView(t *testing.T) {
	records := []models.Podcast{
		{ID: "A", Title: "A", Genres: models.GenreIDs{1}, Updated: "2024-01-01"},
		{ID: "B", Title: "B", Genres: models.GenreIDs{2}, Updated: "2024-06-01"},
	}

	assert.Equal(t, []string{"A"}, ids(View(records, ByGenre(1), SortUpdated)))
	assert.Equal(t, []string{"B", "A"}, ids(View(records, AllGenres(), SortUpdated)))
	assert.Equal(t, []string{"A", "B"}, ids(records))
}
