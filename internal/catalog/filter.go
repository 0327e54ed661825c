package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/killallgit/podcast-catalog/internal/models"
)

// AllGenresValue is the control value that disables genre filtering
const AllGenresValue = "all"

// GenreFilter selects podcasts by genre. The zero value matches every
// podcast.
type GenreFilter struct {
	id    int
	isSet bool
}

// AllGenres returns a filter that keeps every podcast
func AllGenres() GenreFilter {
	return GenreFilter{}
}

// ByGenre returns a filter that keeps podcasts tagged with id
func ByGenre(id int) GenreFilter {
	return GenreFilter{id: id, isSet: true}
}

// ParseGenreFilter reads the value of the genre control: "all" (or empty)
// or a genre id as text.
func ParseGenreFilter(value string) (GenreFilter, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, AllGenresValue) {
		return AllGenres(), nil
	}
	id, err := strconv.Atoi(value)
	if err != nil {
		return GenreFilter{}, fmt.Errorf("invalid genre filter %q: %w", value, err)
	}
	return ByGenre(id), nil
}

// All reports whether the filter keeps every podcast
func (f GenreFilter) All() bool {
	return !f.isSet
}

// ID returns the genre id of the filter; zero when All is true
func (f GenreFilter) ID() int {
	return f.id
}

// String returns the control value for the filter
func (f GenreFilter) String() string {
	if f.All() {
		return AllGenresValue
	}
	return strconv.Itoa(f.id)
}

// FilterByGenre returns the podcasts matching f as a new slice
func FilterByGenre(records []models.Podcast, f GenreFilter) []models.Podcast {
	out := make([]models.Podcast, 0, len(records))
	for _, p := range records {
		if f.All() || p.HasGenre(f.id) {
			out = append(out, p)
		}
	}
	return out
}
