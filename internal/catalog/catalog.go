// Package catalog filters and orders podcast lists.
package catalog

import (
	"errors"

	"github.com/killallgit/podcast-catalog/internal/models"
)

// ErrPodcastNotFound is returned when a selected id has no matching record
var ErrPodcastNotFound = errors.New("podcast not found")

// View applies the genre filter and then the sort key. records is not
// modified.
func View(records []models.Podcast, filter GenreFilter, key SortKey) []models.Podcast {
	return SortBy(FilterByGenre(records, filter), key)
}
