package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/killallgit/podcast-catalog/internal/dates"
	"github.com/killallgit/podcast-catalog/internal/models"
)

// SortKey names an ordering of the visible list
type SortKey string

const (
	// SortUpdated orders by last update, most recent first
	SortUpdated SortKey = "updated"
	// SortNewest orders by release date, falling back to last update
	SortNewest SortKey = "newest"
	// SortPopular orders by season count, then title
	SortPopular SortKey = "popular"
)

// SortKeys lists the recognized keys in control order
var SortKeys = []SortKey{SortUpdated, SortNewest, SortPopular}

// ParseSortKey normalizes the sort control value. Unknown values map to
// SortUpdated.
func ParseSortKey(value string) SortKey {
	key := SortKey(strings.ToLower(strings.TrimSpace(value)))
	if key.Valid() {
		return key
	}
	return SortUpdated
}

// Valid reports whether k is a recognized key
func (k SortKey) Valid() bool {
	for _, known := range SortKeys {
		if k == known {
			return true
		}
	}
	return false
}

// Label is the text shown in the sort control
func (k SortKey) Label() string {
	switch k {
	case SortNewest:
		return "Newest"
	case SortPopular:
		return "Most Popular"
	default:
		return "Recently Updated"
	}
}

// SortBy returns a sorted copy of records. Unrecognized keys sort as
// SortUpdated. Unparseable timestamps sort last.
func SortBy(records []models.Podcast, key SortKey) []models.Podcast {
	out := make([]models.Podcast, len(records))
	copy(out, records)

	if key == SortPopular {
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Seasons != out[j].Seasons {
				return out[i].Seasons > out[j].Seasons
			}
			return out[i].Title < out[j].Title
		})
		return out
	}

	stamp := updatedTime
	if key == SortNewest {
		stamp = releaseTime
	}

	type entry struct {
		podcast models.Podcast
		at      time.Time
	}
	entries := make([]entry, len(out))
	for i, p := range out {
		entries[i] = entry{podcast: p, at: stamp(p)}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].at.After(entries[j].at)
	})
	for i, e := range entries {
		out[i] = e.podcast
	}
	return out
}

func releaseTime(p models.Podcast) time.Time {
	if t, ok := dates.Parse(p.Released); ok {
		return t
	}
	return updatedTime(p)
}

func updatedTime(p models.Podcast) time.Time {
	t, _ := dates.Parse(p.Updated)
	return t
}
