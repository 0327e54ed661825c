// Package dataset holds the static podcast, genre and season tables. A
// Dataset is loaded once at startup and is read-only afterwards; every
// accessor hands out copies.
package dataset

import (
	"fmt"
	"slices"

	"github.com/killallgit/podcast-catalog/internal/models"
)

// Dataset is the authoritative, read-only catalog
type Dataset struct {
	podcasts []models.Podcast
	index    map[string]int
	genres   []models.Genre
	seasons  map[string][]models.Season
}

// New validates the tables and builds a Dataset. Podcast ids must be
// present and unique; genre ids must be unique.
func New(podcasts []models.Podcast, genres []models.Genre, seasons map[string][]models.Season) (*Dataset, error) {
	ds := &Dataset{
		podcasts: make([]models.Podcast, len(podcasts)),
		index:    make(map[string]int, len(podcasts)),
		genres:   make([]models.Genre, len(genres)),
		seasons:  make(map[string][]models.Season, len(seasons)),
	}

	for i, p := range podcasts {
		ds.podcasts[i] = clonePodcast(p)
	}
	for i, p := range ds.podcasts {
		if p.ID == "" {
			return nil, fmt.Errorf("podcast at position %d has no id", i)
		}
		if _, dup := ds.index[p.ID]; dup {
			return nil, fmt.Errorf("duplicate podcast id %q", p.ID)
		}
		if p.Genres == nil {
			ds.podcasts[i].Genres = models.GenreIDs{}
		}
		ds.index[p.ID] = i
	}

	seen := make(map[int]bool, len(genres))
	for i, g := range genres {
		ds.genres[i] = cloneGenre(g)
	}
	for _, g := range ds.genres {
		if seen[g.ID] {
			return nil, fmt.Errorf("duplicate genre id %d", g.ID)
		}
		seen[g.ID] = true
	}

	for id, list := range seasons {
		cp := make([]models.Season, len(list))
		copy(cp, list)
		for i := range cp {
			cp[i].PodcastID = id
		}
		ds.seasons[id] = cp
	}

	return ds, nil
}

// Podcasts returns every podcast in dataset order
func (d *Dataset) Podcasts() []models.Podcast {
	out := make([]models.Podcast, len(d.podcasts))
	for i, p := range d.podcasts {
		out[i] = clonePodcast(p)
	}
	return out
}

// Podcast looks up a podcast by id
func (d *Dataset) Podcast(id string) (models.Podcast, bool) {
	i, ok := d.index[id]
	if !ok {
		return models.Podcast{}, false
	}
	return clonePodcast(d.podcasts[i]), true
}

// Genres returns the genre table in table order
func (d *Dataset) Genres() []models.Genre {
	out := make([]models.Genre, len(d.genres))
	for i, g := range d.genres {
		out[i] = cloneGenre(g)
	}
	return out
}

// Seasons returns the season summaries for a podcast; empty when the
// podcast has no season detail
func (d *Dataset) Seasons(podcastID string) []models.Season {
	list := d.seasons[podcastID]
	out := make([]models.Season, len(list))
	copy(out, list)
	return out
}

// Len is the number of podcasts
func (d *Dataset) Len() int {
	return len(d.podcasts)
}

func clonePodcast(p models.Podcast) models.Podcast {
	p.Genres = slices.Clone(p.Genres)
	return p
}

func cloneGenre(g models.Genre) models.Genre {
	g.Shows = slices.Clone(g.Shows)
	return g
}
