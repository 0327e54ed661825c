// Package genres resolves genre ids against the static genre table.
package genres

import "github.com/killallgit/podcast-catalog/internal/models"

// Resolver looks up genre titles. The table is copied at construction and
// never modified.
type Resolver struct {
	table []models.Genre
	byID  map[int]int
}

// NewResolver builds a resolver over the given genre table
func NewResolver(table []models.Genre) *Resolver {
	r := &Resolver{
		table: make([]models.Genre, len(table)),
		byID:  make(map[int]int, len(table)),
	}
	copy(r.table, table)
	for i, g := range r.table {
		if _, seen := r.byID[g.ID]; !seen {
			r.byID[g.ID] = i
		}
	}
	return r
}

// Names returns the titles of the genres in ids. Titles come back in table
// order, not in the order of ids. Unknown ids are dropped.
func (r *Resolver) Names(ids []int) []string {
	names := []string{}
	if r == nil || len(ids) == 0 {
		return names
	}

	wanted := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	for _, g := range r.table {
		if _, ok := wanted[g.ID]; ok {
			names = append(names, g.Title)
		}
	}
	return names
}

// Lookup returns the genre with the given id
func (r *Resolver) Lookup(id int) (models.Genre, bool) {
	if r == nil {
		return models.Genre{}, false
	}
	i, ok := r.byID[id]
	if !ok {
		return models.Genre{}, false
	}
	return r.table[i], true
}

// All returns a copy of the genre table in table order
func (r *Resolver) All() []models.Genre {
	if r == nil {
		return []models.Genre{}
	}
	out := make([]models.Genre, len(r.table))
	copy(out, r.table)
	return out
}
