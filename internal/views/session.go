package views

import (
	"io"
	"net/url"
	"strconv"

	"github.com/killallgit/podcast-catalog/internal/catalog"
	"github.com/killallgit/podcast-catalog/internal/dataset"
	"github.com/killallgit/podcast-catalog/internal/dates"
	"github.com/killallgit/podcast-catalog/internal/genres"
	"github.com/killallgit/podcast-catalog/internal/models"
	"github.com/rs/zerolog"
)

// Links builds the URLs of the catalog page for the current control values
type Links struct {
	Base  string
	Genre catalog.GenreFilter
	Sort  catalog.SortKey
}

func (l Links) build(open string) string {
	base := l.Base
	if base == "" {
		base = "/"
	}
	q := url.Values{}
	if !l.Genre.All() {
		q.Set("genre", l.Genre.String())
	}
	if l.Sort != "" && l.Sort != catalog.SortUpdated {
		q.Set("sort", string(l.Sort))
	}
	if open != "" {
		q.Set("open", open)
	}
	if len(q) == 0 {
		return base
	}
	return base + "?" + q.Encode()
}

// Open is the URL that shows the modal for podcast id
func (l Links) Open(id string) string {
	return l.build(id)
}

// Close is the URL of the page with the modal hidden
func (l Links) Close() string {
	return l.build("")
}

// Option is an entry of a select control
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// PageView is the data of the full catalog page
type PageView struct {
	Title        string
	GenreOptions []Option
	SortOptions  []Option
	Count        int
	Cards        []CardView
	Modal        modalData
}

// Session ties one grid and one modal to the shared dataset. A session is
// used by a single flow of events at a time.
type Session struct {
	dataset *dataset.Dataset
	genres  *genres.Resolver
	Grid    *Grid
	Modal   *Modal

	filter catalog.GenreFilter
	sort   catalog.SortKey
	links  Links
}

// NewSession creates a session with an empty grid and a hidden modal
func NewSession(ds *dataset.Dataset, resolver *genres.Resolver, formatter dates.Formatter, logger zerolog.Logger) *Session {
	modal := NewModal(resolver, formatter, ds)
	s := &Session{
		dataset: ds,
		genres:  resolver,
		Modal:   modal,
		Grid:    NewGrid(ds, resolver, formatter, modal, logger),
		sort:    catalog.SortUpdated,
	}
	s.setLinks(Links{Base: "/", Sort: catalog.SortUpdated})
	return s
}

func (s *Session) setLinks(l Links) {
	s.links = l
	s.Grid.SetLinker(l.Open)
	s.Modal.SetCloseHref(l.Close())
}

// Apply recomputes the visible list for the control values and renders the
// grid. It returns the visible list.
func (s *Session) Apply(filter catalog.GenreFilter, key catalog.SortKey) []models.Podcast {
	if !key.Valid() {
		key = catalog.SortUpdated
	}
	s.filter = filter
	s.sort = key
	s.setLinks(Links{Base: s.links.Base, Genre: filter, Sort: key})

	visible := catalog.View(s.dataset.Podcasts(), filter, key)
	s.Grid.Render(visible)
	return visible
}

// Select routes a card activation through the grid
func (s *Session) Select(id string) error {
	return s.Grid.Select(id)
}

// Close hides the modal
func (s *Session) Close() {
	s.Modal.Close()
}

// Links returns the URL builder for the current control values
func (s *Session) Links() Links {
	return s.links
}

// Page assembles the data of the full catalog page
func (s *Session) Page(title string) PageView {
	genreOptions := []Option{{Value: catalog.AllGenresValue, Label: "All Genres", Selected: s.filter.All()}}
	for _, g := range s.genres.All() {
		genreOptions = append(genreOptions, Option{
			Value:    strconv.Itoa(g.ID),
			Label:    g.Title,
			Selected: !s.filter.All() && s.filter.ID() == g.ID,
		})
	}

	sortOptions := make([]Option, 0, len(catalog.SortKeys))
	for _, k := range catalog.SortKeys {
		sortOptions = append(sortOptions, Option{Value: string(k), Label: k.Label(), Selected: k == s.sort})
	}

	cards := s.Grid.Views()
	return PageView{
		Title:        title,
		GenreOptions: genreOptions,
		SortOptions:  sortOptions,
		Count:        len(cards),
		Cards:        cards,
		Modal:        s.Modal.data(),
	}
}

// RenderPage writes the full catalog page
func (s *Session) RenderPage(w io.Writer, title string) error {
	return execute(w, "page", s.Page(title))
}
