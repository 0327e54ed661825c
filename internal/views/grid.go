package views

import (
	"fmt"
	"io"

	"github.com/killallgit/podcast-catalog/internal/catalog"
	"github.com/killallgit/podcast-catalog/internal/dates"
	"github.com/killallgit/podcast-catalog/internal/genres"
	"github.com/killallgit/podcast-catalog/internal/models"
	"github.com/rs/zerolog"
)

// PodcastSource is the authoritative dataset the grid resolves selections
// against
type PodcastSource interface {
	Podcast(id string) (models.Podcast, bool)
}

// Presenter shows the detail of a selected podcast
type Presenter interface {
	Open(p models.Podcast)
}

// Grid owns the rendered cards and routes their selection signals to the
// presenter
type Grid struct {
	source    PodcastSource
	genres    *genres.Resolver
	dates     dates.Formatter
	presenter Presenter
	logger    zerolog.Logger
	link      func(id string) string

	cards   []*Card
	lastErr error
}

// NewGrid returns an empty grid
func NewGrid(source PodcastSource, resolver *genres.Resolver, formatter dates.Formatter, presenter Presenter, logger zerolog.Logger) *Grid {
	return &Grid{
		source:    source,
		genres:    resolver,
		dates:     formatter,
		presenter: presenter,
		logger:    logger,
		link:      func(id string) string { return "/podcasts/" + id },
	}
}

// SetLinker changes how card links are built. Takes effect on the next
// Render.
func (g *Grid) SetLinker(link func(id string) string) {
	g.link = link
}

// Render replaces the current cards with one card per record, in order
func (g *Grid) Render(list []models.Podcast) {
	g.cards = make([]*Card, 0, len(list))
	for _, p := range list {
		card := NewCard(g.genres, g.dates)
		card.SetRecord(p)
		if p.ID != "" {
			card.SetHref(g.link(p.ID))
		}
		card.OnSelect(g.handleSelection)
		g.cards = append(g.cards, card)
	}
}

// Cards returns the rendered cards in display order
func (g *Grid) Cards() []*Card {
	out := make([]*Card, len(g.cards))
	copy(out, g.cards)
	return out
}

// Views returns the display values of every populated card
func (g *Grid) Views() []CardView {
	views := make([]CardView, 0, len(g.cards))
	for _, c := range g.cards {
		if c.State() == CardPopulated {
			views = append(views, c.View())
		}
	}
	return views
}

// Card finds a rendered card by podcast id
func (g *Grid) Card(id string) (*Card, bool) {
	for _, c := range g.cards {
		if c.State() == CardPopulated && c.ID() == id {
			return c, true
		}
	}
	return nil, false
}

// Select activates the card for id. When no such card is rendered the
// selection is dispatched directly, so the lookup still happens against
// the full dataset. The returned error wraps catalog.ErrPodcastNotFound when
// the id is unknown.
func (g *Grid) Select(id string) error {
	g.lastErr = nil
	if card, ok := g.Card(id); ok {
		card.Activate()
	} else {
		g.handleSelection(Selection{PodcastID: id})
	}
	return g.lastErr
}

func (g *Grid) handleSelection(sel Selection) {
	p, ok := g.source.Podcast(sel.PodcastID)
	if !ok {
		g.logger.Warn().Str("podcast_id", sel.PodcastID).Msg("podcast not found")
		g.lastErr = fmt.Errorf("%w: %q", catalog.ErrPodcastNotFound, sel.PodcastID)
		return
	}
	g.lastErr = nil
	g.presenter.Open(p)
}

// WriteHTML writes the grid markup
func (g *Grid) WriteHTML(w io.Writer) error {
	return execute(w, "grid", g.Views())
}
