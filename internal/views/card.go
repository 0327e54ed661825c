package views

import (
	"fmt"
	"io"
	"strings"

	"github.com/killallgit/podcast-catalog/internal/dates"
	"github.com/killallgit/podcast-catalog/internal/genres"
	"github.com/killallgit/podcast-catalog/internal/models"
)

// UntitledPodcast is shown when a podcast has no title
const UntitledPodcast = "Untitled Podcast"

// Selection is the signal a card emits when it is activated
type Selection struct {
	PodcastID string `json:"podcastId"`
}

// SelectionListener receives selection signals
type SelectionListener func(Selection)

// CardState is the lifecycle state of a Card
type CardState int

const (
	CardUninitialized CardState = iota
	CardPopulated
)

// CardView is everything a card displays
type CardView struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Image       string   `json:"image"`
	ImageAlt    string   `json:"imageAlt"`
	SeasonCount int      `json:"seasonCount"`
	SeasonsText string   `json:"seasonsText"`
	Genres      []string `json:"genres"`
	Updated     string   `json:"updated"`
	UpdatedText string   `json:"updatedText"`
	Href        string   `json:"href,omitempty"`
}

// Card presents a single podcast and emits a Selection when activated
type Card struct {
	genres   *genres.Resolver
	dates    dates.Formatter
	state    CardState
	view     CardView
	listener SelectionListener
}

// NewCard returns an uninitialized card
func NewCard(resolver *genres.Resolver, formatter dates.Formatter) *Card {
	return &Card{genres: resolver, dates: formatter}
}

// SetRecord assigns the podcast and derives the display values. A record
// without an id leaves the card uninitialized.
func (c *Card) SetRecord(p models.Podcast) {
	if p.ID == "" {
		c.state = CardUninitialized
		c.view = CardView{}
		return
	}

	title := DisplayTitle(p.Title)
	c.view = CardView{
		ID:          p.ID,
		Title:       title,
		Image:       p.Image,
		ImageAlt:    title + " cover",
		SeasonCount: int(p.Seasons),
		SeasonsText: SeasonsText(int(p.Seasons)),
		Genres:      c.genres.Names(p.Genres),
		Updated:     p.Updated,
		UpdatedText: "Updated: " + c.dates.Relative(p.Updated),
		Href:        c.view.Href,
	}
	c.state = CardPopulated
}

// SetHref sets the link followed when the card is activated in a browser
func (c *Card) SetHref(href string) {
	c.view.Href = href
}

// OnSelect registers the listener for selection signals, replacing any
// previous one
func (c *Card) OnSelect(listener SelectionListener) {
	c.listener = listener
}

// State returns the lifecycle state
func (c *Card) State() CardState {
	return c.state
}

// ID is the id of the displayed podcast; empty until populated
func (c *Card) ID() string {
	return c.view.ID
}

// View returns a copy of the display values
func (c *Card) View() CardView {
	v := c.view
	v.Genres = append([]string{}, c.view.Genres...)
	return v
}

// Activate emits a Selection for the displayed podcast. It reports whether
// a signal was emitted; an uninitialized card emits nothing.
func (c *Card) Activate() bool {
	if c.state != CardPopulated || c.view.ID == "" {
		return false
	}
	if c.listener != nil {
		c.listener(Selection{PodcastID: c.view.ID})
	}
	return true
}

// Render writes the card markup. An uninitialized card renders nothing.
func (c *Card) Render(w io.Writer) error {
	if c.state != CardPopulated {
		return nil
	}
	return execute(w, "card", c.view)
}

// DisplayTitle falls back to UntitledPodcast for blank titles
func DisplayTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return UntitledPodcast
	}
	return title
}

// SeasonsText renders a season count as "1 season" or "3 seasons"
func SeasonsText(n int) string {
	if n < 0 {
		n = 0
	}
	if n == 1 {
		return "1 season"
	}
	return fmt.Sprintf("%d seasons", n)
}

// EpisodesText renders an episode count as "1 episode" or "8 episodes"
func EpisodesText(n int) string {
	if n == 1 {
		return "1 episode"
	}
	return fmt.Sprintf("%d episodes", n)
}
