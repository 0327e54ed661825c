package views

import (
	"io"

	"github.com/killallgit/podcast-catalog/internal/dates"
	"github.com/killallgit/podcast-catalog/internal/genres"
	"github.com/killallgit/podcast-catalog/internal/models"
)

// ModalState is the visibility of the detail modal
type ModalState int

const (
	ModalHidden ModalState = iota
	ModalOpen
)

// Region identifies where a click on the modal landed
type Region int

const (
	// RegionBackdrop is the area outside the modal content
	RegionBackdrop Region = iota
	// RegionContent is the modal content itself
	RegionContent
)

// SeasonSource provides the season detail table
type SeasonSource interface {
	Seasons(podcastID string) []models.Season
}

// SeasonView is one line of the season list
type SeasonView struct {
	Number       int    `json:"season"`
	Title        string `json:"title"`
	Episodes     int    `json:"episodes"`
	EpisodesText string `json:"episodesText"`
}

// DetailView is everything the modal displays
type DetailView struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Image       string       `json:"image"`
	ImageAlt    string       `json:"imageAlt"`
	Description string       `json:"description"`
	Genres      []string     `json:"genres"`
	Updated     string       `json:"updated"`
	UpdatedText string       `json:"updatedText"`
	Seasons     []SeasonView `json:"seasons"`
}

type modalData struct {
	Open      bool
	View      DetailView
	CloseHref string
}

// Modal presents the full detail of one podcast
type Modal struct {
	genres    *genres.Resolver
	dates     dates.Formatter
	seasons   SeasonSource
	state     ModalState
	view      DetailView
	closeHref string
}

// NewModal returns a hidden modal
func NewModal(resolver *genres.Resolver, formatter dates.Formatter, seasons SeasonSource) *Modal {
	return &Modal{
		genres:    resolver,
		dates:     formatter,
		seasons:   seasons,
		closeHref: "/",
	}
}

// Open populates the modal with p and shows it
func (m *Modal) Open(p models.Podcast) {
	m.view = BuildDetailView(p, m.genres, m.dates, m.seasons)
	m.state = ModalOpen
}

// Close hides the modal. Closing a hidden modal does nothing.
func (m *Modal) Close() {
	m.state = ModalHidden
}

// HandleClick closes the modal when the click landed on the backdrop
func (m *Modal) HandleClick(region Region) {
	if region == RegionBackdrop {
		m.Close()
	}
}

// State returns the visibility
func (m *Modal) State() ModalState {
	return m.state
}

// IsOpen reports whether the modal is shown
func (m *Modal) IsOpen() bool {
	return m.state == ModalOpen
}

// View returns the displayed detail; ok is false while hidden
func (m *Modal) View() (DetailView, bool) {
	if !m.IsOpen() {
		return DetailView{}, false
	}
	return m.view, true
}

// SetCloseHref sets the link used by the close button and the backdrop
func (m *Modal) SetCloseHref(href string) {
	m.closeHref = href
}

func (m *Modal) data() modalData {
	return modalData{
		Open:      m.IsOpen(),
		View:      m.view,
		CloseHref: m.closeHref,
	}
}

// Render writes the modal markup; nothing while hidden
func (m *Modal) Render(w io.Writer) error {
	return execute(w, "modal", m.data())
}

// BuildDetailView derives the detail display values of p
func BuildDetailView(p models.Podcast, resolver *genres.Resolver, formatter dates.Formatter, seasons SeasonSource) DetailView {
	title := DisplayTitle(p.Title)
	view := DetailView{
		ID:          p.ID,
		Title:       title,
		Image:       p.Image,
		ImageAlt:    title + " cover",
		Description: p.Description,
		Genres:      resolver.Names(p.Genres),
		Updated:     p.Updated,
		UpdatedText: "Last updated: " + formatter.Long(p.Updated),
		Seasons:     []SeasonView{},
	}

	if seasons != nil {
		for _, s := range seasons.Seasons(p.ID) {
			view.Seasons = append(view.Seasons, SeasonView{
				Number:       s.Number,
				Title:        s.Title,
				Episodes:     s.Episodes,
				EpisodesText: EpisodesText(s.Episodes),
			})
		}
	}
	return view
}
