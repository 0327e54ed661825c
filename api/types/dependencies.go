package types

import (
	"github.com/killallgit/podcast-catalog/internal/database"
	"github.com/killallgit/podcast-catalog/internal/dataset"
	"github.com/killallgit/podcast-catalog/internal/dates"
	"github.com/killallgit/podcast-catalog/internal/genres"
	"github.com/killallgit/podcast-catalog/internal/services/cache"
	"github.com/killallgit/podcast-catalog/internal/views"
	"github.com/killallgit/podcast-catalog/pkg/config"
	"github.com/rs/zerolog"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	Config  *config.Config
	Dataset *dataset.Dataset
	Genres  *genres.Resolver
	Dates   dates.Formatter
	DB      *database.DB
	Cache   cache.Cache
	Logger  zerolog.Logger
	Build   BuildInfo
}

// NewDependencies wires the read-only catalog tables. DB, Cache and Config
// are optional and may be set afterwards.
func NewDependencies(ds *dataset.Dataset, logger zerolog.Logger) *Dependencies {
	return &Dependencies{
		Dataset: ds,
		Genres:  genres.NewResolver(ds.Genres()),
		Dates:   dates.New(),
		Logger:  logger,
		Build:   BuildInfo{Name: "podcast-catalog", Version: "dev"},
	}
}

// NewSession returns a fresh grid and modal for one request
func (d *Dependencies) NewSession() *views.Session {
	return views.NewSession(d.Dataset, d.Genres, d.Dates, d.Logger)
}

// PageTitle is the title of the HTML catalog page
func (d *Dependencies) PageTitle() string {
	if d.Config != nil && d.Config.Server.Title != "" {
		return d.Config.Server.Title
	}
	return "Podcast Catalog"
}
