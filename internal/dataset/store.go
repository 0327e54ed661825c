package dataset

import (
	"context"
	"fmt"

	"github.com/killallgit/podcast-catalog/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists a dataset in SQL so it can be served from a database file
// instead of the embedded YAML
type Store struct {
	db *gorm.DB
}

// Counts reports the number of rows per table
type Counts struct {
	Podcasts int64 `json:"podcasts"`
	Genres   int64 `json:"genres"`
	Seasons  int64 `json:"seasons"`
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the catalog tables
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&models.Genre{}, &models.Podcast{}, &models.Season{}); err != nil {
		return fmt.Errorf("migrating catalog tables: %w", err)
	}
	return nil
}

// Seed writes every record of ds, replacing rows with the same key
func (s *Store) Seed(ctx context.Context, ds *Dataset) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		upsert := clause.OnConflict{UpdateAll: true}

		if genres := ds.Genres(); len(genres) > 0 {
			if err := tx.Clauses(upsert).Create(&genres).Error; err != nil {
				return fmt.Errorf("seeding genres: %w", err)
			}
		}

		if podcasts := ds.Podcasts(); len(podcasts) > 0 {
			if err := tx.Clauses(upsert).Create(&podcasts).Error; err != nil {
				return fmt.Errorf("seeding podcasts: %w", err)
			}
		}

		for _, p := range ds.Podcasts() {
			seasons := ds.Seasons(p.ID)
			if len(seasons) == 0 {
				continue
			}
			if err := tx.Clauses(upsert).Create(&seasons).Error; err != nil {
				return fmt.Errorf("seeding seasons for podcast %s: %w", p.ID, err)
			}
		}
		return nil
	})
}

// Load reads the whole catalog back into a Dataset
func (s *Store) Load(ctx context.Context) (*Dataset, error) {
	db := s.db.WithContext(ctx)

	var genres []models.Genre
	if err := db.Order("id ASC").Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("loading genres: %w", err)
	}

	var podcasts []models.Podcast
	if err := db.Order("id ASC").Find(&podcasts).Error; err != nil {
		return nil, fmt.Errorf("loading podcasts: %w", err)
	}

	var rows []models.Season
	if err := db.Order("podcast_id ASC, number ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading seasons: %w", err)
	}

	seasons := make(map[string][]models.Season)
	for _, row := range rows {
		seasons[row.PodcastID] = append(seasons[row.PodcastID], row)
	}

	return New(podcasts, genres, seasons)
}

// Counts returns the row count of each catalog table
func (s *Store) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Podcast{}).Count(&c.Podcasts).Error; err != nil {
		return c, fmt.Errorf("counting podcasts: %w", err)
	}
	if err := db.Model(&models.Genre{}).Count(&c.Genres).Error; err != nil {
		return c, fmt.Errorf("counting genres: %w", err)
	}
	if err := db.Model(&models.Season{}).Count(&c.Seasons).Error; err != nil {
		return c, fmt.Errorf("counting seasons: %w", err)
	}
	return c, nil
}
