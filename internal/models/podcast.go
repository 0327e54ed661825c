package models

// Podcast is a single show in the catalog. Timestamps are kept as the text
// found in the dataset so that formatting can recover from bad values.
type Podcast struct {
	ID          string      `json:"id" yaml:"id" gorm:"primaryKey"`
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description" gorm:"type:text"`
	Image       string      `json:"image" yaml:"image"`
	Genres      GenreIDs    `json:"genres" yaml:"genres" gorm:"serializer:json"`
	Seasons     SeasonCount `json:"seasons" yaml:"seasons"`
	Updated     string      `json:"updated" yaml:"updated"`
	Released    string      `json:"released,omitempty" yaml:"released,omitempty"`
}

func (Podcast) TableName() string {
	return "podcasts"
}

// HasGenre reports whether the podcast is tagged with the given genre id
func (p Podcast) HasGenre(id int) bool {
	return p.Genres.Contains(id)
}
