package models

// Season summarizes one season of a podcast
type Season struct {
	PodcastID string `json:"-" yaml:"-" gorm:"primaryKey"`
	Number    int    `json:"season" yaml:"season" gorm:"primaryKey;autoIncrement:false"`
	Title     string `json:"title" yaml:"title"`
	Episodes  int    `json:"episodes" yaml:"episodes"`
}

func (Season) TableName() string {
	return "seasons"
}

// SeasonDetail groups the seasons of one podcast as they appear in the
// dataset file
type SeasonDetail struct {
	PodcastID string   `json:"podcast" yaml:"podcast"`
	Seasons   []Season `json:"seasons" yaml:"seasons"`
}
