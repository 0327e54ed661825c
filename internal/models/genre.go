package models

// Genre is an entry of the static genre table
type Genre struct {
	ID          int      `json:"id" yaml:"id" gorm:"primaryKey;autoIncrement:false"`
	Title       string   `json:"title" yaml:"title" gorm:"not null"`
	Description string   `json:"description,omitempty" yaml:"description"`
	Shows       []string `json:"shows,omitempty" yaml:"shows" gorm:"serializer:json"`
}

func (Genre) TableName() string {
	return "genres"
}
