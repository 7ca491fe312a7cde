package model

// Topic groups vocabulary items by theme.
// swagger:model Topic
type Topic struct {
	BaseModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:500" json:"description"`
	ImageURL    string `gorm:"size:255" json:"imageUrl"`
}

func (Topic) TableName() string {
	return "topics"
}
