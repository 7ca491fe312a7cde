package model

type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "Beginner"
	DifficultyIntermediate DifficultyLevel = "Intermediate"
	DifficultyAdvanced     DifficultyLevel = "Advanced"
)

// Vocabulary is one word of the catalog. AudioURL stays nil until the
// asset pipeline has successfully synthesized audio for the word.
// swagger:model Vocabulary
type Vocabulary struct {
	BaseModel
	TopicID         uint            `gorm:"index" json:"topicId"`
	Topic           *Topic          `gorm:"foreignKey:TopicID" json:"topic,omitempty"`
	Word            string          `gorm:"size:100;not null;index" json:"word"`
	Phonetic        string          `gorm:"size:100" json:"phonetic"`
	MeaningEn       string          `gorm:"size:500" json:"meaningEn"`
	MeaningVi       string          `gorm:"size:500" json:"meaningVi"`
	Example         string          `gorm:"size:1000" json:"example"`
	DifficultyLevel DifficultyLevel `gorm:"type:varchar(20);default:'Beginner';index" json:"difficultyLevel"`
	AudioURL        *string         `gorm:"size:512" json:"audioUrl"`
}

func (Vocabulary) TableName() string {
	return "vocabularies"
}
