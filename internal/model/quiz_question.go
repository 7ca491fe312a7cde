package model

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "MultipleChoice"
	QuestionTyping         QuestionType = "Typing"
	QuestionListening      QuestionType = "Listening"
)

// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel
	VocabID       uint         `gorm:"index;not null" json:"vocabId"`
	Vocabulary    *Vocabulary  `gorm:"foreignKey:VocabID" json:"vocabulary,omitempty"`
	QuestionType  QuestionType `gorm:"size:30;default:'MultipleChoice'" json:"questionType"`
	QuestionText  string       `gorm:"size:500;not null" json:"questionText"`
	Options       []string     `gorm:"type:json;serializer:json" json:"options"`
	CorrectAnswer string       `gorm:"size:255;not null" json:"correctAnswer"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}
