package model

// Result is one graded answer. Rows are append-only: the engine never
// updates or deletes them. QuizID is nil for standalone practice.
// Score is the 0..100 similarity percent of the submitted answer.
// swagger:model Result
type Result struct {
	BaseModel
	UserID        uint        `gorm:"index;not null" json:"userId"`
	VocabID       uint        `gorm:"index;not null" json:"vocabId"`
	Vocabulary    *Vocabulary `gorm:"foreignKey:VocabID" json:"vocabulary,omitempty"`
	QuizID        *uint       `gorm:"index" json:"quizId"`
	UserAnswer    string      `gorm:"size:500" json:"userAnswer"`
	CorrectAnswer string      `gorm:"size:500" json:"correctAnswer"`
	IsCorrect     bool        `gorm:"not null" json:"isCorrect"`
	Score         int         `gorm:"default:0" json:"score"`
}

func (Result) TableName() string {
	return "results"
}
