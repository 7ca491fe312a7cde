package model

type QuizMode string

const (
	QuizModeBeginner     QuizMode = "Beginner"
	QuizModeIntermediate QuizMode = "Intermediate"
	QuizModeAdvanced     QuizMode = "Advanced"
	QuizModeMixed        QuizMode = "Mixed Levels"
)

// DifficultyToQuizMode maps a vocabulary difficulty onto the quiz mode
// used when generating question sets.
var DifficultyToQuizMode = map[string]QuizMode{
	string(DifficultyBeginner):     QuizModeBeginner,
	string(DifficultyIntermediate): QuizModeIntermediate,
	string(DifficultyAdvanced):     QuizModeAdvanced,
	"Mixed Levels":                 QuizModeMixed,
}

// swagger:model Quiz
type Quiz struct {
	BaseModel
	UserID         uint     `gorm:"index;not null" json:"userId"`
	DifficultyMode QuizMode `gorm:"size:20;default:'Mixed Levels'" json:"difficultyMode"`
	TotalQuestions int      `gorm:"default:10" json:"totalQuestions"`
	Score          int      `gorm:"default:0" json:"score"`
	Results        []Result `gorm:"foreignKey:QuizID" json:"results,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}
