package model

import "time"

// VocabularyProgress is the per-(user, vocabulary) mastery state.
// FirstLearnedAt is set exactly once, atomically with IsLearned
// turning true, and never changes afterwards. The unique index on
// (user_id, vocab_id) is the authoritative guard against duplicate
// rows under concurrent first submissions.
// swagger:model VocabularyProgress
type VocabularyProgress struct {
	BaseModel
	UserID               uint        `gorm:"uniqueIndex:idx_user_vocab;not null" json:"userId"`
	VocabID              uint        `gorm:"uniqueIndex:idx_user_vocab;not null" json:"vocabId"`
	Vocabulary           *Vocabulary `gorm:"foreignKey:VocabID" json:"vocabulary,omitempty"`
	PracticeAttempts     int         `gorm:"default:0" json:"practiceAttempts"`
	PracticeCorrectCount int         `gorm:"default:0" json:"practiceCorrectCount"`
	IsLearned            bool        `gorm:"default:false" json:"isLearned"`
	FirstLearnedAt       *time.Time  `json:"firstLearnedAt"`
	LastReviewedAt       *time.Time  `json:"lastReviewedAt"`
	IsBookmarked         bool        `gorm:"default:false" json:"isBookmarked"`
}

func (VocabularyProgress) TableName() string {
	return "vocabulary_progress"
}
