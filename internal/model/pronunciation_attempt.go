package model

// PronunciationScore is the per-attempt breakdown returned by the
// speech recognition service.
type PronunciationScore struct {
	Accuracy     float64 `json:"accuracy"`
	Fluency      float64 `json:"fluency"`
	Completeness float64 `json:"completeness"`
}

// swagger:model PronunciationAttempt
type PronunciationAttempt struct {
	BaseModel
	UserID             uint                `gorm:"index;not null" json:"userId"`
	VocabID            uint                `gorm:"index;not null" json:"vocabId"`
	Vocabulary         *Vocabulary         `gorm:"foreignKey:VocabID" json:"vocabulary,omitempty"`
	RecognizedText     string              `gorm:"size:255" json:"recognizedText"`
	TargetWord         string              `gorm:"size:100" json:"targetWord"`
	IsCorrect          bool                `json:"isCorrect"`
	Confidence         float64             `json:"confidence"`
	Accuracy           float64             `json:"accuracy"`
	PronunciationScore *PronunciationScore `gorm:"type:json;serializer:json" json:"pronunciationScore"`
	AudioURL           string              `gorm:"size:512" json:"audioUrl"`
}

func (PronunciationAttempt) TableName() string {
	return "pronunciation_attempts"
}
