package repository

import (
	"vocab_edu_backend/internal/model"

	"gorm.io/gorm"
)

type PronunciationRepository struct {
	DB *gorm.DB
}

func NewPronunciationRepository(db *gorm.DB) *PronunciationRepository {
	return &PronunciationRepository{DB: db}
}

func (r *PronunciationRepository) Create(attempt *model.PronunciationAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *PronunciationRepository) FindByUser(userID uint, vocabID uint) ([]model.PronunciationAttempt, error) {
	var attempts []model.PronunciationAttempt
	query := r.DB.Preload("Vocabulary").Where("user_id = ?", userID).
		Order("created_at DESC")
	if vocabID != 0 {
		query = query.Where("vocab_id = ?", vocabID)
	}
	err := query.Find(&attempts).Error
	return attempts, err
}
