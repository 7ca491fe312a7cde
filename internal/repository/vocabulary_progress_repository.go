package repository

import (
	"errors"
	"vocab_edu_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VocabularyProgressRepository struct {
	DB *gorm.DB
}

func NewVocabularyProgressRepository(db *gorm.DB) *VocabularyProgressRepository {
	return &VocabularyProgressRepository{DB: db}
}

// GetOrCreateForUpdate fetches the (user, vocab) progress row inside
// tx with a row lock, creating it if absent. The unique index on the
// pair is the authoritative guard: a duplicate-key failure from a
// concurrent first submission falls back to re-fetching the winner's
// row.
func (r *VocabularyProgressRepository) GetOrCreateForUpdate(tx *gorm.DB, userID, vocabID uint) (*model.VocabularyProgress, error) {
	var progress model.VocabularyProgress
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND vocab_id = ?", userID, vocabID).
		First(&progress).Error
	if err == nil {
		return &progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	progress = model.VocabularyProgress{UserID: userID, VocabID: vocabID}
	if err := tx.Create(&progress).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing model.VocabularyProgress
			if ferr := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("user_id = ? AND vocab_id = ?", userID, vocabID).
				First(&existing).Error; ferr == nil {
				return &existing, nil
			}
		}
		return nil, err
	}
	return &progress, nil
}

func (r *VocabularyProgressRepository) FindByUserAndVocab(userID, vocabID uint) (*model.VocabularyProgress, error) {
	var progress model.VocabularyProgress
	err := r.DB.Where("user_id = ? AND vocab_id = ?", userID, vocabID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *VocabularyProgressRepository) FindLearnedByUser(userID uint) ([]model.VocabularyProgress, error) {
	var progress []model.VocabularyProgress
	err := r.DB.Preload("Vocabulary").Preload("Vocabulary.Topic").
		Where("user_id = ? AND is_learned = ?", userID, true).
		Order("first_learned_at DESC").Find(&progress).Error
	return progress, err
}

func (r *VocabularyProgressRepository) FindBookmarkedByUser(userID uint) ([]model.VocabularyProgress, error) {
	var progress []model.VocabularyProgress
	err := r.DB.Preload("Vocabulary").Preload("Vocabulary.Topic").
		Where("user_id = ? AND is_bookmarked = ?", userID, true).
		Order("last_reviewed_at DESC").Find(&progress).Error
	return progress, err
}

func (r *VocabularyProgressRepository) Save(tx *gorm.DB, progress *model.VocabularyProgress) error {
	return tx.Save(progress).Error
}
