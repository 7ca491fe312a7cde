package repository

import (
	"errors"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/util"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByIDAndUser(quizID, userID uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("Results").Preload("Results.Vocabulary").
		Where("id = ? AND user_id = ?", quizID, userID).
		First(&quiz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) FindByUser(userID uint, limit int) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	query := r.DB.Preload("Results").Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

func (r *QuizRepository) Delete(quiz *model.Quiz) error {
	return r.DB.Delete(quiz).Error
}
