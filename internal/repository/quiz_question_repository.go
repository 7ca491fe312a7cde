package repository

import (
	"vocab_edu_backend/internal/model"

	"gorm.io/gorm"
)

type QuizQuestionRepository struct {
	DB *gorm.DB
}

func NewQuizQuestionRepository(db *gorm.DB) *QuizQuestionRepository {
	return &QuizQuestionRepository{DB: db}
}

func (r *QuizQuestionRepository) Create(question *model.QuizQuestion) error {
	return r.DB.Create(question).Error
}

func (r *QuizQuestionRepository) FindByID(id uint) (*model.QuizQuestion, error) {
	var question model.QuizQuestion
	err := r.DB.Preload("Vocabulary").First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// FindRandom picks question candidates for a new quiz, optionally
// scoped by vocabulary difficulty and topic.
func (r *QuizQuestionRepository) FindRandom(count int, difficulty string, topicID uint) ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	query := r.DB.Preload("Vocabulary").Preload("Vocabulary.Topic").
		Joins("JOIN vocabularies ON vocabularies.id = quiz_questions.vocab_id")

	if topicID != 0 {
		query = query.Where("vocabularies.topic_id = ?", topicID)
	}
	if difficulty != "" && difficulty != "Mixed Levels" {
		query = query.Where("vocabularies.difficulty_level = ?", difficulty)
	}

	err := query.Order("RAND()").Limit(count).Find(&questions).Error
	return questions, err
}

func (r *QuizQuestionRepository) FindByVocabID(vocabID uint) ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	err := r.DB.Where("vocab_id = ?", vocabID).Find(&questions).Error
	return questions, err
}
