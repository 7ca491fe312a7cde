package repository

import (
	"errors"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/util"

	"gorm.io/gorm"
)

type VocabularyRepository struct {
	DB *gorm.DB
}

func NewVocabularyRepository(db *gorm.DB) *VocabularyRepository {
	return &VocabularyRepository{DB: db}
}

func (r *VocabularyRepository) Create(vocab *model.Vocabulary) error {
	return r.DB.Create(vocab).Error
}

func (r *VocabularyRepository) FindByID(id uint) (*model.Vocabulary, error) {
	var vocab model.Vocabulary
	err := r.DB.Preload("Topic").First(&vocab, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrVocabularyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &vocab, nil
}

func (r *VocabularyRepository) FindAll() ([]model.Vocabulary, error) {
	var vocabs []model.Vocabulary
	err := r.DB.Preload("Topic").Order("created_at DESC").Find(&vocabs).Error
	return vocabs, err
}

func (r *VocabularyRepository) FindByTopicID(topicID uint) ([]model.Vocabulary, error) {
	var vocabs []model.Vocabulary
	err := r.DB.Preload("Topic").Where("topic_id = ?", topicID).
		Order("word ASC").Find(&vocabs).Error
	return vocabs, err
}

func (r *VocabularyRepository) Search(query string) ([]model.Vocabulary, error) {
	var vocabs []model.Vocabulary
	like := "%" + query + "%"
	err := r.DB.Preload("Topic").
		Where("LOWER(word) LIKE LOWER(?) OR LOWER(meaning_en) LIKE LOWER(?) OR LOWER(meaning_vi) LIKE LOWER(?)", like, like, like).
		Order("word ASC").Find(&vocabs).Error
	return vocabs, err
}

func (r *VocabularyRepository) FindRandom(count int, difficulty model.DifficultyLevel) ([]model.Vocabulary, error) {
	var vocabs []model.Vocabulary
	query := r.DB.Preload("Topic").Order("RAND()").Limit(count)
	if difficulty != "" {
		query = query.Where("difficulty_level = ?", difficulty)
	}
	err := query.Find(&vocabs).Error
	return vocabs, err
}

func (r *VocabularyRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Vocabulary{}).Count(&count).Error
	return count, err
}

func (r *VocabularyRepository) CountByDifficulty(difficulty model.DifficultyLevel, topicID uint) (int64, error) {
	var count int64
	query := r.DB.Model(&model.Vocabulary{})
	if difficulty != "" && difficulty != "Mixed Levels" {
		query = query.Where("difficulty_level = ?", difficulty)
	}
	if topicID != 0 {
		query = query.Where("topic_id = ?", topicID)
	}
	err := query.Count(&count).Error
	return count, err
}

// FindMissingAudio lists vocabularies whose audio generation has never
// succeeded. Used by the retry sweep.
func (r *VocabularyRepository) FindMissingAudio() ([]model.Vocabulary, error) {
	var vocabs []model.Vocabulary
	err := r.DB.Where("audio_url IS NULL").Find(&vocabs).Error
	return vocabs, err
}

func (r *VocabularyRepository) Update(vocab *model.Vocabulary) error {
	return r.DB.Save(vocab).Error
}

// SetAudioURL updates only the audio reference. It reports whether a
// row was actually updated so the pipeline can detect a vocabulary
// deleted while generation was in flight.
func (r *VocabularyRepository) SetAudioURL(vocabID uint, audioURL string) (bool, error) {
	res := r.DB.Model(&model.Vocabulary{}).Where("id = ?", vocabID).
		Update("audio_url", audioURL)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *VocabularyRepository) Delete(vocab *model.Vocabulary) error {
	return r.DB.Delete(vocab).Error
}
