package repository

import (
	"errors"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/util"

	"gorm.io/gorm"
)

type TopicRepository struct {
	DB *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{DB: db}
}

func (r *TopicRepository) FindAll() ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Order("name ASC").Find(&topics).Error
	return topics, err
}

func (r *TopicRepository) FindByID(id uint) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.First(&topic, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTopicNotFound
	}
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *TopicRepository) Search(term string) ([]model.Topic, error) {
	var topics []model.Topic
	query := r.DB.Order("name ASC")
	if term != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+term+"%")
	}
	err := query.Find(&topics).Error
	return topics, err
}
