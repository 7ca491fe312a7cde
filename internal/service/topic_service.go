package service

import (
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/repository"
)

// TopicService exposes the read side of topics. Topic content is
// seeded out of band; the API only browses it.
type TopicService struct {
	TopicRepo *repository.TopicRepository
}

func NewTopicService(topicRepo *repository.TopicRepository) *TopicService {
	return &TopicService{TopicRepo: topicRepo}
}

func (s *TopicService) GetAllTopics() ([]model.Topic, error) {
	return s.TopicRepo.FindAll()
}

func (s *TopicService) GetTopicByID(id uint) (*model.Topic, error) {
	return s.TopicRepo.FindByID(id)
}

func (s *TopicService) SearchTopics(term string) ([]model.Topic, error) {
	return s.TopicRepo.Search(term)
}
