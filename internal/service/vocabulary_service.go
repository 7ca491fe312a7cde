package service

import (
	"context"
	"encoding/json"
	"time"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/repository"
	"vocab_edu_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	catalogCacheKey = "vocab:catalog"
	catalogCacheTTL = 10 * time.Minute
)

type CreateVocabularyInput struct {
	Word            string `json:"word" binding:"required"`
	MeaningEn       string `json:"meaningEn" binding:"required"`
	MeaningVi       string `json:"meaningVi"`
	Example         string `json:"example"`
	Phonetic        string `json:"phonetic"`
	DifficultyLevel string `json:"difficultyLevel"`
	TopicID         uint   `json:"topicId" binding:"required"`
}

type UpdateVocabularyInput struct {
	Word            *string `json:"word"`
	MeaningEn       *string `json:"meaningEn"`
	MeaningVi       *string `json:"meaningVi"`
	Example         *string `json:"example"`
	Phonetic        *string `json:"phonetic"`
	DifficultyLevel *string `json:"difficultyLevel"`
	TopicID         *uint   `json:"topicId"`
}

// VocabularyWithProgress overlays a user's practice history onto a
// catalog entry.
type VocabularyWithProgress struct {
	model.Vocabulary
	IsLearned    bool       `json:"isLearned"`
	BestScore    int        `json:"bestScore"`
	LastReviewed *time.Time `json:"lastReviewed"`
	AttemptCount int        `json:"attemptCount"`
}

// VocabularyService manages the word catalog. Mutations invalidate
// the redis-cached list and drive the audio pipeline; the creation
// response never waits for synthesis.
type VocabularyService struct {
	VocabRepo  *repository.VocabularyRepository
	TopicRepo  *repository.TopicRepository
	ResultRepo *repository.ResultRepository
	Audio      *AudioService
	Questions  *QuizQuestionService
	Redis      *redis.Client
}

func NewVocabularyService(
	vocabRepo *repository.VocabularyRepository,
	topicRepo *repository.TopicRepository,
	resultRepo *repository.ResultRepository,
	audio *AudioService,
	questions *QuizQuestionService,
	rdb *redis.Client,
) *VocabularyService {
	return &VocabularyService{
		VocabRepo:  vocabRepo,
		TopicRepo:  topicRepo,
		ResultRepo: resultRepo,
		Audio:      audio,
		Questions:  questions,
		Redis:      rdb,
	}
}

// GetAllVocabularies serves the catalog from redis when possible.
func (s *VocabularyService) GetAllVocabularies() ([]model.Vocabulary, error) {
	ctx := context.Background()

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, catalogCacheKey).Result(); err == nil {
			var vocabs []model.Vocabulary
			if json.Unmarshal([]byte(cached), &vocabs) == nil {
				return vocabs, nil
			}
		}
	}

	vocabs, err := s.VocabRepo.FindAll()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(vocabs); err == nil {
			if err := s.Redis.Set(ctx, catalogCacheKey, payload, catalogCacheTTL).Err(); err != nil {
				logger.Log.Warn("catalog cache write failed", zap.Error(err))
			}
		}
	}
	return vocabs, nil
}

func (s *VocabularyService) invalidateCatalogCache() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), catalogCacheKey).Err(); err != nil {
		logger.Log.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

func (s *VocabularyService) GetVocabularyByID(id uint) (*model.Vocabulary, error) {
	return s.VocabRepo.FindByID(id)
}

func (s *VocabularyService) GetVocabulariesByTopic(topicID uint) ([]model.Vocabulary, error) {
	if _, err := s.TopicRepo.FindByID(topicID); err != nil {
		return nil, err
	}
	return s.VocabRepo.FindByTopicID(topicID)
}

func (s *VocabularyService) SearchVocabularies(query string) ([]model.Vocabulary, error) {
	return s.VocabRepo.Search(query)
}

func (s *VocabularyService) GetRandomVocabularies(count int, difficulty string) ([]model.Vocabulary, error) {
	if count <= 0 {
		count = 10
	}
	return s.VocabRepo.FindRandom(count, model.DifficultyLevel(difficulty))
}

// CreateVocabulary persists the word with a null audio reference and
// queues generation in the background.
func (s *VocabularyService) CreateVocabulary(input CreateVocabularyInput) (*model.Vocabulary, error) {
	if _, err := s.TopicRepo.FindByID(input.TopicID); err != nil {
		return nil, err
	}

	difficulty := model.DifficultyLevel(input.DifficultyLevel)
	if difficulty == "" {
		difficulty = model.DifficultyBeginner
	}

	vocab := &model.Vocabulary{
		Word:            input.Word,
		MeaningEn:       input.MeaningEn,
		MeaningVi:       input.MeaningVi,
		Example:         input.Example,
		Phonetic:        input.Phonetic,
		DifficultyLevel: difficulty,
		TopicID:         input.TopicID,
	}
	if err := s.VocabRepo.Create(vocab); err != nil {
		return nil, err
	}

	s.invalidateCatalogCache()
	s.Audio.GenerateAsync(vocab.ID, vocab.Word, "en")
	if err := s.Questions.GenerateForVocabulary(vocab); err != nil {
		logger.Log.Warn("question generation failed",
			zap.Uint("vocabId", vocab.ID), zap.Error(err))
	}

	return vocab, nil
}

// UpdateVocabulary applies the patch. A changed word re-drives audio
// generation with a fresh attempt counter.
func (s *VocabularyService) UpdateVocabulary(id uint, input UpdateVocabularyInput) (*model.Vocabulary, error) {
	vocab, err := s.VocabRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	wordChanged := false
	if input.Word != nil && *input.Word != vocab.Word {
		vocab.Word = *input.Word
		wordChanged = true
	}
	if input.MeaningEn != nil {
		vocab.MeaningEn = *input.MeaningEn
	}
	if input.MeaningVi != nil {
		vocab.MeaningVi = *input.MeaningVi
	}
	if input.Example != nil {
		vocab.Example = *input.Example
	}
	if input.Phonetic != nil {
		vocab.Phonetic = *input.Phonetic
	}
	if input.DifficultyLevel != nil {
		vocab.DifficultyLevel = model.DifficultyLevel(*input.DifficultyLevel)
	}
	if input.TopicID != nil {
		if _, err := s.TopicRepo.FindByID(*input.TopicID); err != nil {
			return nil, err
		}
		vocab.TopicID = *input.TopicID
	}

	if err := s.VocabRepo.Update(vocab); err != nil {
		return nil, err
	}

	s.invalidateCatalogCache()
	if wordChanged {
		s.Audio.GenerateAsync(vocab.ID, vocab.Word, "en")
	}

	return vocab, nil
}

// DeleteVocabulary removes the word and asks the speech service to
// drop its audio. Remote cleanup failure never blocks the delete.
func (s *VocabularyService) DeleteVocabulary(id uint) error {
	vocab, err := s.VocabRepo.FindByID(id)
	if err != nil {
		return err
	}

	if err := s.VocabRepo.Delete(vocab); err != nil {
		return err
	}

	s.invalidateCatalogCache()
	s.Audio.DeleteAudio(id)
	return nil
}

// GetVocabulariesWithProgress overlays per-user best score, learned
// flag (best >= 80), last review time and attempt count.
func (s *VocabularyService) GetVocabulariesWithProgress(userID uint, topicID uint) ([]VocabularyWithProgress, error) {
	var vocabs []model.Vocabulary
	var err error
	if topicID != 0 {
		vocabs, err = s.VocabRepo.FindByTopicID(topicID)
	} else {
		vocabs, err = s.VocabRepo.FindAll()
	}
	if err != nil {
		return nil, err
	}

	results, err := s.ResultRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	type history struct {
		best     int
		count    int
		lastSeen time.Time
	}
	byVocab := make(map[uint]*history)
	for _, r := range results {
		h, ok := byVocab[r.VocabID]
		if !ok {
			h = &history{}
			byVocab[r.VocabID] = h
		}
		h.count++
		if r.Score > h.best {
			h.best = r.Score
		}
		if r.CreatedAt.After(h.lastSeen) {
			h.lastSeen = r.CreatedAt
		}
	}

	overlay := make([]VocabularyWithProgress, 0, len(vocabs))
	for _, v := range vocabs {
		entry := VocabularyWithProgress{Vocabulary: v}
		if h, ok := byVocab[v.ID]; ok {
			entry.BestScore = h.best
			entry.IsLearned = h.best >= 80
			entry.AttemptCount = h.count
			last := h.lastSeen
			entry.LastReviewed = &last
		}
		overlay = append(overlay, entry)
	}
	return overlay, nil
}

// GetMissingAudio lists words still waiting on audio, for the manual
// regeneration surface.
func (s *VocabularyService) GetMissingAudio() ([]model.Vocabulary, error) {
	return s.VocabRepo.FindMissingAudio()
}
