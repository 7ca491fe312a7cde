package service

import (
	"errors"
	"math"
	"time"
	"vocab_edu_backend/internal/config"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/repository"
	"vocab_edu_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GradedAnswer is one graded question inside a practice submission.
type GradedAnswer struct {
	QuestionText  string `json:"questionText"`
	CorrectAnswer string `json:"correctAnswer"`
	UserAnswer    string `json:"userAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
}

// SubmitPracticeInput is a standalone practice submission for one
// vocabulary item.
type SubmitPracticeInput struct {
	VocabID uint           `json:"vocabId" binding:"required"`
	Answers []GradedAnswer `json:"answers" binding:"required,min=1"`
}

// VocabProgressStats is the per-word progress view.
type VocabProgressStats struct {
	VocabID              uint       `json:"vocabId"`
	IsLearned            bool       `json:"isLearned"`
	IsBookmarked         bool       `json:"isBookmarked"`
	FirstLearnedAt       *time.Time `json:"firstLearnedAt"`
	LastReviewedAt       *time.Time `json:"lastReviewedAt"`
	PracticeAttempts     int        `json:"practiceAttempts"`
	PracticeCorrectCount int        `json:"practiceCorrectCount"`
	Accuracy             int        `json:"accuracy"`
}

// PracticeService owns the per-(user, vocabulary) mastery state. All
// mutations run inside one transaction with a row lock so concurrent
// submissions never lose an increment, and the IsLearned /
// FirstLearnedAt pair always changes atomically.
type PracticeService struct {
	ProgressRepo *repository.VocabularyProgressRepository
	VocabRepo    *repository.VocabularyRepository
	ResultRepo   *repository.ResultRepository

	db                *gorm.DB
	masteryBatchSize  int
	masteryMinCorrect int
}

func NewPracticeService(
	progressRepo *repository.VocabularyProgressRepository,
	vocabRepo *repository.VocabularyRepository,
	resultRepo *repository.ResultRepository,
	engineCfg config.EngineConfig,
	db *gorm.DB,
) *PracticeService {
	return &PracticeService{
		ProgressRepo:      progressRepo,
		VocabRepo:         vocabRepo,
		ResultRepo:        resultRepo,
		db:                db,
		masteryBatchSize:  engineCfg.MasteryBatchSize,
		masteryMinCorrect: engineCfg.MasteryMinCorrect,
	}
}

// RecordPracticeSubmission applies one practice submission:
// PracticeAttempts rises by exactly 1, PracticeCorrectCount by the
// number of correct answers, LastReviewedAt is always refreshed, and
// the word becomes learned only when the batch has exactly the mastery
// batch size with at least the minimum correct. FirstLearnedAt is set
// once and never overwritten. One append-only Result row is written
// per answer.
func (s *PracticeService) RecordPracticeSubmission(userID uint, input SubmitPracticeInput) (*model.VocabularyProgress, error) {
	vocab, err := s.VocabRepo.FindByID(input.VocabID)
	if err != nil {
		return nil, err
	}

	correctCount := 0
	for _, a := range input.Answers {
		if a.IsCorrect {
			correctCount++
		}
	}

	var progress *model.VocabularyProgress
	err = s.db.Transaction(func(tx *gorm.DB) error {
		progress, err = s.ProgressRepo.GetOrCreateForUpdate(tx, userID, input.VocabID)
		if err != nil {
			return err
		}

		now := time.Now()
		progress.PracticeAttempts++
		progress.PracticeCorrectCount += correctCount
		progress.LastReviewedAt = &now

		// Mastery is judged per submission, never cumulatively: the
		// batch must have exactly masteryBatchSize answers with at
		// least masteryMinCorrect of them correct.
		if len(input.Answers) == s.masteryBatchSize && correctCount >= s.masteryMinCorrect {
			progress.IsLearned = true
			if progress.FirstLearnedAt == nil {
				progress.FirstLearnedAt = &now
			}
		}

		if err := s.ProgressRepo.Save(tx, progress); err != nil {
			return err
		}

		for _, a := range input.Answers {
			result := &model.Result{
				UserID:        userID,
				VocabID:       input.VocabID,
				UserAnswer:    a.UserAnswer,
				CorrectAnswer: a.CorrectAnswer,
				IsCorrect:     a.IsCorrect,
				Score:         SimilarityPercent(a.UserAnswer, a.CorrectAnswer),
			}
			if err := s.ResultRepo.CreateInTx(tx, result); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Debug("practice submission recorded",
		zap.Uint("userId", userID),
		zap.Uint("vocabId", vocab.ID),
		zap.Int("answers", len(input.Answers)),
		zap.Int("correct", correctCount),
		zap.Bool("learned", progress.IsLearned))

	return progress, nil
}

// ToggleBookmark sets the bookmark flag. LastReviewedAt is refreshed
// only when turning the bookmark on.
func (s *PracticeService) ToggleBookmark(userID, vocabID uint, bookmarked bool) (*model.VocabularyProgress, error) {
	if _, err := s.VocabRepo.FindByID(vocabID); err != nil {
		return nil, err
	}

	var progress *model.VocabularyProgress
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		progress, err = s.ProgressRepo.GetOrCreateForUpdate(tx, userID, vocabID)
		if err != nil {
			return err
		}

		if bookmarked {
			now := time.Now()
			progress.LastReviewedAt = &now
		}
		progress.IsBookmarked = bookmarked

		return s.ProgressRepo.Save(tx, progress)
	})
	if err != nil {
		return nil, err
	}

	return progress, nil
}

func (s *PracticeService) GetLearnedVocabularies(userID uint) ([]model.VocabularyProgress, error) {
	return s.ProgressRepo.FindLearnedByUser(userID)
}

func (s *PracticeService) GetBookmarkedVocabularies(userID uint) ([]model.VocabularyProgress, error) {
	return s.ProgressRepo.FindBookmarkedByUser(userID)
}

// GetProgressStats returns zero-value stats when the user has never
// touched the word.
func (s *PracticeService) GetProgressStats(userID, vocabID uint) (*VocabProgressStats, error) {
	progress, err := s.ProgressRepo.FindByUserAndVocab(userID, vocabID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &VocabProgressStats{VocabID: vocabID}, nil
	}
	if err != nil {
		return nil, err
	}

	accuracy := 0
	if progress.PracticeAttempts > 0 {
		accuracy = int(math.Round(float64(progress.PracticeCorrectCount) /
			float64(progress.PracticeAttempts*s.masteryBatchSize) * 100))
	}

	return &VocabProgressStats{
		VocabID:              progress.VocabID,
		IsLearned:            progress.IsLearned,
		IsBookmarked:         progress.IsBookmarked,
		FirstLearnedAt:       progress.FirstLearnedAt,
		LastReviewedAt:       progress.LastReviewedAt,
		PracticeAttempts:     progress.PracticeAttempts,
		PracticeCorrectCount: progress.PracticeCorrectCount,
		Accuracy:             accuracy,
	}, nil
}
