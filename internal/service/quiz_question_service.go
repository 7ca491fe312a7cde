package service

import (
	"fmt"
	"math/rand"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/repository"
	"vocab_edu_backend/pkg/logger"

	"go.uber.org/zap"
)

const distractorCount = 3

// QuizQuestionService builds the question bank the quizzes draw from.
// Multiple choice questions need 3 distractors, so generation is
// skipped while the catalog holds fewer than 4 words.
type QuizQuestionService struct {
	QuestionRepo *repository.QuizQuestionRepository
	VocabRepo    *repository.VocabularyRepository
}

func NewQuizQuestionService(
	questionRepo *repository.QuizQuestionRepository,
	vocabRepo *repository.VocabularyRepository,
) *QuizQuestionService {
	return &QuizQuestionService{QuestionRepo: questionRepo, VocabRepo: vocabRepo}
}

// GenerateForVocabulary creates one multiple-choice and one typing
// question for a word. Safe to call again after edits; the quiz draw
// tolerates duplicates.
func (s *QuizQuestionService) GenerateForVocabulary(vocab *model.Vocabulary) error {
	pool, err := s.VocabRepo.FindRandom(distractorCount+3, vocab.DifficultyLevel)
	if err != nil {
		return err
	}

	var distractors []string
	for _, v := range pool {
		if v.ID == vocab.ID || v.MeaningEn == vocab.MeaningEn {
			continue
		}
		distractors = append(distractors, v.MeaningEn)
		if len(distractors) == distractorCount {
			break
		}
	}

	if len(distractors) < distractorCount {
		logger.Log.Debug("skipping multiple choice generation, catalog too small",
			zap.Uint("vocabId", vocab.ID))
	} else {
		options := append(distractors, vocab.MeaningEn)
		rand.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})

		mc := &model.QuizQuestion{
			VocabID:       vocab.ID,
			QuestionType:  model.QuestionMultipleChoice,
			QuestionText:  fmt.Sprintf("What is the meaning of %q?", vocab.Word),
			Options:       options,
			CorrectAnswer: vocab.MeaningEn,
		}
		if err := s.QuestionRepo.Create(mc); err != nil {
			return err
		}
	}

	typing := &model.QuizQuestion{
		VocabID:       vocab.ID,
		QuestionType:  model.QuestionTyping,
		QuestionText:  fmt.Sprintf("Translate to English: %q", vocab.MeaningVi),
		CorrectAnswer: vocab.Word,
	}
	if vocab.MeaningVi == "" {
		typing.QuestionText = fmt.Sprintf("Which word means %q?", vocab.MeaningEn)
	}
	return s.QuestionRepo.Create(typing)
}

func (s *QuizQuestionService) GetQuestionByID(id uint) (*model.QuizQuestion, error) {
	return s.QuestionRepo.FindByID(id)
}

func (s *QuizQuestionService) GetQuestionsForVocabulary(vocabID uint) ([]model.QuizQuestion, error) {
	return s.QuestionRepo.FindByVocabID(vocabID)
}
