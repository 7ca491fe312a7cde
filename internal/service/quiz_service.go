package service

import (
	"math"
	"strings"
	"time"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/repository"
	"vocab_edu_backend/internal/util"
	"vocab_edu_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minVocabulariesForQuiz = 4

type CreateQuizInput struct {
	DifficultyLevel string `json:"difficultyLevel"`
	TotalQuestions  int    `json:"totalQuestions"`
	TopicID         uint   `json:"topicId"`
}

type QuizAnswerInput struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Answer     string `json:"answer"`
	SpeechText string `json:"speechText"`
}

type SubmitQuizInput struct {
	Answers []QuizAnswerInput `json:"answers" binding:"required,min=1"`
}

type QuestionResult struct {
	QuestionID    uint    `json:"questionId"`
	QuestionText  string  `json:"questionText"`
	UserAnswer    string  `json:"userAnswer"`
	CorrectAnswer string  `json:"correctAnswer"`
	IsCorrect     bool    `json:"isCorrect"`
	Similarity    float64 `json:"similarity"`
	Word          string  `json:"word"`
}

type QuizResult struct {
	QuizID         uint             `json:"quizId"`
	TotalQuestions int              `json:"totalQuestions"`
	CorrectAnswers int              `json:"correctAnswers"`
	Score          int              `json:"score"`
	CompletedAt    time.Time        `json:"completedAt"`
	Questions      []QuestionResult `json:"questions"`
}

type QuizWithQuestions struct {
	Quiz      *model.Quiz          `json:"quiz"`
	Questions []model.QuizQuestion `json:"questions"`
}

type QuizStatistics struct {
	TotalQuizzes           int          `json:"totalQuizzes"`
	AverageScore           int          `json:"averageScore"`
	TotalQuestionsAnswered int          `json:"totalQuestionsAnswered"`
	CorrectAnswers         int          `json:"correctAnswers"`
	Accuracy               int          `json:"accuracy"`
	BestScore              int          `json:"bestScore"`
	RecentQuizzes          []model.Quiz `json:"recentQuizzes"`
}

// QuizService builds and grades question sets. Free-text answers go
// through the fuzzy evaluator so minor typos still count; multiple
// choice answers must match an option exactly.
type QuizService struct {
	QuizRepo     *repository.QuizRepository
	QuestionRepo *repository.QuizQuestionRepository
	VocabRepo    *repository.VocabularyRepository
	ResultRepo   *repository.ResultRepository
	Evaluator    *AnswerEvaluator

	db *gorm.DB
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	questionRepo *repository.QuizQuestionRepository,
	vocabRepo *repository.VocabularyRepository,
	resultRepo *repository.ResultRepository,
	evaluator *AnswerEvaluator,
	db *gorm.DB,
) *QuizService {
	return &QuizService{
		QuizRepo:     quizRepo,
		QuestionRepo: questionRepo,
		VocabRepo:    vocabRepo,
		ResultRepo:   resultRepo,
		Evaluator:    evaluator,
		db:           db,
	}
}

// CreateQuiz assembles a new quiz from random questions. Distractor
// options need a pool to draw from, so the matching vocabulary set
// must hold at least 4 entries.
func (s *QuizService) CreateQuiz(userID uint, input CreateQuizInput) (*QuizWithQuestions, error) {
	if input.TotalQuestions <= 0 {
		input.TotalQuestions = 10
	}

	mode, ok := model.DifficultyToQuizMode[input.DifficultyLevel]
	if !ok {
		mode = model.QuizModeMixed
	}

	difficulty := input.DifficultyLevel
	if mode == model.QuizModeMixed {
		difficulty = ""
	}

	available, err := s.VocabRepo.CountByDifficulty(model.DifficultyLevel(difficulty), input.TopicID)
	if err != nil {
		return nil, err
	}
	if available < minVocabulariesForQuiz {
		return nil, util.ErrNotEnoughVocabulary
	}

	questions, err := s.QuestionRepo.FindRandom(input.TotalQuestions, difficulty, input.TopicID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrNoQuizQuestions
	}

	quiz := &model.Quiz{
		UserID:         userID,
		DifficultyMode: mode,
		TotalQuestions: len(questions),
	}
	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}

	return &QuizWithQuestions{Quiz: quiz, Questions: questions}, nil
}

func (s *QuizService) GetQuizByID(quizID, userID uint) (*model.Quiz, error) {
	return s.QuizRepo.FindByIDAndUser(quizID, userID)
}

func (s *QuizService) GetUserQuizzes(userID uint, limit int) ([]model.Quiz, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.QuizRepo.FindByUser(userID, limit)
}

// SubmitQuiz grades every answer, persists one Result row per
// question inside one transaction, and stores the final score on the
// quiz. Unknown question ids are skipped, matching the per-question
// grading loop's tolerance for stale clients.
func (s *QuizService) SubmitQuiz(quizID, userID uint, input SubmitQuizInput) (*QuizResult, error) {
	quiz, err := s.QuizRepo.FindByIDAndUser(quizID, userID)
	if err != nil {
		return nil, err
	}

	var graded []QuestionResult
	correctCount := 0

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, answer := range input.Answers {
			question, err := s.QuestionRepo.FindByID(answer.QuestionID)
			if err != nil {
				continue
			}

			isCorrect, similarity := s.grade(question, answer.Answer)
			if isCorrect {
				correctCount++
			}

			result := &model.Result{
				UserID:        userID,
				VocabID:       question.VocabID,
				QuizID:        &quiz.ID,
				UserAnswer:    answer.Answer,
				CorrectAnswer: question.CorrectAnswer,
				IsCorrect:     isCorrect,
				Score:         int(math.Round(similarity * 100)),
			}
			if err := s.ResultRepo.CreateInTx(tx, result); err != nil {
				return err
			}

			word := ""
			if question.Vocabulary != nil {
				word = question.Vocabulary.Word
			}
			graded = append(graded, QuestionResult{
				QuestionID:    question.ID,
				QuestionText:  question.QuestionText,
				UserAnswer:    answer.Answer,
				CorrectAnswer: question.CorrectAnswer,
				IsCorrect:     isCorrect,
				Similarity:    similarity,
				Word:          word,
			})
		}

		total := len(input.Answers)
		quiz.Score = int(math.Round(float64(correctCount) / float64(total) * 100))
		return tx.Save(quiz).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("quiz submitted",
		zap.Uint("quizId", quiz.ID),
		zap.Uint("userId", userID),
		zap.Int("score", quiz.Score))

	return &QuizResult{
		QuizID:         quiz.ID,
		TotalQuestions: len(input.Answers),
		CorrectAnswers: correctCount,
		Score:          quiz.Score,
		CompletedAt:    time.Now(),
		Questions:      graded,
	}, nil
}

// grade applies the question-type rule: options are exact (normalized)
// matches, free text goes through the fuzzy evaluator.
func (s *QuizService) grade(question *model.QuizQuestion, answer string) (bool, float64) {
	if question.QuestionType == model.QuestionMultipleChoice {
		correct := strings.EqualFold(strings.TrimSpace(question.CorrectAnswer), strings.TrimSpace(answer))
		if correct {
			return true, 1.0
		}
		return false, Similarity(answer, question.CorrectAnswer)
	}
	return s.Evaluator.Evaluate(answer, question.CorrectAnswer)
}

func (s *QuizService) GetQuizStatistics(userID uint) (*QuizStatistics, error) {
	quizzes, err := s.QuizRepo.FindByUser(userID, 0)
	if err != nil {
		return nil, err
	}

	var completed []model.Quiz
	scoreSum := 0
	best := 0
	for _, q := range quizzes {
		if q.Score > 0 {
			completed = append(completed, q)
			scoreSum += q.Score
			if q.Score > best {
				best = q.Score
			}
		}
	}

	results, err := s.ResultRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	correct := 0
	for _, r := range results {
		if r.IsCorrect {
			correct++
		}
	}

	stats := &QuizStatistics{
		TotalQuizzes:           len(completed),
		TotalQuestionsAnswered: len(results),
		CorrectAnswers:         correct,
		BestScore:              best,
	}
	if len(completed) > 0 {
		stats.AverageScore = int(math.Round(float64(scoreSum) / float64(len(completed))))
	}
	if len(results) > 0 {
		stats.Accuracy = int(math.Round(float64(correct) / float64(len(results)) * 100))
	}

	recent := quizzes
	if len(recent) > 5 {
		recent = recent[:5]
	}
	stats.RecentQuizzes = recent

	return stats, nil
}

func (s *QuizService) DeleteQuiz(quizID, userID uint) error {
	quiz, err := s.QuizRepo.FindByIDAndUser(quizID, userID)
	if err != nil {
		return err
	}
	return s.QuizRepo.Delete(quiz)
}
