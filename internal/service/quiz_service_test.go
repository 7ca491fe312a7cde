package service

import (
	"testing"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/repository"
	"vocab_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newQuizService(t *testing.T, db *gorm.DB) *QuizService {
	t.Helper()
	return NewQuizService(
		repository.NewQuizRepository(db),
		repository.NewQuizQuestionRepository(db),
		repository.NewVocabularyRepository(db),
		repository.NewResultRepository(db),
		NewAnswerEvaluator(0.85),
		db,
	)
}

func seedQuestion(t *testing.T, db *gorm.DB, vocabID uint, qType model.QuestionType, text, answer string, options []string) *model.QuizQuestion {
	t.Helper()
	q := &model.QuizQuestion{
		VocabID:       vocabID,
		QuestionType:  qType,
		QuestionText:  text,
		CorrectAnswer: answer,
		Options:       options,
	}
	require.NoError(t, db.Create(q).Error)
	return q
}

func seedQuiz(t *testing.T, db *gorm.DB, userID uint, questions int) *model.Quiz {
	t.Helper()
	quiz := &model.Quiz{
		UserID:         userID,
		DifficultyMode: model.QuizModeMixed,
		TotalQuestions: questions,
	}
	require.NoError(t, db.Create(quiz).Error)
	return quiz
}

func TestCreateQuizNotEnoughVocabulary(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(t, db)
	seedVocabulary(t, db, "elephant")

	_, err := svc.CreateQuiz(1, CreateQuizInput{})
	assert.ErrorIs(t, err, util.ErrNotEnoughVocabulary)
}

func TestSubmitQuizGrading(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(t, db)
	vocab := seedVocabulary(t, db, "elephant")

	mc := seedQuestion(t, db, vocab.ID, model.QuestionMultipleChoice,
		`What is the meaning of "elephant"?`, "a large animal",
		[]string{"a large animal", "a small bird", "a fish", "a tree"})
	typing := seedQuestion(t, db, vocab.ID, model.QuestionTyping,
		"Translate to English", "elephant", nil)
	quiz := seedQuiz(t, db, 1, 2)

	result, err := svc.SubmitQuiz(quiz.ID, 1, SubmitQuizInput{Answers: []QuizAnswerInput{
		{QuestionID: mc.ID, Answer: "A Large Animal "},
		{QuestionID: typing.ID, Answer: "elephent"},
	}})
	require.NoError(t, err)

	assert.Equal(t, quiz.ID, result.QuizID)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.Equal(t, 2, result.CorrectAnswers)
	assert.Equal(t, 100, result.Score)
	require.Len(t, result.Questions, 2)
	assert.True(t, result.Questions[0].IsCorrect)
	assert.True(t, result.Questions[1].IsCorrect)
	assert.Equal(t, "elephant", result.Questions[1].Word)

	var stored model.Quiz
	require.NoError(t, db.First(&stored, quiz.ID).Error)
	assert.Equal(t, 100, stored.Score)

	var rows []model.Result
	require.NoError(t, db.Where("quiz_id = ?", quiz.ID).Find(&rows).Error)
	assert.Len(t, rows, 2)
}

func TestSubmitQuizMultipleChoiceIsExact(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(t, db)
	vocab := seedVocabulary(t, db, "elephant")

	mc := seedQuestion(t, db, vocab.ID, model.QuestionMultipleChoice,
		"Pick the meaning", "a large animal",
		[]string{"a large animal", "a large animol"})
	quiz := seedQuiz(t, db, 1, 1)

	// A near-miss on an option is wrong even though the fuzzy evaluator
	// would have accepted it.
	result, err := svc.SubmitQuiz(quiz.ID, 1, SubmitQuizInput{Answers: []QuizAnswerInput{
		{QuestionID: mc.ID, Answer: "a large animol"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 0, result.CorrectAnswers)
	assert.Zero(t, result.Score)
}

func TestSubmitQuizPartialScore(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(t, db)
	vocab := seedVocabulary(t, db, "elephant")

	q1 := seedQuestion(t, db, vocab.ID, model.QuestionTyping, "Translate", "elephant", nil)
	q2 := seedQuestion(t, db, vocab.ID, model.QuestionTyping, "Translate", "elephant", nil)
	q3 := seedQuestion(t, db, vocab.ID, model.QuestionTyping, "Translate", "elephant", nil)
	quiz := seedQuiz(t, db, 1, 3)

	result, err := svc.SubmitQuiz(quiz.ID, 1, SubmitQuizInput{Answers: []QuizAnswerInput{
		{QuestionID: q1.ID, Answer: "elephant"},
		{QuestionID: q2.ID, Answer: "giraffe"},
		{QuestionID: q3.ID, Answer: "elephant"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, result.CorrectAnswers)
	assert.Equal(t, 67, result.Score)
}

func TestSubmitQuizSkipsUnknownQuestions(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(t, db)
	vocab := seedVocabulary(t, db, "elephant")

	q := seedQuestion(t, db, vocab.ID, model.QuestionTyping, "Translate", "elephant", nil)
	quiz := seedQuiz(t, db, 1, 2)

	result, err := svc.SubmitQuiz(quiz.ID, 1, SubmitQuizInput{Answers: []QuizAnswerInput{
		{QuestionID: q.ID, Answer: "elephant"},
		{QuestionID: 9999, Answer: "anything"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.CorrectAnswers)
	require.Len(t, result.Questions, 1)
	// The stale answer still counts toward the denominator.
	assert.Equal(t, 50, result.Score)
}

func TestSubmitQuizWrongUser(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(t, db)
	quiz := seedQuiz(t, db, 1, 1)

	_, err := svc.SubmitQuiz(quiz.ID, 2, SubmitQuizInput{Answers: []QuizAnswerInput{{QuestionID: 1, Answer: "x"}}})
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestGetQuizStatistics(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(t, db)
	vocab := seedVocabulary(t, db, "elephant")

	q := seedQuestion(t, db, vocab.ID, model.QuestionTyping, "Translate", "elephant", nil)

	first := seedQuiz(t, db, 1, 1)
	_, err := svc.SubmitQuiz(first.ID, 1, SubmitQuizInput{Answers: []QuizAnswerInput{{QuestionID: q.ID, Answer: "elephant"}}})
	require.NoError(t, err)

	second := seedQuiz(t, db, 1, 1)
	_, err = svc.SubmitQuiz(second.ID, 1, SubmitQuizInput{Answers: []QuizAnswerInput{{QuestionID: q.ID, Answer: "giraffe"}}})
	require.NoError(t, err)

	// A created but never submitted quiz stays out of the averages.
	seedQuiz(t, db, 1, 1)

	stats, err := svc.GetQuizStatistics(1)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TotalQuizzes)
	assert.Equal(t, 100, stats.AverageScore)
	assert.Equal(t, 100, stats.BestScore)
	assert.Equal(t, 2, stats.TotalQuestionsAnswered)
	assert.Equal(t, 1, stats.CorrectAnswers)
	assert.Equal(t, 50, stats.Accuracy)
	assert.Len(t, stats.RecentQuizzes, 3)
}

func TestDeleteQuiz(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(t, db)
	quiz := seedQuiz(t, db, 1, 1)

	require.Error(t, svc.DeleteQuiz(quiz.ID, 2))
	require.NoError(t, svc.DeleteQuiz(quiz.ID, 1))

	_, err := svc.GetQuizByID(quiz.ID, 1)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}
