package service

import (
	"testing"
	"time"
	"vocab_edu_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answers(correct, incorrect int) []GradedAnswer {
	var out []GradedAnswer
	for i := 0; i < correct; i++ {
		out = append(out, GradedAnswer{
			QuestionText:  "What is the meaning?",
			CorrectAnswer: "elephant",
			UserAnswer:    "elephant",
			IsCorrect:     true,
		})
	}
	for i := 0; i < incorrect; i++ {
		out = append(out, GradedAnswer{
			QuestionText:  "What is the meaning?",
			CorrectAnswer: "elephant",
			UserAnswer:    "giraffe",
			IsCorrect:     false,
		})
	}
	return out
}

func TestRecordPracticeSubmissionMastery(t *testing.T) {
	db := newTestDB(t)
	svc := newPracticeService(t, db)
	vocab := seedVocabulary(t, db, "elephant")

	progress, err := svc.RecordPracticeSubmission(1, SubmitPracticeInput{
		VocabID: vocab.ID,
		Answers: answers(3, 1),
	})
	require.NoError(t, err)

	assert.True(t, progress.IsLearned)
	assert.NotNil(t, progress.FirstLearnedAt)
	assert.NotNil(t, progress.LastReviewedAt)
	assert.Equal(t, 1, progress.PracticeAttempts)
	assert.Equal(t, 3, progress.PracticeCorrectCount)

	var results []model.Result
	require.NoError(t, db.Where("user_id = ? AND vocab_id = ?", 1, vocab.ID).Find(&results).Error)
	assert.Len(t, results, 4)
	for _, r := range results {
		assert.Nil(t, r.QuizID)
	}
}

func TestRecordPracticeSubmissionNotMastered(t *testing.T) {
	db := newTestDB(t)
	svc := newPracticeService(t, db)
	vocab := seedVocabulary(t, db, "elephant")

	tests := []struct {
		name    string
		answers []GradedAnswer
	}{
		{"too few correct in full batch", answers(2, 2)},
		{"perfect but undersized batch", answers(3, 0)},
		{"oversized batch never masters", answers(5, 0)},
		{"single answer", answers(1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress, err := svc.RecordPracticeSubmission(1, SubmitPracticeInput{
				VocabID: vocab.ID,
				Answers: tt.answers,
			})
			require.NoError(t, err)
			assert.False(t, progress.IsLearned)
			assert.Nil(t, progress.FirstLearnedAt)
		})
	}
}

func TestRecordPracticeSubmissionAccumulates(t *testing.T) {
	db := newTestDB(t)
	svc := newPracticeService(t, db)
	vocab := seedVocabulary(t, db, "elephant")

	_, err := svc.RecordPracticeSubmission(1, SubmitPracticeInput{VocabID: vocab.ID, Answers: answers(2, 2)})
	require.NoError(t, err)
	progress, err := svc.RecordPracticeSubmission(1, SubmitPracticeInput{VocabID: vocab.ID, Answers: answers(4, 0)})
	require.NoError(t, err)

	assert.Equal(t, 2, progress.PracticeAttempts)
	assert.Equal(t, 6, progress.PracticeCorrectCount)
	assert.True(t, progress.IsLearned)
}

func TestFirstLearnedAtSetOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newPracticeService(t, db)
	vocab := seedVocabulary(t, db, "elephant")

	first, err := svc.RecordPracticeSubmission(1, SubmitPracticeInput{VocabID: vocab.ID, Answers: answers(4, 0)})
	require.NoError(t, err)
	require.NotNil(t, first.FirstLearnedAt)

	time.Sleep(10 * time.Millisecond)

	second, err := svc.RecordPracticeSubmission(1, SubmitPracticeInput{VocabID: vocab.ID, Answers: answers(4, 0)})
	require.NoError(t, err)
	require.NotNil(t, second.FirstLearnedAt)
	assert.Equal(t, first.FirstLearnedAt.UnixMilli(), second.FirstLearnedAt.UnixMilli())
	assert.True(t, second.LastReviewedAt.After(*first.FirstLearnedAt))
}

func TestRecordPracticeSubmissionUnknownVocab(t *testing.T) {
	db := newTestDB(t)
	svc := newPracticeService(t, db)

	_, err := svc.RecordPracticeSubmission(1, SubmitPracticeInput{VocabID: 999, Answers: answers(4, 0)})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&model.VocabularyProgress{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&model.Result{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestToggleBookmark(t *testing.T) {
	db := newTestDB(t)
	svc := newPracticeService(t, db)
	vocab := seedVocabulary(t, db, "elephant")

	on, err := svc.ToggleBookmark(1, vocab.ID, true)
	require.NoError(t, err)
	assert.True(t, on.IsBookmarked)
	require.NotNil(t, on.LastReviewedAt)
	reviewedAt := *on.LastReviewedAt

	off, err := svc.ToggleBookmark(1, vocab.ID, false)
	require.NoError(t, err)
	assert.False(t, off.IsBookmarked)
	require.NotNil(t, off.LastReviewedAt)
	assert.Equal(t, reviewedAt.UnixMilli(), off.LastReviewedAt.UnixMilli())

	// Bookmarking never touches the mastery counters.
	assert.Zero(t, off.PracticeAttempts)
	assert.False(t, off.IsLearned)
}

func TestGetProgressStats(t *testing.T) {
	db := newTestDB(t)
	svc := newPracticeService(t, db)
	vocab := seedVocabulary(t, db, "elephant")

	stats, err := svc.GetProgressStats(1, vocab.ID)
	require.NoError(t, err)
	assert.Equal(t, vocab.ID, stats.VocabID)
	assert.Zero(t, stats.PracticeAttempts)
	assert.Zero(t, stats.Accuracy)

	_, err = svc.RecordPracticeSubmission(1, SubmitPracticeInput{VocabID: vocab.ID, Answers: answers(3, 1)})
	require.NoError(t, err)

	stats, err = svc.GetProgressStats(1, vocab.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.PracticeAttempts)
	assert.Equal(t, 3, stats.PracticeCorrectCount)
	// 3 correct out of 1 attempt * batch size 4.
	assert.Equal(t, 75, stats.Accuracy)
	assert.True(t, stats.IsLearned)
}

func TestGetProgressStatsSurfacesStoreErrors(t *testing.T) {
	db := newTestDB(t)
	svc := newPracticeService(t, db)
	vocab := seedVocabulary(t, db, "elephant")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// Only record-not-found maps to zero-value stats; a failing store
	// must not masquerade as an untouched word.
	stats, err := svc.GetProgressStats(1, vocab.ID)
	require.Error(t, err)
	assert.Nil(t, stats)
}

func TestLearnedAndBookmarkedLists(t *testing.T) {
	db := newTestDB(t)
	svc := newPracticeService(t, db)
	learnedVocab := seedVocabulary(t, db, "elephant")
	bookmarkedVocab := seedVocabulary(t, db, "giraffe")

	_, err := svc.RecordPracticeSubmission(1, SubmitPracticeInput{VocabID: learnedVocab.ID, Answers: answers(4, 0)})
	require.NoError(t, err)
	_, err = svc.ToggleBookmark(1, bookmarkedVocab.ID, true)
	require.NoError(t, err)

	learned, err := svc.GetLearnedVocabularies(1)
	require.NoError(t, err)
	require.Len(t, learned, 1)
	assert.Equal(t, learnedVocab.ID, learned[0].VocabID)

	bookmarked, err := svc.GetBookmarkedVocabularies(1)
	require.NoError(t, err)
	require.Len(t, bookmarked, 1)
	assert.Equal(t, bookmarkedVocab.ID, bookmarked[0].VocabID)

	// Another user sees nothing.
	other, err := svc.GetLearnedVocabularies(2)
	require.NoError(t, err)
	assert.Empty(t, other)
}
