package service

import (
	"testing"
	"time"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProgressService(t *testing.T, db *gorm.DB) *ProgressService {
	t.Helper()
	return NewProgressService(
		repository.NewResultRepository(db),
		repository.NewVocabularyRepository(db),
		testEngineConfig(),
	)
}

// seedResult inserts a result row with a controlled creation time.
func seedResult(t *testing.T, db *gorm.DB, userID, vocabID uint, correct bool, at time.Time) {
	t.Helper()
	r := &model.Result{
		UserID:        userID,
		VocabID:       vocabID,
		UserAnswer:    "answer",
		CorrectAnswer: "answer",
		IsCorrect:     correct,
	}
	if correct {
		r.Score = 100
	}
	require.NoError(t, db.Create(r).Error)
	require.NoError(t, db.Model(r).Update("created_at", at).Error)
}

func TestComputeStatsEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(t, db)
	seedVocabulary(t, db, "elephant")

	stats, err := svc.ComputeStats(1)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TotalWords)
	assert.Zero(t, stats.LearnedWords)
	assert.Zero(t, stats.CurrentStreak)
	assert.Zero(t, stats.LongestStreak)
	assert.Zero(t, stats.TotalAnswers)
	assert.Zero(t, stats.OverallProgress)
	assert.Zero(t, stats.WeeklyGoalProgress)
	assert.Len(t, stats.WeeklyActivity, 7)
	assert.Empty(t, stats.LearningTrends)
}

func TestLearnedWordBar(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(t, db)
	good := seedVocabulary(t, db, "elephant")
	shaky := seedVocabulary(t, db, "giraffe")
	untouched := seedVocabulary(t, db, "zebra")
	_ = untouched

	now := time.Now()
	// 4 of 5 correct: exactly the 80% bar.
	for i := 0; i < 4; i++ {
		seedResult(t, db, 1, good.ID, true, now)
	}
	seedResult(t, db, 1, good.ID, false, now)

	// 3 of 5 correct: below the bar.
	for i := 0; i < 3; i++ {
		seedResult(t, db, 1, shaky.ID, true, now)
	}
	seedResult(t, db, 1, shaky.ID, false, now)
	seedResult(t, db, 1, shaky.ID, false, now)

	stats, err := svc.ComputeStats(1)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.LearnedWords)
	assert.Equal(t, 3, stats.TotalWords)
	// 1 of 3 words, rounded.
	assert.Equal(t, 33, stats.OverallProgress)
	assert.Equal(t, 10, stats.TotalAnswers)
}

func TestLearnedWordBarNeedsACorrectAnswer(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(t, db)
	vocab := seedVocabulary(t, db, "elephant")

	// No answers at all for a word never makes it learned, and neither
	// do all-incorrect answers even though 0/0 ratios never apply.
	seedResult(t, db, 1, vocab.ID, false, time.Now())

	stats, err := svc.ComputeStats(1)
	require.NoError(t, err)
	assert.Zero(t, stats.LearnedWords)
}

func TestWeeklyGoalProgressClamped(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(t, db)
	vocab := seedVocabulary(t, db, "elephant")

	now := time.Now()
	for i := 0; i < 30; i++ {
		seedResult(t, db, 1, vocab.ID, true, now)
	}

	stats, err := svc.ComputeStats(1)
	require.NoError(t, err)
	assert.Equal(t, 100, stats.WeeklyGoalProgress)
}

func TestWeeklyGoalProgressPartial(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(t, db)
	vocab := seedVocabulary(t, db, "elephant")

	now := time.Now()
	for i := 0; i < 3; i++ {
		seedResult(t, db, 1, vocab.ID, true, now)
	}
	// Outside the trailing week, should not count.
	seedResult(t, db, 1, vocab.ID, true, now.Add(-8*24*time.Hour))

	stats, err := svc.ComputeStats(1)
	require.NoError(t, err)
	// 3 of 15, rounded.
	assert.Equal(t, 20, stats.WeeklyGoalProgress)
}

func TestWeeklyActivityHistogram(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(t, db)
	vocab := seedVocabulary(t, db, "elephant")

	now := time.Now().UTC()
	seedResult(t, db, 1, vocab.ID, true, now)
	seedResult(t, db, 1, vocab.ID, false, now)

	stats, err := svc.ComputeStats(1)
	require.NoError(t, err)

	require.Len(t, stats.WeeklyActivity, 7)
	assert.Equal(t, "Mon", stats.WeeklyActivity[0].Day)
	assert.Equal(t, "Sun", stats.WeeklyActivity[6].Day)

	wantIdx := (int(now.Weekday()) + 6) % 7
	total := 0
	for i, bucket := range stats.WeeklyActivity {
		total += bucket.Count
		if i == wantIdx {
			assert.Equal(t, 2, bucket.Count)
		}
	}
	assert.Equal(t, 2, total)
}

func TestLearningTrends(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(t, db)
	vocab := seedVocabulary(t, db, "elephant")

	now := time.Now().UTC()
	yesterday := now.Add(-24 * time.Hour)

	seedResult(t, db, 1, vocab.ID, true, yesterday)
	seedResult(t, db, 1, vocab.ID, false, yesterday)
	seedResult(t, db, 1, vocab.ID, true, now)
	// Beyond the 30-day window.
	seedResult(t, db, 1, vocab.ID, true, now.Add(-40*24*time.Hour))

	stats, err := svc.ComputeStats(1)
	require.NoError(t, err)

	require.Len(t, stats.LearningTrends, 2)
	assert.Equal(t, yesterday.Format("2006-01-02"), stats.LearningTrends[0].Date)
	assert.InDelta(t, 50.0, stats.LearningTrends[0].Score, 1e-9)
	assert.Equal(t, now.Format("2006-01-02"), stats.LearningTrends[1].Date)
	assert.InDelta(t, 100.0, stats.LearningTrends[1].Score, 1e-9)
}

func TestComputeStatsStreaks(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(t, db)
	vocab := seedVocabulary(t, db, "elephant")

	now := time.Now().UTC()
	seedResult(t, db, 1, vocab.ID, true, now)
	seedResult(t, db, 1, vocab.ID, true, now.Add(-24*time.Hour))
	seedResult(t, db, 1, vocab.ID, true, now.Add(-48*time.Hour))
	// Isolated day far in the past.
	seedResult(t, db, 1, vocab.ID, true, now.Add(-10*24*time.Hour))

	stats, err := svc.ComputeStats(1)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.CurrentStreak)
	assert.Equal(t, 3, stats.LongestStreak)
}
