package service

import (
	"fmt"
	"testing"
	"time"
	"vocab_edu_backend/internal/config"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/repository"
	"vocab_edu_backend/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testEngineConfig() config.EngineConfig {
	return config.EngineConfig{
		SimilarityThreshold: 0.85,
		MasteryBatchSize:    4,
		MasteryMinCorrect:   3,
		WeeklyGoal:          15,
		TTSMaxAttempts:      3,
		TTSBaseDelay:        time.Millisecond,
	}
}

func seedVocabulary(t *testing.T, db *gorm.DB, word string) *model.Vocabulary {
	t.Helper()
	topic := &model.Topic{Name: "Animals"}
	require.NoError(t, db.Create(topic).Error)
	vocab := &model.Vocabulary{
		TopicID:         topic.ID,
		Word:            word,
		MeaningEn:       "a " + word,
		MeaningVi:       "con " + word,
		DifficultyLevel: model.DifficultyBeginner,
	}
	require.NoError(t, db.Create(vocab).Error)
	return vocab
}

func newPracticeService(t *testing.T, db *gorm.DB) *PracticeService {
	t.Helper()
	return NewPracticeService(
		repository.NewVocabularyProgressRepository(db),
		repository.NewVocabularyRepository(db),
		repository.NewResultRepository(db),
		testEngineConfig(),
		db,
	)
}
