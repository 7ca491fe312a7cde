package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
	"vocab_edu_backend/internal/config"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// speechStub fails the first failures requests to /tts/generate and
// succeeds afterwards.
func speechStub(t *testing.T, failures int, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tts/generate" {
			http.NotFound(w, r)
			return
		}
		n := atomic.AddInt32(calls, 1)
		if int(n) <= failures {
			http.Error(w, `{"detail":"synthesis backend unavailable"}`, http.StatusInternalServerError)
			return
		}
		var req TTSGenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		json.NewEncoder(w).Encode(TTSGenerateResponse{
			AudioURL: "/audio/en/" + req.Text + ".mp3",
			Duration: 1.2,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newAudioService(t *testing.T, db *gorm.DB, serviceURL string) *AudioService {
	t.Helper()
	speech := NewSpeechClientService(config.SpeechConfig{
		ServiceURL:     serviceURL,
		RequestTimeout: 2 * time.Second,
	})
	return NewAudioService(
		repository.NewVocabularyRepository(db),
		speech,
		NewAssetHub(nil),
		testEngineConfig(),
	)
}

func TestGenerateAsyncSuccess(t *testing.T) {
	db := newTestDB(t)
	vocab := seedVocabulary(t, db, "elephant")

	var calls int32
	srv := speechStub(t, 0, &calls)
	svc := newAudioService(t, db, srv.URL)

	svc.GenerateAsync(vocab.ID, vocab.Word, "en")
	svc.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	var stored model.Vocabulary
	require.NoError(t, db.First(&stored, vocab.ID).Error)
	require.NotNil(t, stored.AudioURL)
	assert.Equal(t, "/audio/en/elephant.mp3", *stored.AudioURL)
}

func TestGenerateAsyncRetriesThenSucceeds(t *testing.T) {
	db := newTestDB(t)
	vocab := seedVocabulary(t, db, "elephant")

	var calls int32
	srv := speechStub(t, 2, &calls)
	svc := newAudioService(t, db, srv.URL)

	svc.GenerateAsync(vocab.ID, vocab.Word, "en")
	svc.Wait()

	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	var stored model.Vocabulary
	require.NoError(t, db.First(&stored, vocab.ID).Error)
	require.NotNil(t, stored.AudioURL)
}

func TestGenerateAsyncGivesUpAfterMaxAttempts(t *testing.T) {
	db := newTestDB(t)
	vocab := seedVocabulary(t, db, "elephant")

	var calls int32
	srv := speechStub(t, 100, &calls)
	svc := newAudioService(t, db, srv.URL)

	svc.GenerateAsync(vocab.ID, vocab.Word, "en")
	svc.Wait()

	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	var stored model.Vocabulary
	require.NoError(t, db.First(&stored, vocab.ID).Error)
	assert.Nil(t, stored.AudioURL)
}

func TestGenerateAsyncVocabularyDeletedMidFlight(t *testing.T) {
	db := newTestDB(t)
	vocab := seedVocabulary(t, db, "elephant")
	require.NoError(t, db.Unscoped().Delete(&model.Vocabulary{}, vocab.ID).Error)

	var calls int32
	srv := speechStub(t, 0, &calls)
	svc := newAudioService(t, db, srv.URL)

	svc.GenerateAsync(vocab.ID, "elephant", "en")
	svc.Wait()

	// Synthesis happened but the orphaned URL was discarded.
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	var count int64
	require.NoError(t, db.Model(&model.Vocabulary{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRegenerateMissingQueuesOnlyMissing(t *testing.T) {
	db := newTestDB(t)
	missing := seedVocabulary(t, db, "elephant")
	done := seedVocabulary(t, db, "giraffe")
	url := "/audio/en/giraffe.mp3"
	require.NoError(t, db.Model(done).Update("audio_url", url).Error)

	var calls int32
	srv := speechStub(t, 0, &calls)
	svc := newAudioService(t, db, srv.URL)

	queued, err := svc.RegenerateMissing()
	require.NoError(t, err)
	assert.Equal(t, 1, queued)
	svc.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	var stored model.Vocabulary
	require.NoError(t, db.First(&stored, missing.ID).Error)
	assert.NotNil(t, stored.AudioURL)
}
