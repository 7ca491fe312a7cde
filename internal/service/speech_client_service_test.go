package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"vocab_edu_backend/internal/config"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSpeechClient(url string) *SpeechClientService {
	return NewSpeechClientService(config.SpeechConfig{
		ServiceURL:     url,
		RequestTimeout: 2 * time.Second,
	})
}

func TestGenerateTTS(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tts/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req TTSGenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "elephant", req.Text)
		assert.Equal(t, uint(7), req.VocabID)

		json.NewEncoder(w).Encode(TTSGenerateResponse{
			AudioURL:  "/audio/en/elephant.mp3",
			Duration:  1.4,
			VoiceUsed: "en-US-1",
		})
	}))
	defer srv.Close()

	resp, err := newSpeechClient(srv.URL).GenerateTTS(TTSGenerateRequest{
		Text:     "elephant",
		Language: "en",
		VocabID:  7,
	})
	require.NoError(t, err)
	assert.Equal(t, "/audio/en/elephant.mp3", resp.AudioURL)
	assert.Equal(t, "en-US-1", resp.VoiceUsed)
}

func TestGenerateTTSServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"voice not found"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	_, err := newSpeechClient(srv.URL).GenerateTTS(TTSGenerateRequest{Text: "elephant"})
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrSpeechServiceFailure)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "voice not found")
}

func TestGenerateTTSUnreachable(t *testing.T) {
	_, err := newSpeechClient("http://127.0.0.1:1").GenerateTTS(TTSGenerateRequest{Text: "elephant"})
	assert.ErrorIs(t, err, util.ErrSpeechServiceFailure)
}

func TestRecognizeSpeech(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stt/recognize-base64", r.URL.Path)

		var req STTRecognizeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "elephant", req.TargetWord)
		assert.True(t, req.SaveRecording)

		json.NewEncoder(w).Encode(STTRecognizeResponse{
			RecognizedText: "elephant",
			TargetWord:     req.TargetWord,
			IsCorrect:      true,
			Confidence:     0.93,
			Accuracy:       0.88,
			PronunciationScore: model.PronunciationScore{
				Accuracy: 0.88, Fluency: 0.9, Completeness: 1,
			},
		})
	}))
	defer srv.Close()

	resp, err := newSpeechClient(srv.URL).RecognizeSpeech(STTRecognizeRequest{
		AudioBase64:   "aGVsbG8=",
		TargetWord:    "elephant",
		UserID:        1,
		VocabID:       7,
		SaveRecording: true,
	})
	require.NoError(t, err)
	assert.True(t, resp.IsCorrect)
	assert.InDelta(t, 0.93, resp.Confidence, 1e-9)
	assert.InDelta(t, 0.9, resp.PronunciationScore.Fluency, 1e-9)
}

func TestVoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tts/voices", r.URL.Path)
		assert.Equal(t, "en", r.URL.Query().Get("language"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"voices": []SpeechVoice{
				{ID: "en-US-1", Name: "Aria", Language: "en"},
				{ID: "en-GB-2", Name: "Ryan", Language: "en"},
			},
		})
	}))
	defer srv.Close()

	voices, err := newSpeechClient(srv.URL).Voices("en")
	require.NoError(t, err)
	require.Len(t, voices, 2)
	assert.Equal(t, "Aria", voices[0].Name)
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
		want    bool
	}{
		{"healthy", http.StatusOK, `{"status":"healthy"}`, true},
		{"degraded", http.StatusOK, `{"status":"degraded"}`, false},
		{"server error", http.StatusInternalServerError, `{}`, false},
		{"garbage body", http.StatusOK, `not json`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/health", r.URL.Path)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.payload))
			}))
			defer srv.Close()

			assert.Equal(t, tt.want, newSpeechClient(srv.URL).HealthCheck())
		})
	}
}

func TestDeleteAudioBestEffort(t *testing.T) {
	var gotPath, gotLanguage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		gotPath = r.URL.Path
		gotLanguage = r.URL.Query().Get("language")
	}))
	defer srv.Close()

	newSpeechClient(srv.URL).DeleteAudio(7, "en")
	assert.Equal(t, "/tts/audio/7", gotPath)
	assert.Equal(t, "en", gotLanguage)

	// Failures never propagate.
	newSpeechClient("http://127.0.0.1:1").DeleteAudio(7, "en")
}
