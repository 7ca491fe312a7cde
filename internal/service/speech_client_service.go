package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
	"vocab_edu_backend/internal/config"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/util"
	"vocab_edu_backend/pkg/logger"

	"go.uber.org/zap"
)

type TTSGenerateRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	VocabID  uint   `json:"vocab_id"`
	Voice    string `json:"voice,omitempty"`
}

type TTSGenerateResponse struct {
	AudioURL  string  `json:"audio_url"`
	Duration  float64 `json:"duration"`
	FileSize  int64   `json:"file_size"`
	VoiceUsed string  `json:"voice_used"`
}

type STTRecognizeRequest struct {
	AudioBase64   string `json:"audio_base64"`
	TargetWord    string `json:"target_word"`
	UserID        uint   `json:"user_id"`
	VocabID       uint   `json:"vocab_id"`
	SaveRecording bool   `json:"save_recording"`
}

type STTRecognizeResponse struct {
	RecognizedText     string                   `json:"recognized_text"`
	TargetWord         string                   `json:"target_word"`
	IsCorrect          bool                     `json:"is_correct"`
	Confidence         float64                  `json:"confidence"`
	Accuracy           float64                  `json:"accuracy"`
	PronunciationScore model.PronunciationScore `json:"pronunciation_score"`
	AudioURL           string                   `json:"audio_url,omitempty"`
}

type SpeechVoice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Language string `json:"language"`
}

// SpeechClientService talks to the external speech service over HTTP.
// Every call shares one client with a 30s timeout; any non-2xx
// response or transport error comes back as ErrSpeechServiceFailure so
// callers can treat it as retryable without inspecting the body.
type SpeechClientService struct {
	baseURL string
	client  *http.Client
}

func NewSpeechClientService(cfg config.SpeechConfig) *SpeechClientService {
	logger.Log.Info("speech service client initialized", zap.String("url", cfg.ServiceURL))
	return &SpeechClientService{
		baseURL: cfg.ServiceURL,
		client:  &http.Client{Timeout: cfg.RequestTimeout},
	}
}

func (s *SpeechClientService) GenerateTTS(req TTSGenerateRequest) (*TTSGenerateResponse, error) {
	var resp TTSGenerateResponse
	if err := s.postJSON("/tts/generate", req, &resp); err != nil {
		logger.Log.Error("tts generation failed",
			zap.Uint("vocabId", req.VocabID),
			zap.Error(err))
		return nil, err
	}
	return &resp, nil
}

func (s *SpeechClientService) RecognizeSpeech(req STTRecognizeRequest) (*STTRecognizeResponse, error) {
	var resp STTRecognizeResponse
	if err := s.postJSON("/stt/recognize-base64", req, &resp); err != nil {
		logger.Log.Error("speech recognition failed",
			zap.Uint("vocabId", req.VocabID),
			zap.String("target", req.TargetWord),
			zap.Error(err))
		return nil, err
	}
	return &resp, nil
}

func (s *SpeechClientService) Voices(language string) ([]SpeechVoice, error) {
	endpoint := s.baseURL + "/tts/voices"
	if language != "" {
		endpoint += "?language=" + url.QueryEscape(language)
	}

	httpResp, err := s.client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrSpeechServiceFailure, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, s.serviceError(httpResp)
	}

	var payload struct {
		Voices []SpeechVoice `json:"voices"`
	}
	if err := json.NewDecoder(httpResp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode voices: %v", util.ErrSpeechServiceFailure, err)
	}
	return payload.Voices, nil
}

// DeleteAudio is best-effort cleanup. Failures are logged, never
// returned.
func (s *SpeechClientService) DeleteAudio(vocabID uint, language string) {
	endpoint := fmt.Sprintf("%s/tts/audio/%d?language=%s", s.baseURL, vocabID, url.QueryEscape(language))
	req, err := http.NewRequest(http.MethodDelete, endpoint, nil)
	if err != nil {
		logger.Log.Warn("audio delete request build failed", zap.Uint("vocabId", vocabID), zap.Error(err))
		return
	}

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Log.Warn("audio delete failed", zap.Uint("vocabId", vocabID), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.Log.Warn("audio delete rejected",
			zap.Uint("vocabId", vocabID),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)))
		return
	}

	logger.Log.Debug("audio deleted", zap.Uint("vocabId", vocabID))
}

func (s *SpeechClientService) HealthCheck() bool {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(s.baseURL + "/health")
	if err != nil {
		logger.Log.Warn("speech service health check failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return false
	}
	return payload.Status == "healthy"
}

func (s *SpeechClientService) postJSON(path string, request, response interface{}) error {
	body, err := json.Marshal(request)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", util.ErrSpeechServiceFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return s.serviceError(resp)
	}

	return json.NewDecoder(resp.Body).Decode(response)
}

// serviceError captures the body detail for the log line without
// parsing it for control flow.
func (s *SpeechClientService) serviceError(resp *http.Response) error {
	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return fmt.Errorf("%w: status %d: %s", util.ErrSpeechServiceFailure, resp.StatusCode, string(detail))
}
