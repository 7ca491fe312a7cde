package service

import (
	"sync"
	"time"
	"vocab_edu_backend/internal/config"
	"vocab_edu_backend/internal/repository"
	"vocab_edu_backend/internal/util"
	"vocab_edu_backend/pkg/logger"
	"vocab_edu_backend/pkg/monitoring"

	"go.uber.org/zap"
)

type audioJob struct {
	text     string
	language string
}

// AudioService is the asynchronous audio generation pipeline. Each
// vocabulary id has at most one worker in flight; a request arriving
// while its id is busy replaces the pending job instead of spawning a
// second worker, so the newest text always wins and attempts for one
// word never interleave.
type AudioService struct {
	VocabRepo *repository.VocabularyRepository
	Speech    *SpeechClientService
	Hub       *AssetHub

	maxAttempts int
	baseDelay   time.Duration

	mu      sync.Mutex
	pending map[uint]*audioJob
	running map[uint]bool
	wg      sync.WaitGroup
}

func NewAudioService(
	vocabRepo *repository.VocabularyRepository,
	speech *SpeechClientService,
	hub *AssetHub,
	engineCfg config.EngineConfig,
) *AudioService {
	return &AudioService{
		VocabRepo:   vocabRepo,
		Speech:      speech,
		Hub:         hub,
		maxAttempts: engineCfg.TTSMaxAttempts,
		baseDelay:   engineCfg.TTSBaseDelay,
		pending:     make(map[uint]*audioJob),
		running:     make(map[uint]bool),
	}
}

// GenerateAsync queues audio generation for a vocabulary. Fire and
// forget: the caller's request never waits on synthesis.
func (s *AudioService) GenerateAsync(vocabID uint, text, language string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending[vocabID] = &audioJob{text: text, language: language}
	if s.running[vocabID] {
		return
	}
	s.running[vocabID] = true
	s.wg.Add(1)
	go s.drain(vocabID)
}

// drain runs jobs for one vocabulary id until no job is pending.
func (s *AudioService) drain(vocabID uint) {
	defer s.wg.Done()
	for {
		s.mu.Lock()
		job, ok := s.pending[vocabID]
		if !ok {
			delete(s.running, vocabID)
			s.mu.Unlock()
			return
		}
		delete(s.pending, vocabID)
		s.mu.Unlock()

		s.generate(vocabID, job)
	}
}

func (s *AudioService) generate(vocabID uint, job *audioJob) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		resp, err := s.Speech.GenerateTTS(TTSGenerateRequest{
			Text:     job.text,
			Language: job.language,
			VocabID:  vocabID,
		})
		if err == nil {
			monitoring.TTSGenerationAttempts.WithLabelValues("success").Inc()

			updated, err := s.VocabRepo.SetAudioURL(vocabID, resp.AudioURL)
			if err != nil {
				logger.Log.Error("audio url persist failed",
					zap.Uint("vocabId", vocabID), zap.Error(err))
				return
			}
			if !updated {
				// Row deleted while we were synthesizing.
				logger.Log.Debug("audio generated for removed vocabulary",
					zap.Uint("vocabId", vocabID))
				return
			}

			logger.Log.Info("audio generated",
				zap.Uint("vocabId", vocabID),
				zap.String("audioUrl", resp.AudioURL),
				zap.Int("attempt", attempt))
			s.Hub.NotifyAudioReady(vocabID, resp.AudioURL)
			return
		}

		monitoring.TTSGenerationAttempts.WithLabelValues("failure").Inc()
		logger.Log.Warn("audio generation attempt failed",
			zap.Uint("vocabId", vocabID),
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", s.maxAttempts),
			zap.Error(err))

		if attempt < s.maxAttempts {
			time.Sleep(s.baseDelay * time.Duration(attempt))
		}
	}

	monitoring.TTSGenerationFailures.Inc()
	logger.Log.Error("audio generation gave up",
		zap.Uint("vocabId", vocabID),
		zap.String("text", job.text),
		zap.Int("attempts", s.maxAttempts))
}

// RegenerateMissing re-drives the pipeline for every vocabulary whose
// audio never materialized. Returns how many were queued.
func (s *AudioService) RegenerateMissing() (int, error) {
	vocabs, err := s.VocabRepo.FindMissingAudio()
	if err != nil {
		return 0, err
	}

	for _, v := range vocabs {
		s.GenerateAsync(v.ID, v.Word, util.LanguageEnglish)
	}

	if len(vocabs) > 0 {
		logger.Log.Info("queued missing audio regeneration", zap.Int("count", len(vocabs)))
	}
	return len(vocabs), nil
}

// DeleteAudio requests remote cleanup for a deleted vocabulary.
// Best-effort only.
func (s *AudioService) DeleteAudio(vocabID uint) {
	go s.Speech.DeleteAudio(vocabID, util.LanguageEnglish)
}

// Wait blocks until all in-flight generation workers finish. Used by
// shutdown and tests.
func (s *AudioService) Wait() {
	s.wg.Wait()
}
