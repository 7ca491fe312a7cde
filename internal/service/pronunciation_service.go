package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/repository"
	"vocab_edu_backend/internal/util"
	"vocab_edu_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PronunciationResult bundles the stored attempt with the raw
// recognition response.
type PronunciationResult struct {
	Attempt     *model.PronunciationAttempt `json:"attempt"`
	Recognition *STTRecognizeResponse       `json:"result"`
}

// PronunciationStats summarizes a user's pronunciation history.
type PronunciationStats struct {
	TotalAttempts   int                          `json:"totalAttempts"`
	CorrectAttempts int                          `json:"correctAttempts"`
	Accuracy        int                          `json:"accuracy"`
	AvgConfidence   int                          `json:"avgConfidence"`
	AvgAccuracy     int                          `json:"avgAccuracy"`
	RecentAttempts  []model.PronunciationAttempt `json:"recentAttempts"`
}

// PronunciationService runs spoken practice. Recognition results feed
// the same mastery state machine as typed answers, so pronouncing a
// word correctly counts exactly like typing it correctly.
type PronunciationService struct {
	AttemptRepo *repository.PronunciationRepository
	VocabRepo   *repository.VocabularyRepository
	Speech      *SpeechClientService
	Practice    *PracticeService
	Storage     *StorageService
}

func NewPronunciationService(
	attemptRepo *repository.PronunciationRepository,
	vocabRepo *repository.VocabularyRepository,
	speech *SpeechClientService,
	practice *PracticeService,
	storage *StorageService,
) *PronunciationService {
	return &PronunciationService{
		AttemptRepo: attemptRepo,
		VocabRepo:   vocabRepo,
		Speech:      speech,
		Practice:    practice,
		Storage:     storage,
	}
}

// PracticePronunciation recognizes the uploaded audio against the
// vocabulary's word, persists the attempt, and records it as a
// one-answer practice submission. Recognition failure surfaces
// synchronously; nothing is persisted in that case.
func (s *PronunciationService) PracticePronunciation(userID, vocabID uint, audioBase64 string, saveRecording bool) (*PronunciationResult, error) {
	vocab, err := s.VocabRepo.FindByID(vocabID)
	if err != nil {
		return nil, err
	}

	recognition, err := s.Speech.RecognizeSpeech(STTRecognizeRequest{
		AudioBase64:   audioBase64,
		TargetWord:    vocab.Word,
		UserID:        userID,
		VocabID:       vocabID,
		SaveRecording: saveRecording,
	})
	if err != nil {
		return nil, err
	}

	score := recognition.PronunciationScore
	attempt := &model.PronunciationAttempt{
		UserID:             userID,
		VocabID:            vocabID,
		RecognizedText:     recognition.RecognizedText,
		TargetWord:         recognition.TargetWord,
		IsCorrect:          recognition.IsCorrect,
		Confidence:         recognition.Confidence,
		Accuracy:           recognition.Accuracy,
		PronunciationScore: &score,
		AudioURL:           recognition.AudioURL,
	}
	if err := s.AttemptRepo.Create(attempt); err != nil {
		return nil, err
	}

	_, err = s.Practice.RecordPracticeSubmission(userID, SubmitPracticeInput{
		VocabID: vocabID,
		Answers: []GradedAnswer{{
			QuestionText:  fmt.Sprintf("Pronounce: %s", vocab.Word),
			CorrectAnswer: vocab.Word,
			UserAnswer:    recognition.RecognizedText,
			IsCorrect:     recognition.IsCorrect,
		}},
	})
	if err != nil {
		// Attempt row is already saved; report but keep the result.
		logger.Log.Error("pronunciation progress update failed",
			zap.Uint("userId", userID),
			zap.Uint("vocabId", vocabID),
			zap.Error(err))
	}

	return &PronunciationResult{Attempt: attempt, Recognition: recognition}, nil
}

// PracticeWithRecording handles a raw uploaded recording. The file is
// converted to 16kHz mono WAV before recognition since browsers send
// webm/ogg; the original is stashed in storage when the user asked to
// keep it.
func (s *PronunciationService) PracticeWithRecording(userID, vocabID uint, localPath, contentType string, saveRecording bool) (*PronunciationResult, error) {
	wavPath := localPath + ".wav"
	if err := util.ConvertToWav(localPath, wavPath); err != nil {
		return nil, fmt.Errorf("audio conversion: %w", err)
	}
	defer os.Remove(wavPath)

	audio, err := os.ReadFile(wavPath)
	if err != nil {
		return nil, err
	}

	if saveRecording {
		object := fmt.Sprintf("pronunciation/%d/%s%s", userID, uuid.NewString(), filepath.Ext(localPath))
		if _, err := s.Storage.UploadFile(context.Background(), object, localPath, contentType); err != nil {
			logger.Log.Warn("recording upload failed",
				zap.Uint("userId", userID),
				zap.Uint("vocabId", vocabID),
				zap.Error(err))
		}
	}

	return s.PracticePronunciation(userID, vocabID, base64.StdEncoding.EncodeToString(audio), saveRecording)
}

// GetUserAttempts lists attempts, newest first. vocabID 0 means all
// words.
func (s *PronunciationService) GetUserAttempts(userID, vocabID uint) ([]model.PronunciationAttempt, error) {
	return s.AttemptRepo.FindByUser(userID, vocabID)
}

func (s *PronunciationService) GetAttemptStats(userID, vocabID uint) (*PronunciationStats, error) {
	attempts, err := s.AttemptRepo.FindByUser(userID, vocabID)
	if err != nil {
		return nil, err
	}

	total := len(attempts)
	correct := 0
	confidenceSum := 0.0
	accuracySum := 0.0
	for _, a := range attempts {
		if a.IsCorrect {
			correct++
		}
		confidenceSum += a.Confidence
		accuracySum += a.Accuracy
	}

	stats := &PronunciationStats{
		TotalAttempts:   total,
		CorrectAttempts: correct,
	}
	if total > 0 {
		stats.Accuracy = int(math.Round(float64(correct) / float64(total) * 100))
		stats.AvgConfidence = int(math.Round(confidenceSum / float64(total) * 100))
		stats.AvgAccuracy = int(math.Round(accuracySum / float64(total)))
	}

	recent := attempts
	if len(recent) > 5 {
		recent = recent[:5]
	}
	stats.RecentAttempts = recent

	return stats, nil
}
