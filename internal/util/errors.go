package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrVocabularyNotFound   = errors.New("vocabulary not found")
	ErrTopicNotFound        = errors.New("topic not found")
	ErrQuizNotFound         = errors.New("quiz not found")
	ErrNotEnoughVocabulary  = errors.New("not enough vocabularies to build a quiz")
	ErrNoQuizQuestions      = errors.New("no quiz questions available")
	ErrSpeechServiceFailure = errors.New("speech service request failed")
)
