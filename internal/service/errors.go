package service

import "errors"

var (
	ErrInvalidQuiz = errors.New("question and answer are required")
	ErrInvalidID   = errors.New("invalid quiz id")
)
