package service

import (
	"context"
	"strings"

	"github.com/lugarol/P4-Quiz/internal/game"
	"github.com/lugarol/P4-Quiz/internal/storage"
)

type QuizService interface {
	ListQuizzes(ctx context.Context) ([]game.Quiz, error)
	GetQuiz(ctx context.Context, id int64) (game.Quiz, error)
	CreateQuiz(ctx context.Context, in storage.QuizInput) (game.Quiz, error)
	UpdateQuiz(ctx context.Context, id int64, in storage.QuizInput) (game.Quiz, error)
	DeleteQuiz(ctx context.Context, id int64) error
}

type quizService struct {
	qs storage.QuizStore
}

func NewQuizService(qs storage.QuizStore) QuizService {
	return &quizService{qs: qs}
}

func (s *quizService) ListQuizzes(ctx context.Context) ([]game.Quiz, error) {
	return s.qs.ListQuizzes(ctx)
}

func (s *quizService) GetQuiz(ctx context.Context, id int64) (game.Quiz, error) {
	if id <= 0 {
		return game.Quiz{}, ErrInvalidID
	}
	return s.qs.GetQuiz(ctx, id)
}

func (s *quizService) CreateQuiz(ctx context.Context, in storage.QuizInput) (game.Quiz, error) {
	in, err := cleanInput(in)
	if err != nil {
		return game.Quiz{}, err
	}
	return s.qs.CreateQuiz(ctx, in)
}

func (s *quizService) UpdateQuiz(ctx context.Context, id int64, in storage.QuizInput) (game.Quiz, error) {
	if id <= 0 {
		return game.Quiz{}, ErrInvalidID
	}
	in, err := cleanInput(in)
	if err != nil {
		return game.Quiz{}, err
	}
	return s.qs.UpdateQuiz(ctx, id, in)
}

func (s *quizService) DeleteQuiz(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	return s.qs.DeleteQuiz(ctx, id)
}

func cleanInput(in storage.QuizInput) (storage.QuizInput, error) {
	in.Question = strings.TrimSpace(in.Question)
	in.Answer = strings.TrimSpace(in.Answer)
	if in.Question == "" || in.Answer == "" {
		return storage.QuizInput{}, ErrInvalidQuiz
	}
	return in, nil
}
