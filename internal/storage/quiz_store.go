package storage

import (
	"context"
	"errors"

	"github.com/lugarol/P4-Quiz/internal/game"
)

var (
	ErrQuizNotFound      = errors.New("quiz not found")
	ErrDuplicateQuestion = errors.New("question already exists")
)

type QuizInput struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type QuizStore interface {
	ListQuizzes(ctx context.Context) ([]game.Quiz, error)
	CountQuizzes(ctx context.Context) (int, error)
	GetQuiz(ctx context.Context, id int64) (game.Quiz, error)

	CreateQuiz(ctx context.Context, in QuizInput) (game.Quiz, error)
	UpdateQuiz(ctx context.Context, id int64, in QuizInput) (game.Quiz, error)
	DeleteQuiz(ctx context.Context, id int64) error
}
