package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lugarol/P4-Quiz/internal/game"
)

const pgUniqueViolation = "23505"

type PostgresQuizStore struct {
	db *pgxpool.Pool
}

func NewPostgresQuizStore(db *pgxpool.Pool) *PostgresQuizStore {
	return &PostgresQuizStore{db: db}
}

func (s *PostgresQuizStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS quizzes (
			id         BIGSERIAL PRIMARY KEY,
			question   TEXT NOT NULL UNIQUE,
			answer     TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create quizzes table: %w", err)
	}
	return nil
}

func (s *PostgresQuizStore) ListQuizzes(ctx context.Context) ([]game.Quiz, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, question, answer
		FROM quizzes
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	defer rows.Close()

	out := make([]game.Quiz, 0)
	for rows.Next() {
		var q game.Quiz
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer); err != nil {
			return nil, fmt.Errorf("failed to scan quiz: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quizzes: %w", err)
	}
	return out, nil
}

func (s *PostgresQuizStore) CountQuizzes(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM quizzes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count quizzes: %w", err)
	}
	return n, nil
}

func (s *PostgresQuizStore) GetQuiz(ctx context.Context, id int64) (game.Quiz, error) {
	var q game.Quiz
	err := s.db.QueryRow(ctx, `
		SELECT id, question, answer
		FROM quizzes
		WHERE id = $1
	`, id).Scan(&q.ID, &q.Question, &q.Answer)
	if err != nil {
		return game.Quiz{}, mapPgError(err, "get quiz")
	}
	return q, nil
}

func (s *PostgresQuizStore) CreateQuiz(ctx context.Context, in QuizInput) (game.Quiz, error) {
	var q game.Quiz
	err := s.db.QueryRow(ctx, `
		INSERT INTO quizzes (question, answer)
		VALUES ($1, $2)
		RETURNING id, question, answer
	`, in.Question, in.Answer).Scan(&q.ID, &q.Question, &q.Answer)
	if err != nil {
		return game.Quiz{}, mapPgError(err, "create quiz")
	}
	return q, nil
}

func (s *PostgresQuizStore) UpdateQuiz(ctx context.Context, id int64, in QuizInput) (game.Quiz, error) {
	var q game.Quiz
	err := s.db.QueryRow(ctx, `
		UPDATE quizzes
		SET question = $2, answer = $3, updated_at = now()
		WHERE id = $1
		RETURNING id, question, answer
	`, id, in.Question, in.Answer).Scan(&q.ID, &q.Question, &q.Answer)
	if err != nil {
		return game.Quiz{}, mapPgError(err, "update quiz")
	}
	return q, nil
}

func (s *PostgresQuizStore) DeleteQuiz(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrQuizNotFound
	}
	return nil
}

func mapPgError(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrQuizNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicateQuestion
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
