package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/lugarol/P4-Quiz/internal/game"
	"github.com/redis/go-redis/v9"
)

const (
	quizSeqKey       = "seq"
	quizDataKey      = "data"
	quizQuestionsKey = "questions"

	maxTxAttempts = 5
)

// RedisQuizStore keeps every quiz as JSON in one hash keyed by id, plus a
// question -> id hash that enforces unique questions.
type RedisQuizStore struct {
	redis  *redis.Client
	prefix string
}

func NewRedisQuizStore(client *redis.Client, prefix string) *RedisQuizStore {
	if prefix == "" {
		prefix = "quizzes:"
	}
	return &RedisQuizStore{redis: client, prefix: prefix}
}

func (s *RedisQuizStore) key(name string) string {
	return s.prefix + name
}

func (s *RedisQuizStore) ListQuizzes(ctx context.Context) ([]game.Quiz, error) {
	data, err := s.redis.HGetAll(ctx, s.key(quizDataKey)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	out := make([]game.Quiz, 0, len(data))
	for _, raw := range data {
		var q game.Quiz
		if err := json.Unmarshal([]byte(raw), &q); err != nil {
			return nil, fmt.Errorf("failed to unmarshal quiz: %w", err)
		}
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *RedisQuizStore) CountQuizzes(ctx context.Context) (int, error) {
	n, err := s.redis.HLen(ctx, s.key(quizDataKey)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count quizzes: %w", err)
	}
	return int(n), nil
}

func (s *RedisQuizStore) GetQuiz(ctx context.Context, id int64) (game.Quiz, error) {
	return s.get(ctx, s.redis, id)
}

// CreateQuiz takes the next id from the counter even when the write is
// rejected, so ids may have gaps.
func (s *RedisQuizStore) CreateQuiz(ctx context.Context, in QuizInput) (game.Quiz, error) {
	id, err := s.redis.Incr(ctx, s.key(quizSeqKey)).Result()
	if err != nil {
		return game.Quiz{}, fmt.Errorf("failed to allocate quiz id: %w", err)
	}

	q := game.Quiz{ID: id, Question: in.Question, Answer: in.Answer}
	err = s.watch(ctx, func(tx *redis.Tx) error {
		if err := s.checkQuestion(ctx, tx, q); err != nil {
			return err
		}
		return s.commit(ctx, tx, q, "")
	})
	if err != nil {
		return game.Quiz{}, err
	}
	return q, nil
}

func (s *RedisQuizStore) UpdateQuiz(ctx context.Context, id int64, in QuizInput) (game.Quiz, error) {
	q := game.Quiz{ID: id, Question: in.Question, Answer: in.Answer}
	err := s.watch(ctx, func(tx *redis.Tx) error {
		old, err := s.get(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.checkQuestion(ctx, tx, q); err != nil {
			return err
		}
		return s.commit(ctx, tx, q, old.Question)
	})
	if err != nil {
		return game.Quiz{}, err
	}
	return q, nil
}

func (s *RedisQuizStore) DeleteQuiz(ctx context.Context, id int64) error {
	return s.watch(ctx, func(tx *redis.Tx) error {
		q, err := s.get(ctx, tx, id)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HDel(ctx, s.key(quizDataKey), strconv.FormatInt(id, 10))
			pipe.HDel(ctx, s.key(quizQuestionsKey), q.Question)
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to delete quiz: %w", err)
		}
		return nil
	})
}

type hashGetter interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
}

func (s *RedisQuizStore) get(ctx context.Context, c hashGetter, id int64) (game.Quiz, error) {
	raw, err := c.HGet(ctx, s.key(quizDataKey), strconv.FormatInt(id, 10)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return game.Quiz{}, ErrQuizNotFound
		}
		return game.Quiz{}, fmt.Errorf("failed to get quiz: %w", err)
	}

	var q game.Quiz
	if err := json.Unmarshal(raw, &q); err != nil {
		return game.Quiz{}, fmt.Errorf("failed to unmarshal quiz: %w", err)
	}
	return q, nil
}

// watch runs fn optimistically over both hashes and retries when another
// client changed them before EXEC.
func (s *RedisQuizStore) watch(ctx context.Context, fn func(tx *redis.Tx) error) error {
	for i := 0; i < maxTxAttempts; i++ {
		err := s.redis.Watch(ctx, fn, s.key(quizDataKey), s.key(quizQuestionsKey))
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return fmt.Errorf("failed to store quiz: %w", redis.TxFailedErr)
}

// checkQuestion fails when q.Question belongs to a different quiz.
func (s *RedisQuizStore) checkQuestion(ctx context.Context, tx *redis.Tx, q game.Quiz) error {
	owner, err := tx.HGet(ctx, s.key(quizQuestionsKey), q.Question).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check question: %w", err)
	case owner != strconv.FormatInt(q.ID, 10):
		return ErrDuplicateQuestion
	}
	return nil
}

// commit writes the quiz and its question index in one MULTI/EXEC, releasing
// oldQuestion when the question text changed.
func (s *RedisQuizStore) commit(ctx context.Context, tx *redis.Tx, q game.Quiz, oldQuestion string) error {
	data, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("failed to marshal quiz: %w", err)
	}
	id := strconv.FormatInt(q.ID, 10)

	_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if oldQuestion != "" && oldQuestion != q.Question {
			pipe.HDel(ctx, s.key(quizQuestionsKey), oldQuestion)
		}
		pipe.HSet(ctx, s.key(quizQuestionsKey), q.Question, id)
		pipe.HSet(ctx, s.key(quizDataKey), id, data)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store quiz: %w", err)
	}
	return nil
}
