package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/lugarol/P4-Quiz/internal/game"
)

type MemoryQuizStore struct {
	mu      sync.RWMutex
	quizzes map[int64]game.Quiz
	lastID  int64
}

func NewMemoryQuizStore() *MemoryQuizStore {
	return &MemoryQuizStore{quizzes: make(map[int64]game.Quiz)}
}

func (s *MemoryQuizStore) ListQuizzes(ctx context.Context) ([]game.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]game.Quiz, 0, len(s.quizzes))
	for _, q := range s.quizzes {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryQuizStore) CountQuizzes(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.quizzes), nil
}

func (s *MemoryQuizStore) GetQuiz(ctx context.Context, id int64) (game.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.quizzes[id]
	if !ok {
		return game.Quiz{}, ErrQuizNotFound
	}
	return q, nil
}

func (s *MemoryQuizStore) CreateQuiz(ctx context.Context, in QuizInput) (game.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.questionTaken(in.Question, 0) {
		return game.Quiz{}, ErrDuplicateQuestion
	}

	s.lastID++
	q := game.Quiz{ID: s.lastID, Question: in.Question, Answer: in.Answer}
	s.quizzes[q.ID] = q
	return q, nil
}

func (s *MemoryQuizStore) UpdateQuiz(ctx context.Context, id int64, in QuizInput) (game.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.quizzes[id]; !ok {
		return game.Quiz{}, ErrQuizNotFound
	}
	if s.questionTaken(in.Question, id) {
		return game.Quiz{}, ErrDuplicateQuestion
	}

	q := game.Quiz{ID: id, Question: in.Question, Answer: in.Answer}
	s.quizzes[id] = q
	return q, nil
}

func (s *MemoryQuizStore) DeleteQuiz(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.quizzes[id]; !ok {
		return ErrQuizNotFound
	}
	delete(s.quizzes, id)
	return nil
}

// questionTaken must be called with mu held.
func (s *MemoryQuizStore) questionTaken(question string, exceptID int64) bool {
	for id, q := range s.quizzes {
		if id != exceptID && q.Question == question {
			return true
		}
	}
	return false
}
