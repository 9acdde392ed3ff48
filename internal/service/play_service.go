package service

import (
	"context"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"github.com/lugarol/P4-Quiz/internal/game"
	"github.com/lugarol/P4-Quiz/internal/storage"
	"go.uber.org/zap"
)

type PlayConfig struct {
	// RandomSeed makes the draw order reproducible. Zero seeds from the clock.
	RandomSeed int64
}

type PlayService interface {
	// Play runs one examination session. Sessions must not overlap.
	Play(ctx context.Context) (game.Result, error)
	BestScore() int
}

type playService struct {
	qs     storage.QuizStore
	prompt game.Prompter
	out    game.Sink
	log    *zap.Logger
	picker game.Picker

	mu   sync.Mutex
	best int
}

func NewPlayService(qs storage.QuizStore, prompt game.Prompter, out game.Sink, cfg PlayConfig, log *zap.Logger) PlayService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &playService{qs: qs, prompt: prompt, out: out, log: log}
	if cfg.RandomSeed != 0 {
		s.picker = rand.New(rand.NewSource(cfg.RandomSeed))
	}
	return s
}

func (s *playService) Play(ctx context.Context) (game.Result, error) {
	log := s.log.With(zap.String("session_id", uuid.NewString()))
	log.Info("play session started")

	opts := []game.Option{game.WithLogger(log)}
	if s.picker != nil {
		opts = append(opts, game.WithPicker(s.picker))
	}
	engine := game.NewEngine(s.qs, s.prompt, s.out, opts...)

	res, err := engine.RunSession(ctx)
	fields := []zap.Field{
		zap.Int("score", res.Score),
		zap.Int("asked", res.Asked),
		zap.Int("total", res.Total),
		zap.String("outcome", string(res.Outcome)),
	}
	if err != nil {
		log.Warn("play session aborted", append(fields, zap.Error(err))...)
		return res, err
	}

	s.mu.Lock()
	if res.Score > s.best {
		s.best = res.Score
	}
	s.mu.Unlock()

	log.Info("play session finished", fields...)
	return res, nil
}

func (s *playService) BestScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.best
}
