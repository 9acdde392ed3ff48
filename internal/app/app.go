package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lugarol/P4-Quiz/internal/console"
	"github.com/lugarol/P4-Quiz/internal/game"
	"github.com/lugarol/P4-Quiz/internal/handler"
	"github.com/lugarol/P4-Quiz/internal/logger"
	"github.com/lugarol/P4-Quiz/internal/service"
	"github.com/lugarol/P4-Quiz/internal/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const connectTimeout = 5 * time.Second

type App struct {
	cfg   Config
	log   *zap.Logger
	db    *pgxpool.Pool
	redis *redis.Client

	play service.PlayService
	repl *handler.Repl
}

// New opens the configured quiz store, seeds it when empty and wires the
// console on in/out.
func New(cfg Config, in io.Reader, out io.Writer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, log: l}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	qs, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	if err := a.seed(ctx, qs); err != nil {
		a.Close()
		return nil, err
	}

	con := console.New(in, out)
	printer := console.NewPrinter(out, cfg.NoColor)

	quizSvc := service.NewQuizService(qs)
	a.play = service.NewPlayService(qs, con, printer, service.PlayConfig{RandomSeed: cfg.RandomSeed}, l)

	mux := handler.NewMux()
	handler.RegisterHandlers(mux, quizSvc, a.play, con, printer, l)
	a.repl = handler.NewRepl(mux, con, printer, l)

	return a, nil
}

func (a *App) openStore(ctx context.Context) (storage.QuizStore, error) {
	switch a.cfg.StoreDriver {
	case StorePostgres:
		db, err := pgxpool.New(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("unable to connect to database: %w", err)
		}
		a.db = db
		if err := db.Ping(ctx); err != nil {
			return nil, fmt.Errorf("unable to ping database: %w", err)
		}
		qs := storage.NewPostgresQuizStore(db)
		if err := qs.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return qs, nil

	case StoreRedis:
		a.redis = redis.NewClient(&redis.Options{
			Addr:     a.cfg.RedisAddr,
			Password: a.cfg.RedisPassword,
			DB:       a.cfg.RedisDB,
		})
		if err := a.redis.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		return storage.NewRedisQuizStore(a.redis, ""), nil

	default:
		return storage.NewMemoryQuizStore(), nil
	}
}

func (a *App) seed(ctx context.Context, qs storage.QuizStore) error {
	inputs := storage.DefaultQuizzes()
	if a.cfg.SeedFile != "" {
		var err error
		if inputs, err = storage.LoadSeedFile(a.cfg.SeedFile); err != nil {
			return err
		}
	}

	n, err := storage.Seed(ctx, qs, inputs)
	if err != nil {
		return fmt.Errorf("failed to seed quizzes: %w", err)
	}
	if n > 0 {
		a.log.Info("quiz store seeded", zap.Int("count", n), zap.String("store", a.cfg.StoreDriver))
	}
	return nil
}

// Run starts the interactive command loop.
func (a *App) Run(ctx context.Context) error {
	a.log.Info("quizzer started",
		zap.String("store", a.cfg.StoreDriver),
		zap.String("log_level", a.cfg.LogLevel),
	)
	return a.repl.Run(ctx)
}

// Play runs a single examination session.
func (a *App) Play(ctx context.Context) (game.Result, error) {
	return a.play.Play(ctx)
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}
