package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lugarol/P4-Quiz/internal/app"
	"github.com/spf13/cobra"
)

func main() {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := app.Config{
		StoreDriver:   getenv("QUIZ_STORE", app.StoreMemory),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       int(getenvInt("REDIS_DB", 0)),
		SeedFile:      os.Getenv("QUIZ_SEED_FILE"),

		LogLevel: getenv("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),

		NoColor:    os.Getenv("NO_COLOR") != "",
		RandomSeed: getenvInt("QUIZ_RANDOM_SEED", 0),
	}

	root := &cobra.Command{
		Use:   "quizzer",
		Short: "Practice question/answer quizzes from the terminal",
		Long: `quizzer keeps a collection of question/answer quizzes and lets you
list, add, edit, delete and test them from an interactive prompt.

Type 'play' at the prompt to be asked every quiz in random order until
you miss one.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cfg, func(a *app.App) error {
				return a.Run(cmd.Context())
			})
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&cfg.StoreDriver, "store", "s", cfg.StoreDriver, "quiz store: memory, postgres or redis")
	flags.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "postgres connection string")
	flags.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "redis address")
	flags.IntVar(&cfg.RedisDB, "redis-db", cfg.RedisDB, "redis database number")
	flags.StringVar(&cfg.SeedFile, "seed-file", cfg.SeedFile, "CSV file of question,answer used to fill an empty store")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flags.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "file to write logs to (empty disables logging)")
	flags.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")
	flags.Int64Var(&cfg.RandomSeed, "random-seed", cfg.RandomSeed, "seed for the question order (0 picks one)")

	root.AddCommand(newPlayCommand(&cfg))
	return root
}

func newPlayCommand(cfg *app.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Run a single examination and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*cfg, func(a *app.App) error {
				_, err := a.Play(cmd.Context())
				return err
			})
		},
	}
}

func withApp(cfg app.Config, fn func(*app.App) error) error {
	a, err := app.New(cfg, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, "quizzer:", err)
		return err
	}
	defer a.Close()

	if err := fn(a); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "quizzer:", err)
		return err
	}
	return nil
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int64) int64 {
	v, err := strconv.ParseInt(os.Getenv(k), 10, 64)
	if err != nil {
		return def
	}
	return v
}
