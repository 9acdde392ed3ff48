package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lugarol/P4-Quiz/internal/game"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, Config{StoreDriver: StoreMemory}.Validate())
	require.NoError(t, Config{StoreDriver: StorePostgres, DatabaseURL: "postgres://localhost/quiz"}.Validate())
	require.NoError(t, Config{StoreDriver: StoreRedis, RedisAddr: "localhost:6379"}.Validate())

	require.ErrorIs(t, Config{StoreDriver: "sqlite"}.Validate(), ErrInvalidConfig)
	require.ErrorIs(t, Config{StoreDriver: StorePostgres}.Validate(), ErrInvalidConfig)
	require.ErrorIs(t, Config{StoreDriver: StoreRedis}.Validate(), ErrInvalidConfig)
	require.ErrorIs(t, Config{StoreDriver: StoreMemory, RedisDB: -1}.Validate(), ErrInvalidConfig)
}

func TestApp_RunWithDefaultQuizzes(t *testing.T) {
	var out bytes.Buffer
	a, err := New(Config{StoreDriver: StoreMemory, NoColor: true}, strings.NewReader("list\nquit\n"), &out)
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Run(context.Background()))
	require.Contains(t, out.String(), "[1]:  Capital de Italia")
	require.Contains(t, out.String(), "[4]:  Capital de Portugal")
}

func TestApp_PlayFromSeedFile(t *testing.T) {
	seed := filepath.Join(t.TempDir(), "quizzes.csv")
	require.NoError(t, os.WriteFile(seed, []byte("Capital de Grecia,Atenas\n"), 0o644))

	logFile := filepath.Join(t.TempDir(), "quizzer.log")

	var out bytes.Buffer
	a, err := New(Config{
		StoreDriver: StoreMemory,
		SeedFile:    seed,
		LogFile:     logFile,
		LogLevel:    "debug",
		NoColor:     true,
		RandomSeed:  3,
	}, strings.NewReader(" ATENAS \n"), &out)
	require.NoError(t, err)
	defer a.Close()

	res, err := a.Play(context.Background())
	require.NoError(t, err)
	require.Equal(t, game.Result{Score: 1, Asked: 1, Total: 1, Outcome: game.PhaseExhausted}, res)
	require.Contains(t, out.String(), "Fin del examen. Aciertos:\n1\n")

	a.Close()
	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "play session finished")
}

func TestApp_New_Errors(t *testing.T) {
	_, err := New(Config{StoreDriver: "sqlite"}, strings.NewReader(""), &bytes.Buffer{})
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(Config{StoreDriver: StoreMemory, SeedFile: filepath.Join(t.TempDir(), "missing.csv")}, strings.NewReader(""), &bytes.Buffer{})
	require.Error(t, err)
}
