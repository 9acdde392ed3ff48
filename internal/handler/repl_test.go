package handler

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/lugarol/P4-Quiz/internal/console"
	"github.com/lugarol/P4-Quiz/internal/service"
	"github.com/lugarol/P4-Quiz/internal/storage"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// runScript feeds input to a REPL over store and returns everything printed.
func runScript(t *testing.T, store storage.QuizStore, input string) string {
	t.Helper()

	var out bytes.Buffer
	con := console.New(strings.NewReader(input), &out)
	printer := console.NewPrinter(&out, true)

	quizzes := service.NewQuizService(store)
	play := service.NewPlayService(store, con, printer, service.PlayConfig{RandomSeed: 1}, zap.NewNop())

	mux := NewMux()
	RegisterHandlers(mux, quizzes, play, con, printer, zap.NewNop())

	err := NewRepl(mux, con, printer, zap.NewNop()).Run(context.Background())
	require.NoError(t, err)
	return out.String()
}

func storeWith(t *testing.T, inputs ...storage.QuizInput) *storage.MemoryQuizStore {
	t.Helper()

	s := storage.NewMemoryQuizStore()
	for _, in := range inputs {
		_, err := s.CreateQuiz(context.Background(), in)
		require.NoError(t, err)
	}
	return s
}

func TestRepl_HelpAndQuit(t *testing.T) {
	out := runScript(t, storeWith(t), "help\nq\n")

	require.Contains(t, out, "Comandos:")
	require.Contains(t, out, "  show <id> - Muestra la pregunta y la respuesta del quiz indicado.")
	require.Contains(t, out, "  p|play - Jugar a preguntar aleatoriamente todos los quizzes.")
	require.True(t, strings.HasSuffix(out, "Adiós!\n"))
}

func TestRepl_ListAndShow(t *testing.T) {
	store := storeWith(t,
		storage.QuizInput{Question: "Capital de Italia", Answer: "Roma"},
		storage.QuizInput{Question: "Capital de Francia", Answer: "París"},
	)

	out := runScript(t, store, "list\nshow 2\nquit\n")

	require.Contains(t, out, "  [1]:  Capital de Italia\n")
	require.Contains(t, out, "  [2]:  Capital de Francia\n")
	require.Contains(t, out, "[2]:  Capital de Francia => París\n")
}

func TestRepl_ListEmpty(t *testing.T) {
	out := runScript(t, storeWith(t), "list\n")
	require.Contains(t, out, "No hay quizzes.")
}

func TestRepl_BadIDs(t *testing.T) {
	out := runScript(t, storeWith(t), "show\nshow abc\nshow 0\nshow 7\ndelete 7\n")

	require.Contains(t, out, "Falta el parámetro id.")
	require.Equal(t, 2, strings.Count(out, "El valor del parámetro id no es válido."))
	require.Equal(t, 2, strings.Count(out, "No existe un quiz asociado a ese id."))
}

func TestRepl_UnknownCommand(t *testing.T) {
	out := runScript(t, storeWith(t), "jugar\n")
	require.Contains(t, out, "Comando desconocido: 'jugar'.")
}

func TestRepl_AddEditDelete(t *testing.T) {
	store := storeWith(t)

	out := runScript(t, store, strings.Join([]string{
		"add",
		"  Capital de Grecia ",
		"Atenas",
		"add",
		"Capital de Grecia",
		"Esparta",
		"edit 1",
		"",
		"  atenas ",
		"show 1",
		"delete 1",
		"list",
		"quit",
	}, "\n")+"\n")

	require.Contains(t, out, "Se ha añadido: [1]:  Capital de Grecia => Atenas")
	require.Contains(t, out, "Ya existe un quiz con esa pregunta.")
	require.Contains(t, out, "Introduzca la pregunta [Capital de Grecia]: ")
	require.Contains(t, out, "Se ha cambiado el quiz [1]:  Capital de Grecia => atenas")
	require.Contains(t, out, "Se ha borrado el quiz [1].")
	require.Contains(t, out, "No hay quizzes.")

	_, err := store.GetQuiz(context.Background(), 1)
	require.ErrorIs(t, err, storage.ErrQuizNotFound)
}

func TestRepl_AddRejectsEmptyAnswer(t *testing.T) {
	out := runScript(t, storeWith(t), "add\nPregunta\n   \n")
	require.Contains(t, out, "La pregunta y la respuesta no pueden estar vacías.")
}

func TestRepl_Test(t *testing.T) {
	store := storeWith(t, storage.QuizInput{Question: "Capital de Francia", Answer: "París"})

	out := runScript(t, store, "test 1\n  PARÍS \ntest 1\nLyon\n")

	require.Contains(t, out, "Capital de Francia? ")
	require.Contains(t, out, "Su respuesta es correcta.\nCorrecta\n")
	require.Contains(t, out, "Su respuesta es incorrecta.\nIncorrecta\n")
}

func TestRepl_PlayAllCorrect(t *testing.T) {
	store := storeWith(t, storage.QuizInput{Question: "Capital de Italia", Answer: "Roma"})

	out := runScript(t, store, "play\nroma\nquit\n")

	require.Contains(t, out, "Capital de Italia? ")
	require.Contains(t, out, "CORRECTO - Lleva 1 acierto.\n")
	require.Contains(t, out, "No hay nada más que preguntar.\n")
	require.Contains(t, out, "Fin del examen. Aciertos:\n1\n")
	require.Contains(t, out, "Mejor puntuación hasta ahora: 1")
}

func TestRepl_PlayWrongAnswer(t *testing.T) {
	store := storeWith(t, storage.QuizInput{Question: "Capital de Italia", Answer: "Roma"})

	out := runScript(t, store, "p\nMilán\n")

	require.Contains(t, out, "INCORRECTO.\nLa respuesta correcta era: Roma\n")
	require.Contains(t, out, "Fin del examen. Aciertos:\n0\n")
	require.NotContains(t, out, "Mejor puntuación")
}

func TestRepl_PlayEmptyStore(t *testing.T) {
	out := runScript(t, storeWith(t), "play\n")

	require.Contains(t, out, "No hay nada más que preguntar.\nFin del examen. Aciertos:\n0\n")
}

func TestRepl_InputClosedDuringPlay(t *testing.T) {
	store := storeWith(t,
		storage.QuizInput{Question: "Capital de Italia", Answer: "Roma"},
		storage.QuizInput{Question: "Capital de Francia", Answer: "París"},
	)

	out := runScript(t, store, "play\n")

	require.NotContains(t, out, "Fin del examen")
	require.NotContains(t, out, "No se pudo completar")
	require.False(t, strings.HasSuffix(out, "Adiós!\n"))
}

func TestRepl_CancelledContext(t *testing.T) {
	pr, _ := io.Pipe()
	defer pr.Close()

	var out bytes.Buffer
	con := console.New(pr, &out)
	printer := console.NewPrinter(&out, true)
	mux := NewMux()
	RegisterHandlers(mux, service.NewQuizService(storage.NewMemoryQuizStore()), nil, con, printer, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, NewRepl(mux, con, printer, nil).Run(ctx))
	require.Equal(t, commandPrompt, out.String())
}

func TestRepl_Credits(t *testing.T) {
	out := runScript(t, storeWith(t), "credits\n")
	require.Contains(t, out, "Autor de la práctica:\nlugarol\n")
}
