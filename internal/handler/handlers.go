package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/lugarol/P4-Quiz/internal/game"
	"github.com/lugarol/P4-Quiz/internal/service"
	"github.com/lugarol/P4-Quiz/internal/storage"
	"go.uber.org/zap"
)

const storeTimeout = 5 * time.Second

type Output interface {
	Println(line string) error
	Printf(format string, args ...any) error
	Emphasize(value string, style game.Style) error
	Sprint(value string, style game.Style) string
}

type handlers struct {
	quizzes service.QuizService
	play    service.PlayService
	prompt  game.Prompter
	out     Output
	log     *zap.Logger
	mux     *Mux
}

func RegisterHandlers(mux *Mux, quizzes service.QuizService, play service.PlayService, prompt game.Prompter, out Output, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	h := &handlers{quizzes: quizzes, play: play, prompt: prompt, out: out, log: log, mux: mux}

	mux.Handle([]string{"h", "help"}, "", "Muestra esta ayuda.", h.help)
	mux.Handle([]string{"list"}, "", "Listar los quizzes existentes.", h.list)
	mux.Handle([]string{"show"}, "<id>", "Muestra la pregunta y la respuesta del quiz indicado.", h.show)
	mux.Handle([]string{"add"}, "", "Añadir un nuevo quiz interactivamente.", h.add)
	mux.Handle([]string{"delete"}, "<id>", "Borrar el quiz indicado.", h.delete)
	mux.Handle([]string{"edit"}, "<id>", "Editar el quiz indicado.", h.edit)
	mux.Handle([]string{"test"}, "<id>", "Probar el quiz indicado.", h.test)
	mux.Handle([]string{"p", "play"}, "", "Jugar a preguntar aleatoriamente todos los quizzes.", h.playGame)
	mux.Handle([]string{"credits"}, "", "Créditos.", h.credits)
	mux.Handle([]string{"q", "quit"}, "", "Salir del programa.", h.quit)
}

func (h *handlers) help(ctx context.Context, args []string) error {
	if err := h.out.Println("Comandos:"); err != nil {
		return err
	}
	for _, line := range h.mux.Help() {
		if err := h.out.Println(line); err != nil {
			return err
		}
	}
	return nil
}

func (h *handlers) list(ctx context.Context, args []string) error {
	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	quizzes, err := h.quizzes.ListQuizzes(sctx)
	if err != nil {
		return err
	}
	if len(quizzes) == 0 {
		return h.out.Println("No hay quizzes.")
	}
	for _, q := range quizzes {
		if err := h.out.Printf("  [%s]:  %s\n", h.id(q.ID), q.Question); err != nil {
			return err
		}
	}
	return nil
}

func (h *handlers) show(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	q, err := h.quizzes.GetQuiz(sctx, id)
	if err != nil {
		return err
	}
	return h.out.Println(h.describe(q))
}

func (h *handlers) add(ctx context.Context, args []string) error {
	question, err := h.prompt.Ask(ctx, "Introduzca una pregunta: ")
	if err != nil {
		return err
	}
	answer, err := h.prompt.Ask(ctx, "Introduzca la respuesta: ")
	if err != nil {
		return err
	}

	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	q, err := h.quizzes.CreateQuiz(sctx, storage.QuizInput{Question: question, Answer: answer})
	if err != nil {
		return err
	}
	h.log.Info("quiz created", zap.Int64("quiz_id", q.ID))
	return h.out.Println(fmt.Sprintf(" %s: %s", h.out.Sprint("Se ha añadido", game.StyleHighlight), h.describe(q)))
}

func (h *handlers) delete(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := h.quizzes.DeleteQuiz(sctx, id); err != nil {
		return err
	}
	h.log.Info("quiz deleted", zap.Int64("quiz_id", id))
	return h.out.Println(fmt.Sprintf(" Se ha borrado el quiz [%s].", h.id(id)))
}

// edit keeps the current question or answer when the user enters an empty line.
func (h *handlers) edit(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	gctx, cancel := context.WithTimeout(ctx, storeTimeout)
	current, err := h.quizzes.GetQuiz(gctx, id)
	cancel()
	if err != nil {
		return err
	}

	question, err := h.prompt.Ask(ctx, fmt.Sprintf("Introduzca la pregunta [%s]: ", current.Question))
	if err != nil {
		return err
	}
	if question == "" {
		question = current.Question
	}
	answer, err := h.prompt.Ask(ctx, fmt.Sprintf("Introduzca la respuesta [%s]: ", current.Answer))
	if err != nil {
		return err
	}
	if answer == "" {
		answer = current.Answer
	}

	uctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	q, err := h.quizzes.UpdateQuiz(uctx, id, storage.QuizInput{Question: question, Answer: answer})
	if err != nil {
		return err
	}
	h.log.Info("quiz updated", zap.Int64("quiz_id", q.ID))
	return h.out.Println(fmt.Sprintf(" Se ha cambiado el quiz %s", h.describe(q)))
}

func (h *handlers) test(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	q, err := h.quizzes.GetQuiz(sctx, id)
	cancel()
	if err != nil {
		return err
	}

	answer, err := h.prompt.Ask(ctx, game.QuestionPrompt(q.Question))
	if err != nil {
		return err
	}

	if game.Matches(answer, q.Answer) {
		if err := h.out.Println("Su respuesta es correcta."); err != nil {
			return err
		}
		return h.out.Emphasize("Correcta", game.StyleSuccess)
	}
	if err := h.out.Println("Su respuesta es incorrecta."); err != nil {
		return err
	}
	return h.out.Emphasize("Incorrecta", game.StyleFailure)
}

func (h *handlers) playGame(ctx context.Context, args []string) error {
	res, err := h.play.Play(ctx)
	if err != nil {
		return err
	}
	if res.Score > 0 && res.Score == h.play.BestScore() {
		return h.out.Println(fmt.Sprintf("Mejor puntuación hasta ahora: %d", res.Score))
	}
	return nil
}

func (h *handlers) credits(ctx context.Context, args []string) error {
	if err := h.out.Println("Autor de la práctica:"); err != nil {
		return err
	}
	return h.out.Emphasize("lugarol", game.StyleSuccess)
}

func (h *handlers) quit(ctx context.Context, args []string) error {
	return ErrQuit
}

func (h *handlers) id(id int64) string {
	return h.out.Sprint(strconv.FormatInt(id, 10), game.StyleHighlight)
}

func (h *handlers) describe(q game.Quiz) string {
	return fmt.Sprintf("[%s]:  %s %s %s", h.id(q.ID), q.Question, h.out.Sprint("=>", game.StyleHighlight), q.Answer)
}

func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, ErrMissingID
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, args[0])
	}
	return id, nil
}

// userMessage turns a handler error into the line shown to the user.
func userMessage(err error) string {
	var unknown *unknownCommandError
	switch {
	case errors.As(err, &unknown):
		return fmt.Sprintf("Comando desconocido: '%s'. Use 'help' para ver todos los comandos disponibles.", unknown.name)
	case errors.Is(err, ErrMissingID):
		return "Falta el parámetro id."
	case errors.Is(err, ErrInvalidID), errors.Is(err, service.ErrInvalidID):
		return "El valor del parámetro id no es válido."
	case errors.Is(err, storage.ErrQuizNotFound):
		return "No existe un quiz asociado a ese id."
	case errors.Is(err, storage.ErrDuplicateQuestion):
		return "Ya existe un quiz con esa pregunta."
	case errors.Is(err, service.ErrInvalidQuiz):
		return "La pregunta y la respuesta no pueden estar vacías."
	case errors.Is(err, game.ErrSessionAborted):
		return "No se pudo completar el examen: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}
