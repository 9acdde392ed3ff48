package game

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	msgNothingLeft = "No hay nada más que preguntar."
	msgTally       = "Fin del examen. Aciertos:"
)

type QuizSource interface {
	ListQuizzes(ctx context.Context) ([]Quiz, error)
}

// Prompter asks one question at a time and returns the trimmed answer.
type Prompter interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

type Sink interface {
	Println(line string) error
	Emphasize(value string, style Style) error
}

// Picker returns a uniformly distributed int in [0, n).
type Picker interface {
	Intn(n int) int
}

type Option func(*Engine)

func WithPicker(p Picker) Option {
	return func(e *Engine) { e.pick = p }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// Engine runs play sessions. It keeps no state between sessions, all of it
// lives in the session created by RunSession.
type Engine struct {
	src    QuizSource
	prompt Prompter
	out    Sink
	pick   Picker
	log    *zap.Logger
}

func NewEngine(src QuizSource, prompt Prompter, out Sink, opts ...Option) *Engine {
	e := &Engine{
		src:    src,
		prompt: prompt,
		out:    out,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.pick == nil {
		e.pick = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return e
}

type session struct {
	*Engine

	pool  *pool
	score int
	asked int
	phase Phase
}

// RunSession plays until the pool is exhausted or an answer is wrong, then
// prints the tally. A failing collaborator aborts the session: no tally is
// printed and the returned error wraps ErrSessionAborted.
func (e *Engine) RunSession(ctx context.Context) (Result, error) {
	quizzes, err := e.src.ListQuizzes(ctx)
	if err != nil {
		return Result{Outcome: PhaseAborted}, fmt.Errorf("%w: list quizzes: %w", ErrSessionAborted, err)
	}

	s := &session{Engine: e, pool: newPool(quizzes), phase: PhaseRunning}
	for s.phase == PhaseRunning {
		if err := s.step(ctx); err != nil {
			s.phase = PhaseAborted
			return s.result(len(quizzes)), fmt.Errorf("%w: %w", ErrSessionAborted, err)
		}
	}

	res := s.result(len(quizzes))
	if err := s.tally(); err != nil {
		res.Outcome = PhaseAborted
		return res, fmt.Errorf("%w: %w", ErrSessionAborted, err)
	}
	s.phase = PhaseDone
	return res, nil
}

func (s *session) step(ctx context.Context) error {
	if s.pool.Len() == 0 {
		s.phase = PhaseExhausted
		return s.out.Println(msgNothingLeft)
	}

	q := s.pool.Take(s.pick.Intn(s.pool.Len()))
	s.asked++

	answer, err := s.prompt.Ask(ctx, QuestionPrompt(q.Question))
	if err != nil {
		return fmt.Errorf("ask quiz %d: %w", q.ID, err)
	}

	if !Matches(answer, q.Answer) {
		s.phase = PhaseFailed
		s.log.Debug("wrong answer", zap.Int64("quiz_id", q.ID), zap.Int("score", s.score))
		if err := s.out.Emphasize("INCORRECTO.", StyleFailure); err != nil {
			return err
		}
		return s.out.Println("La respuesta correcta era: " + q.Answer)
	}

	s.score++
	s.log.Debug("right answer", zap.Int64("quiz_id", q.ID), zap.Int("score", s.score))
	return s.out.Emphasize(fmt.Sprintf("CORRECTO - Lleva %d %s.", s.score, hitsLabel(s.score)), StyleSuccess)
}

func (s *session) tally() error {
	if err := s.out.Println(msgTally); err != nil {
		return err
	}
	return s.out.Emphasize(strconv.Itoa(s.score), StyleScore)
}

func (s *session) result(total int) Result {
	return Result{
		Score:   s.score,
		Asked:   s.asked,
		Total:   total,
		Outcome: s.phase,
	}
}

// QuestionPrompt formats a quiz question for asking.
func QuestionPrompt(question string) string {
	question = strings.TrimSpace(question)
	if strings.HasSuffix(question, "?") {
		return question + " "
	}
	return question + "? "
}

func hitsLabel(n int) string {
	if n == 1 {
		return "acierto"
	}
	return "aciertos"
}
