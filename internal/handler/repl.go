package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/lugarol/P4-Quiz/internal/console"
	"github.com/lugarol/P4-Quiz/internal/game"
	"go.uber.org/zap"
)

const commandPrompt = "quiz > "

type Repl struct {
	mux    *Mux
	prompt game.Prompter
	out    Output
	log    *zap.Logger
}

func NewRepl(mux *Mux, prompt game.Prompter, out Output, log *zap.Logger) *Repl {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repl{mux: mux, prompt: prompt, out: out, log: log}
}

// Run reads and executes commands until quit, end of input or ctx is done.
// Command errors are shown to the user and the loop goes on.
func (r *Repl) Run(ctx context.Context) error {
	for {
		line, err := r.prompt.Ask(ctx, commandPrompt)
		if err != nil {
			if inputGone(ctx, err) {
				r.log.Info("input closed, leaving")
				return nil
			}
			return err
		}

		err = r.mux.Dispatch(ctx, line)
		switch {
		case err == nil:
		case errors.Is(err, ErrQuit):
			return r.out.Println("Adiós!")
		case inputGone(ctx, err):
			r.log.Info("input closed during command", zap.String("command", commandName(line)))
			return nil
		default:
			r.log.Warn("command failed", zap.String("command", commandName(line)), zap.Error(err))
			if err := r.out.Emphasize(userMessage(err), game.StyleFailure); err != nil {
				return err
			}
		}
	}
}

func inputGone(ctx context.Context, err error) bool {
	return errors.Is(err, console.ErrClosed) || ctx.Err() != nil
}

func commandName(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}
