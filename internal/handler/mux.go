package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrQuit           = errors.New("quit")
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingID      = errors.New("missing id")
	ErrInvalidID      = errors.New("id is not a number")
)

type unknownCommandError struct {
	name string
}

func (e *unknownCommandError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownCommand, e.name)
}

func (e *unknownCommandError) Is(target error) bool {
	return target == ErrUnknownCommand
}

type HandlerFunc func(ctx context.Context, args []string) error

type command struct {
	names   []string
	usage   string
	summary string
	fn      HandlerFunc
}

// Mux dispatches a command line to the handler registered for its first word.
type Mux struct {
	byName map[string]*command
	order  []*command
}

func NewMux() *Mux {
	return &Mux{byName: make(map[string]*command)}
}

func (m *Mux) Handle(names []string, usage, summary string, fn HandlerFunc) {
	cmd := &command{names: names, usage: usage, summary: summary, fn: fn}
	for _, n := range names {
		m.byName[n] = cmd
	}
	m.order = append(m.order, cmd)
}

func (m *Mux) Dispatch(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	name := strings.ToLower(fields[0])
	cmd, ok := m.byName[name]
	if !ok {
		return &unknownCommandError{name: fields[0]}
	}
	return cmd.fn(ctx, fields[1:])
}

// Help lists the commands in registration order.
func (m *Mux) Help() []string {
	out := make([]string, 0, len(m.order))
	for _, c := range m.order {
		use := strings.Join(c.names, "|")
		if c.usage != "" {
			use += " " + c.usage
		}
		out = append(out, fmt.Sprintf("  %s - %s", use, c.summary))
	}
	return out
}
