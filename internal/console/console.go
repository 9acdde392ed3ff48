package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
)

var (
	ErrClosed     = errors.New("input closed")
	ErrPromptBusy = errors.New("another prompt is pending")
)

type line struct {
	text string
	err  error
}

// Console asks questions on out and reads answers from in, one line each.
// Only one Ask may be pending at a time.
type Console struct {
	in  io.Reader
	out io.Writer

	once  sync.Once
	lines chan line
	busy  atomic.Bool
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: in, out: out}
}

func (c *Console) start() {
	c.once.Do(func() {
		c.lines = make(chan line)
		go c.readLoop()
	})
}

// readLoop hands lines over unbuffered, so a line nobody asked for stays
// with the reader until the next Ask.
func (c *Console) readLoop() {
	defer close(c.lines)

	sc := bufio.NewScanner(c.in)
	for sc.Scan() {
		c.lines <- line{text: sc.Text()}
	}
	if err := sc.Err(); err != nil {
		c.lines <- line{err: err}
	}
}

// Ask writes prompt and waits for the next input line, returned trimmed.
// It returns ErrClosed at end of input and ctx.Err() when ctx is done first.
func (c *Console) Ask(ctx context.Context, prompt string) (string, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return "", ErrPromptBusy
	}
	defer c.busy.Store(false)

	c.start()

	if _, err := io.WriteString(c.out, prompt); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-c.lines:
		if !ok {
			return "", ErrClosed
		}
		if l.err != nil {
			return "", fmt.Errorf("read input: %w", l.err)
		}
		return strings.TrimSpace(l.text), nil
	}
}
