package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/lugarol/P4-Quiz/internal/game"
)

type Printer struct {
	out    io.Writer
	styles map[game.Style]*color.Color
}

func NewPrinter(out io.Writer, noColor bool) *Printer {
	styles := map[game.Style]*color.Color{
		game.StyleSuccess:   color.New(color.FgGreen),
		game.StyleFailure:   color.New(color.FgRed),
		game.StyleHighlight: color.New(color.FgMagenta, color.Bold),
		game.StyleScore:     color.New(color.FgYellow, color.Bold),
	}
	if noColor {
		for _, c := range styles {
			c.DisableColor()
		}
	}
	return &Printer{out: out, styles: styles}
}

func (p *Printer) Println(line string) error {
	_, err := fmt.Fprintln(p.out, line)
	return err
}

func (p *Printer) Printf(format string, args ...any) error {
	_, err := fmt.Fprintf(p.out, format, args...)
	return err
}

func (p *Printer) Emphasize(value string, style game.Style) error {
	c, ok := p.styles[style]
	if !ok {
		return p.Println(value)
	}
	_, err := c.Fprintln(p.out, value)
	return err
}

// Sprint colours value for use inside a larger line.
func (p *Printer) Sprint(value string, style game.Style) string {
	c, ok := p.styles[style]
	if !ok {
		return value
	}
	return c.Sprint(value)
}
