package ui

import (
	"fmt"
	"io"
)

// Printer writes the lines shown before the interactive session starts.
// Lines carry a themed prefix; emoji fall back to bracket tags.
type Printer struct {
	out    io.Writer
	Colors *ColorConfig
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) Printer {
	return Printer{out: w, Colors: NewColorConfig()}
}

func (p Printer) line(emoji, tag string, color func(string) string, msg string) {
	prefix := tag
	if p.Colors.EmojiEnabled {
		prefix = emoji
	}
	fmt.Fprintln(p.out, color(prefix), msg)
}

// Info prints an informational line.
func (p Printer) Info(msg string) { p.line("ℹ", "[INFO]", p.Colors.Info, msg) }

// Warn prints a warning line.
func (p Printer) Warn(msg string) { p.line("!", "[WARN]", p.Colors.Warning, msg) }
