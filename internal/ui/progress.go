package ui

import (
	"fmt"
	"io"
)

// Progress prints numbered completion lines as packages are pinned.
type Progress struct {
	out io.Writer
	n   int
}

// NewProgress creates a progress printer.
func NewProgress(out io.Writer) *Progress {
	return &Progress{out: out}
}

// Done marks one step as completed and prints it with a running count.
func (p *Progress) Done(label string) {
	p.n++
	_, _ = fmt.Fprintf(p.out, "[%d] %s\n", p.n, label)
}

// Log prints an informational message within the progress context.
func (p *Progress) Log(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}
