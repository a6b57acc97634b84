package cmd

import (
	"fmt"
	"io"
	"strings"
)

// progressBar is a simple terminal progress bar.
type progressBar struct {
	total  int
	done   int
	width  int
	label  string
	writer io.Writer
}

// newProgressBar creates a progress bar for total steps.
func newProgressBar(total int, label string, writer io.Writer) *progressBar {
	return &progressBar{
		total:  total,
		width:  30,
		label:  label,
		writer: writer,
	}
}

// Set moves the bar to n completed steps, capped at total.
func (p *progressBar) Set(n int) {
	p.done = max(0, min(n, p.total))
	p.render()
}

// Finish completes the bar and ends the line. Empty bars print nothing.
func (p *progressBar) Finish() {
	if p.total <= 0 {
		return
	}
	p.done = p.total
	p.render()
	fmt.Fprintln(p.writer)
}

// render redraws the bar in place using a carriage return.
func (p *progressBar) render() {
	if p.total <= 0 {
		return
	}

	filled := p.done * p.width / p.total
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", p.width-filled)
	fmt.Fprintf(p.writer, "\r%s [%s] %d/%d", p.label, bar, p.done, p.total)
}
