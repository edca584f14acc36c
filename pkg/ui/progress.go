package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"
)

const (
	defaultBarWidth = 30
	maxLabelWidth   = 60
)

// Progress receives byte counts for a single file
type Progress interface {
	Update(written int64)
	Done()
}

// Reporter creates per-file progress bars on a writer.
// Bars are redrawn in place only when the writer is a terminal; otherwise a
// single summary line is printed when the file completes.
type Reporter struct {
	out         io.Writer
	interactive bool
	quiet       bool
	width       int
}

// NewReporter creates a reporter writing to w
func NewReporter(w io.Writer, quiet bool) *Reporter {
	r := &Reporter{out: w, quiet: quiet, width: defaultBarWidth}

	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		r.interactive = true
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			// leave room for the label and the byte counts
			if w := cols - maxLabelWidth - 30; w > 10 && w < defaultBarWidth {
				r.width = w
			}
		}
	}
	return r
}

// Track starts a progress bar for one file of total bytes
func (r *Reporter) Track(label string, total int64) Progress {
	if r.quiet {
		return nopProgress{}
	}
	return &ByteProgress{
		out:         r.out,
		bar:         progress.New(progress.WithDefaultGradient(), progress.WithWidth(r.width)),
		label:       truncate(label, maxLabelWidth),
		total:       total,
		interactive: r.interactive,
	}
}

// ByteProgress renders bytes written out of a known total
type ByteProgress struct {
	out         io.Writer
	bar         progress.Model
	label       string
	total       int64
	written     int64
	interactive bool
}

// Update records the bytes written so far and redraws the bar
func (p *ByteProgress) Update(written int64) {
	p.written = written
	if p.interactive {
		fmt.Fprint(p.out, "\r"+p.render())
	}
}

// Done finishes the bar and moves to a new line
func (p *ByteProgress) Done() {
	if p.interactive {
		fmt.Fprint(p.out, "\r"+p.render()+"\n")
		return
	}
	fmt.Fprintln(p.out, p.render())
}

// Percent returns the completed fraction in [0, 1]
func (p *ByteProgress) Percent() float64 {
	if p.total <= 0 {
		return 1
	}
	pct := float64(p.written) / float64(p.total)
	if pct > 1 {
		pct = 1
	}
	return pct
}

func (p *ByteProgress) render() string {
	return fmt.Sprintf("%s %s %s/%s",
		dimStyle.Render(p.label),
		p.bar.ViewAs(p.Percent()),
		humanize.Bytes(uint64(p.written)),
		humanize.Bytes(uint64(p.total)))
}

type nopProgress struct{}

func (nopProgress) Update(int64) {}
func (nopProgress) Done()        {}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
