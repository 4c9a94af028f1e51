// internal/cli/progress.go
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/mattn/go-isatty"

	"github.com/mwiater/suitebench/internal/metrics"
)

// progressObserver draws one bar per operation on w. It renders statically
// with ViewAs, so no terminal program or animation goroutine is involved.
type progressObserver struct {
	w          io.Writer
	bar        progress.Model
	iterations int
}

func newProgressObserver(w io.Writer) *progressObserver {
	return &progressObserver{
		w:   w,
		bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *progressObserver) OperationStarted(group, operation string, iterations int) {
	p.iterations = iterations
	fmt.Fprintf(p.w, "\r%s  %s/%s", p.bar.ViewAs(0), group, operation)
}

func (p *progressObserver) IterationFinished(group, operation string, iteration int, _ metrics.Sample) {
	percent := 1.0
	if p.iterations > 0 {
		percent = float64(iteration) / float64(p.iterations)
	}
	fmt.Fprintf(p.w, "\r%s  %s/%s", p.bar.ViewAs(percent), group, operation)
	if iteration >= p.iterations {
		fmt.Fprintln(p.w)
	}
}
