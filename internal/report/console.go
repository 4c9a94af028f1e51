// internal/report/console.go
package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mwiater/suitebench/internal/metrics"
	"github.com/mwiater/suitebench/internal/util"
)

// EmptyNotice is printed instead of a table when there is nothing to show.
const EmptyNotice = "No benchmark results to report."

const (
	// maxNameRunes caps the name column; longer names are cut with an
	// ellipsis. Every built-in operation name fits.
	maxNameRunes = 60
	numberWidth  = 12
)

// Console renders a bordered table. The zero value styles for the
// process's stdout; NewConsole styles for a specific destination.
type Console struct {
	renderer *lipgloss.Renderer
}

// NewConsole returns a console reporter whose colours match what w
// supports. A writer that is not a terminal gets no escape sequences.
func NewConsole(w io.Writer) Console {
	return Console{renderer: lipgloss.NewRenderer(w)}
}

type consoleStyles struct {
	title, header, cell, border lipgloss.Style
}

func (c Console) styles() consoleStyles {
	r := c.renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return consoleStyles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		header: r.NewStyle().Bold(true).Padding(0, 1),
		cell:   r.NewStyle().Padding(0, 1),
		border: r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// nameColumnWidth sizes the name column to the longest name in rows,
// padding included.
func nameColumnWidth(rows []row) int {
	longest := utf8.RuneCountInString("Benchmark")
	for _, r := range rows {
		if n := utf8.RuneCountInString(r.name); n > longest {
			longest = n
		}
	}
	if longest > maxNameRunes {
		longest = maxNameRunes
	}
	return longest + 2
}

func (c Console) Render(set *metrics.ResultSet) (string, error) {
	rows, err := rowsOf(set)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return EmptyNotice + "\n", nil
	}

	var showDev, showPeak bool
	for _, r := range rows {
		showDev = showDev || r.hasDev
		showPeak = showPeak || r.hasPeak
	}

	headers := []string{"Benchmark", "Mean(ms)", "Min(ms)", "Max(ms)"}
	if showDev {
		headers = append(headers, "Stdev(ms)")
	}
	if showPeak {
		headers = append(headers, "Peak Mem")
	}

	st := c.styles()
	nameWidth := nameColumnWidth(rows)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.border).
		Headers(headers...).
		StyleFunc(func(rowIdx, col int) lipgloss.Style {
			style := st.cell
			if rowIdx == table.HeaderRow {
				style = st.header
			}
			if col == 0 {
				return style.Width(nameWidth)
			}
			return style.Width(numberWidth).Align(lipgloss.Right)
		})

	for _, r := range rows {
		cells := []string{
			util.TruncateRunes(r.name, maxNameRunes-1),
			fmt.Sprintf("%.3f", r.mean),
			fmt.Sprintf("%.3f", r.min),
			fmt.Sprintf("%.3f", r.max),
		}
		if showDev {
			if r.hasDev {
				cells = append(cells, fmt.Sprintf("%.3f", r.stdev))
			} else {
				cells = append(cells, "-")
			}
		}
		if showPeak {
			if r.hasPeak {
				cells = append(cells, formatKB(r.peak))
			} else {
				cells = append(cells, "N/A")
			}
		}
		t.Row(cells...)
	}

	var b strings.Builder
	b.WriteString(st.title.Render("Benchmark Results"))
	b.WriteString("\n")
	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String(), nil
}

func formatKB(bytes uint64) string {
	return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
}
