package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/tasks/internal/model"
)

const maxTitleWidth = 80

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel draws a framed box using the current theme.
func Panel(w io.Writer, lines []string) {
	t := Current()
	maxw := 0
	for _, ln := range lines {
		if vis := ansi.StringWidth(ln); vis > maxw {
			maxw = vis
		}
	}
	pad := func(s string) string {
		if vis := ansi.StringWidth(s); vis < maxw {
			s += strings.Repeat(" ", maxw-vis)
		}
		return s
	}
	fmt.Fprintln(w, t.CornerTL+strings.Repeat(t.H, maxw+2)+t.CornerTR)
	for _, ln := range lines {
		fmt.Fprintln(w, t.V+" "+pad(ln)+" "+t.V)
	}
	fmt.Fprintln(w, t.CornerBL+strings.Repeat(t.H, maxw+2)+t.CornerBR)
}

// Stats counts done and pending tasks.
func Stats(tasks []model.Task) (done, pending int) {
	for _, t := range tasks {
		if t.Done {
			done++
		} else {
			pending++
		}
	}
	return
}

// CountLabel is the header text, e.g. "1 task" or "3 tasks".
func CountLabel(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}

// TaskLines renders the header, progress bar and one numbered line per task.
func TaskLines(tasks []model.Task) []string {
	t := Current()
	d, p := Stats(tasks)
	header := fmt.Sprintf("%s  %s  %s %d  %s %d",
		C(t.Title, "to.do"),
		C(t.Accent, CountLabel(len(tasks))),
		C(t.Success, symCheck), d,
		C(t.Pending, "•"), p,
	)

	lines := []string{header, C(t.Muted, ProgressBar(d, d+p, 28)), ""}
	if len(tasks) == 0 {
		return append(lines, C(t.Muted, "no tasks"))
	}
	for i, tk := range tasks {
		idx := fmt.Sprintf("%2d.", i+1)
		box, color := t.BoxUnchecked, t.Muted
		title := ansi.Truncate(tk.Title, maxTitleWidth, "...")
		if tk.Done {
			box, color = t.BoxChecked, t.Success
			title = C(t.Done, title)
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", C(dim, idx), C(color, box), title))
	}
	return lines
}
