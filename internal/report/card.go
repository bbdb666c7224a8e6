package report

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	successColor = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"}
	failureColor = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}
	borderColor  = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}
)

// ColorEnabled reports whether w is a terminal and colour wasn't disabled
// with noColor or NO_COLOR.
func ColorEnabled(w io.Writer, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Card renders a rounded summary box. ok selects the success or failure
// accent; color false renders plain text inside the border.
func Card(title string, lines []string, ok, color bool) string {
	mark := "\u2713"
	accent := successColor
	if !ok {
		mark = "\u2717"
		accent = failureColor
	}

	style := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
	head := mark + " " + title
	if color {
		style = style.BorderForeground(borderColor)
		head = lipgloss.NewStyle().Foreground(accent).Bold(true).Render(head)
	}

	body := head
	if len(lines) > 0 {
		body += "\n\n" + strings.Join(lines, "\n")
	}
	return style.Render(body)
}
