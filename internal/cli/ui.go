package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent = lipgloss.Color("36")  // teal
	colorOK     = lipgloss.Color("35")  // green
	colorWarn   = lipgloss.Color("220") // amber
	colorFail   = lipgloss.Color("167") // soft red
	colorValue  = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleValue  = lipgloss.NewStyle().Foreground(colorValue)
	styleNumber = lipgloss.NewStyle().Foreground(colorAccent)
	styleMuted  = lipgloss.NewStyle().Foreground(colorMuted)
	styleCached = lipgloss.NewStyle().Foreground(colorOK)
)

// status selects the icon and color of a console line.
type status int

const (
	statusInfo status = iota
	statusOK
	statusWarn
	statusFail
)

var statusMarks = [...]struct {
	icon  string
	style lipgloss.Style
}{
	statusInfo: {"›", styleMuted},
	statusOK:   {"✓", lipgloss.NewStyle().Foreground(colorOK)},
	statusWarn: {"!", lipgloss.NewStyle().Foreground(colorWarn)},
	statusFail: {"✗", lipgloss.NewStyle().Foreground(colorFail)},
}

// say prints one status line. Warnings are colored throughout, other lines
// only in the icon.
func say(w io.Writer, st status, format string, args ...any) {
	mark := statusMarks[st]
	msg := fmt.Sprintf(format, args...)
	if st == statusWarn {
		msg = mark.style.Render(msg)
	}
	fmt.Fprintln(w, mark.style.Render(mark.icon)+" "+msg)
}

// sayFile prints an indented line naming a written file.
func sayFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+styleDim.Render("→")+" "+styleValue.Render(path))
}

// saySummary prints the package and edge counts and the cache state.
func saySummary(w io.Writer, packages, edges int, cache string) {
	parts := []string{
		styleNumber.Render(fmt.Sprint(packages)) + styleDim.Render(" packages"),
		styleNumber.Render(fmt.Sprint(edges)) + styleDim.Render(" edges"),
	}
	if cache != "" {
		style := styleMuted
		if cache != cacheOff {
			style = styleCached
		}
		parts = append(parts, style.Render(cache))
	}
	fmt.Fprintln(w, "  "+strings.Join(parts, styleDim.Render(" · ")))
}
