// Package render formats the checklist for display.
package render

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"checklist/backend"
)

// Renderer writes the checklist to a writer, optionally styled.
type Renderer struct {
	writer io.Writer

	headerStyle   lipgloss.Style
	idStyle       lipgloss.Style
	pendingStyle  lipgloss.Style
	completeStyle lipgloss.Style
	emptyStyle    lipgloss.Style
}

// New creates a renderer. With color disabled all styles are no-ops and
// the output is plain text.
func New(w io.Writer, color bool) *Renderer {
	r := &Renderer{
		writer:        w,
		headerStyle:   lipgloss.NewStyle(),
		idStyle:       lipgloss.NewStyle(),
		pendingStyle:  lipgloss.NewStyle(),
		completeStyle: lipgloss.NewStyle(),
		emptyStyle:    lipgloss.NewStyle(),
	}

	if color {
		r.headerStyle = lipgloss.NewStyle().Bold(true)
		r.idStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
		r.completeStyle = lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(lipgloss.Color("240"))
		r.emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	}

	return r
}

// ColorEnabled decides whether styled output should be used. An explicit
// config value wins; otherwise color is used only when out is a terminal.
func ColorEnabled(forced *bool, out *os.File) bool {
	if forced != nil {
		return *forced
	}
	return term.IsTerminal(int(out.Fd()))
}

// Tasks renders the full checklist in stored order, or the empty message
// when there is nothing to show.
func (r *Renderer) Tasks(tasks []backend.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(r.writer, r.emptyStyle.Render("No tasks in the checklist."))
		return
	}

	fmt.Fprintln(r.writer, r.headerStyle.Render("=== CHECKLIST ==="))
	for _, t := range tasks {
		fmt.Fprintln(r.writer, r.Task(t))
	}
	fmt.Fprintln(r.writer, r.headerStyle.Render("================="))
}

// Task renders a single task line: "[id] [x] text" with the checkbox
// reflecting completion.
func (r *Renderer) Task(t backend.Task) string {
	checkbox := "[ ]"
	textStyle := r.pendingStyle
	if t.Done {
		checkbox = "[x]"
		textStyle = r.completeStyle
	}
	return fmt.Sprintf("%s %s %s",
		r.idStyle.Render(fmt.Sprintf("[%d]", t.ID)),
		checkbox,
		textStyle.Render(t.Text),
	)
}
