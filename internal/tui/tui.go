// Package tui provides a full-screen terminal interface for the checklist.
// All mutations go through the in-memory checklist store; persistence
// happens when the caller closes the store after the program quits.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"checklist/backend"
	"checklist/internal/checklist"
)

// Mode indicates the current input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAdd
	ModeEdit
	ModeHelp
	ModeConfirmDelete
)

// Model represents the TUI state
type Model struct {
	checklist *checklist.Checklist

	cursor int
	mode   Mode

	textInput textinput.Model

	width  int
	height int

	titleStyle     lipgloss.Style
	selectedStyle  lipgloss.Style
	completedStyle lipgloss.Style
	helpStyle      lipgloss.Style
	dialogStyle    lipgloss.Style
}

// New creates a new TUI model over an opened checklist.
func New(c *checklist.Checklist) *Model {
	ti := textinput.New()
	ti.Placeholder = "Enter text..."
	ti.CharLimit = 256

	return &Model{
		checklist: c,
		textInput: ti,
		mode:      ModeNormal,
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")),
		selectedStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")),
		completedStyle: lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(lipgloss.Color("240")),
		helpStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		dialogStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2),
	}
}

// Init initializes the TUI
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeAdd:
			return m.handleAddMode(msg)
		case ModeEdit:
			return m.handleEditMode(msg)
		case ModeHelp:
			return m.handleHelpMode(msg)
		case ModeConfirmDelete:
			return m.handleConfirmDeleteMode(msg)
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "j":
			if m.cursor < m.checklist.Len()-1 {
				m.cursor++
			}
			return m, nil

		case "a":
			m.mode = ModeAdd
			m.textInput.Reset()
			m.textInput.Placeholder = "New task..."
			m.textInput.Focus()
			return m, textinput.Blink

		case "e":
			if t, ok := m.taskUnderCursor(); ok {
				m.mode = ModeEdit
				m.textInput.Reset()
				m.textInput.SetValue(t.Text)
				m.textInput.Focus()
				return m, textinput.Blink
			}
			return m, nil

		case " ", "c":
			if t, ok := m.taskUnderCursor(); ok {
				m.checklist.Toggle(t.ID)
			}
			return m, nil

		case "d":
			if _, ok := m.taskUnderCursor(); ok {
				m.mode = ModeConfirmDelete
			}
			return m, nil

		case "?":
			m.mode = ModeHelp
			return m, nil
		}
	}

	return m, nil
}

func (m *Model) handleAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.Type {
	case tea.KeyEnter:
		if value := m.textInput.Value(); value != "" {
			m.checklist.Add(value)
			m.cursor = m.checklist.Len() - 1
		}
		m.mode = ModeNormal
		return m, nil

	case tea.KeyEsc:
		m.mode = ModeNormal
		return m, nil
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *Model) handleEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.Type {
	case tea.KeyEnter:
		if value := m.textInput.Value(); value != "" {
			if t, ok := m.taskUnderCursor(); ok {
				m.checklist.Rename(t.ID, value)
			}
		}
		m.mode = ModeNormal
		return m, nil

	case tea.KeyEsc:
		m.mode = ModeNormal
		return m, nil
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q", "?":
		m.mode = ModeNormal
	}
	return m, nil
}

func (m *Model) handleConfirmDeleteMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if t, ok := m.taskUnderCursor(); ok {
			m.checklist.Remove(t.ID)
			if m.cursor >= m.checklist.Len() && m.cursor > 0 {
				m.cursor--
			}
		}
		m.mode = ModeNormal

	case "n", "N", "esc":
		m.mode = ModeNormal
	}
	return m, nil
}

// taskUnderCursor returns the task the cursor points at, if any.
func (m *Model) taskUnderCursor() (backend.Task, bool) {
	tasks := m.checklist.Tasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return backend.Task{}, false
	}
	return tasks[m.cursor], true
}

// View renders the TUI
func (m *Model) View() string {
	switch m.mode {
	case ModeAdd:
		return m.renderInputDialog("Add task")
	case ModeEdit:
		return m.renderInputDialog("Edit task")
	case ModeHelp:
		return m.renderHelpDialog()
	case ModeConfirmDelete:
		return m.renderConfirmDeleteDialog()
	}

	var b strings.Builder
	b.WriteString(m.titleStyle.Render("Checklist"))
	b.WriteString("\n\n")

	tasks := m.checklist.Tasks()
	if len(tasks) == 0 {
		b.WriteString("No tasks. Press 'a' to add one.\n")
	}

	for i, t := range tasks {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}

		checkbox := "[ ]"
		if t.Done {
			checkbox = "[x]"
		}

		line := fmt.Sprintf("%s %s [%d] %s", cursor, checkbox, t.ID, t.Text)
		switch {
		case i == m.cursor:
			line = m.selectedStyle.Render(line)
		case t.Done:
			line = m.completedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.helpStyle.Render("space: toggle • a: add • e: edit • d: delete • ?: help • q: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderInputDialog(title string) string {
	content := fmt.Sprintf("%s\n\n%s\n\n%s",
		m.titleStyle.Render(title),
		m.textInput.View(),
		m.helpStyle.Render("enter: confirm • esc: cancel"),
	)
	return m.dialogStyle.Render(content)
}

func (m *Model) renderHelpDialog() string {
	help := []string{
		"up/k, down/j  move cursor",
		"space, c      toggle completion",
		"a             add task",
		"e             edit task text",
		"d             delete task",
		"q             quit (saves on exit)",
	}
	content := fmt.Sprintf("%s\n\n%s\n\n%s",
		m.titleStyle.Render("Help"),
		strings.Join(help, "\n"),
		m.helpStyle.Render("esc: close"),
	)
	return m.dialogStyle.Render(content)
}

func (m *Model) renderConfirmDeleteDialog() string {
	text := ""
	if t, ok := m.taskUnderCursor(); ok {
		text = t.Text
	}
	content := fmt.Sprintf("%s\n\nDelete %q?\n\n%s",
		m.titleStyle.Render("Confirm delete"),
		text,
		m.helpStyle.Render("y: delete • n: cancel"),
	)
	return m.dialogStyle.Render(content)
}
