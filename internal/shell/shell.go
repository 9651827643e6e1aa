// Package shell implements the interactive menu loop. It reads menu
// choices from an injectable reader and writes to an injectable writer,
// so sessions can be scripted in tests without a real terminal.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"checklist/internal/checklist"
	"checklist/internal/render"
)

const menu = `
--- Checklist ---
1. Add task
2. Remove task
3. Toggle task
4. List tasks
5. Exit
Choice: `

// Shell is a synchronous read-evaluate-print loop over a checklist. Every
// operation runs to completion before the next prompt; the only blocking
// point is the read itself.
type Shell struct {
	Checklist *checklist.Checklist
	Renderer  *render.Renderer
	Reader    io.Reader
	Writer    io.Writer
}

// Run drives the menu until the user exits or input ends. EOF on the
// reader is a normal exit, not an error. Run does not save; the caller
// owns the checklist's Close.
func (s *Shell) Run() error {
	scanner := bufio.NewScanner(s.Reader)

	for {
		fmt.Fprint(s.Writer, menu)
		choice, ok := readLine(scanner)
		if !ok {
			fmt.Fprintln(s.Writer)
			return nil
		}

		switch choice {
		case "1":
			fmt.Fprint(s.Writer, "Task text: ")
			text, ok := readLine(scanner)
			if !ok {
				return nil
			}
			s.Checklist.Add(text)
			fmt.Fprintln(s.Writer, "Task added.")

		case "2":
			id, ok := s.promptID(scanner, "Task id to remove: ")
			if !ok {
				continue
			}
			if s.Checklist.Remove(id) {
				fmt.Fprintln(s.Writer, "Task removed.")
			} else {
				fmt.Fprintln(s.Writer, "Task not found.")
			}

		case "3":
			id, ok := s.promptID(scanner, "Task id to toggle: ")
			if !ok {
				continue
			}
			if s.Checklist.Toggle(id) {
				fmt.Fprintln(s.Writer, "Task toggled.")
			} else {
				fmt.Fprintln(s.Writer, "Task not found.")
			}

		case "4":
			s.Renderer.Tasks(s.Checklist.Tasks())

		case "5":
			fmt.Fprintln(s.Writer, "Saving and exiting...")
			return nil

		default:
			fmt.Fprintln(s.Writer, "Invalid choice.")
		}
	}
}

// promptID prompts for a task id. A non-integer answer reports "Invalid
// id." and returns ok=false, sending the loop back to the menu. EOF also
// returns ok=false.
func (s *Shell) promptID(scanner *bufio.Scanner, prompt string) (int, bool) {
	fmt.Fprint(s.Writer, prompt)
	input, ok := readLine(scanner)
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(input)
	if err != nil {
		fmt.Fprintln(s.Writer, "Invalid id.")
		return 0, false
	}
	return id, true
}

// readLine reads one trimmed line. ok is false at end of input.
func readLine(scanner *bufio.Scanner) (string, bool) {
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}
