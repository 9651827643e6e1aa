package tui_test

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"checklist/backend"
	"checklist/backend/flatfile"
	"checklist/internal/checklist"
	"checklist/internal/tui"
)

// sendKeyAndWait sends a key message and waits briefly for processing.
func sendKeyAndWait(tm *teatest.TestModel, key tea.KeyMsg) {
	tm.Send(key)
	time.Sleep(20 * time.Millisecond)
}

// sendRunesAndWait sends a rune key message and waits briefly for processing.
func sendRunesAndWait(tm *teatest.TestModel, runes []rune) {
	sendKeyAndWait(tm, tea.KeyMsg{Type: tea.KeyRunes, Runes: runes})
}

// readAll reads all output from a reader and returns it as bytes.
func readAll(t *testing.T, r io.Reader) []byte {
	t.Helper()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return out
}

// openChecklist opens a checklist over a temp flat file seeded with tasks.
func openChecklist(t *testing.T, tasks []backend.Task) *checklist.Checklist {
	t.Helper()

	ctx := context.Background()
	store, err := flatfile.New(filepath.Join(t.TempDir(), "checklist.txt"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := store.Save(ctx, tasks); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	cl, err := checklist.Open(ctx, store)
	if err != nil {
		t.Fatalf("failed to open checklist: %v", err)
	}
	return cl
}

func seedTasks() []backend.Task {
	return []backend.Task{
		{ID: 1, Text: "Buy milk"},
		{ID: 2, Text: "Finish report", Done: true},
	}
}

func TestTUILaunch(t *testing.T) {
	cl := openChecklist(t, seedTasks())
	tm := teatest.NewTestModel(t, tui.New(cl), teatest.WithInitialTermSize(80, 24))

	time.Sleep(100 * time.Millisecond)
	sendRunesAndWait(tm, []rune{'q'})

	out := readAll(t, tm.FinalOutput(t, teatest.WithFinalTimeout(time.Second)))
	if !bytes.Contains(out, []byte("Buy milk")) {
		t.Error("expected 'Buy milk' to be visible")
	}
	if !bytes.Contains(out, []byte("Finish report")) {
		t.Error("expected 'Finish report' to be visible")
	}
}

func TestTUIToggle(t *testing.T) {
	cl := openChecklist(t, seedTasks())
	tm := teatest.NewTestModel(t, tui.New(cl), teatest.WithInitialTermSize(80, 24))

	time.Sleep(100 * time.Millisecond)

	// Toggle the first task with space, then quit.
	sendRunesAndWait(tm, []rune{' '})
	sendRunesAndWait(tm, []rune{'q'})
	readAll(t, tm.FinalOutput(t, teatest.WithFinalTimeout(time.Second)))

	if !cl.Tasks()[0].Done {
		t.Error("expected first task toggled to done")
	}
}

func TestTUIAddTask(t *testing.T) {
	cl := openChecklist(t, seedTasks())
	tm := teatest.NewTestModel(t, tui.New(cl), teatest.WithInitialTermSize(80, 24))

	time.Sleep(100 * time.Millisecond)

	sendRunesAndWait(tm, []rune{'a'})
	sendRunesAndWait(tm, []rune("Call mom"))
	sendKeyAndWait(tm, tea.KeyMsg{Type: tea.KeyEnter})
	sendRunesAndWait(tm, []rune{'q'})
	readAll(t, tm.FinalOutput(t, teatest.WithFinalTimeout(time.Second)))

	tasks := cl.Tasks()
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks after add, got %d", len(tasks))
	}
	if tasks[2].Text != "Call mom" || tasks[2].ID != 3 {
		t.Errorf("unexpected new task: %+v", tasks[2])
	}
}

func TestTUIDeleteWithConfirmation(t *testing.T) {
	cl := openChecklist(t, seedTasks())
	tm := teatest.NewTestModel(t, tui.New(cl), teatest.WithInitialTermSize(80, 24))

	time.Sleep(100 * time.Millisecond)

	sendRunesAndWait(tm, []rune{'d'})
	sendRunesAndWait(tm, []rune{'y'})
	sendRunesAndWait(tm, []rune{'q'})
	readAll(t, tm.FinalOutput(t, teatest.WithFinalTimeout(time.Second)))

	tasks := cl.Tasks()
	if len(tasks) != 1 || tasks[0].ID != 2 {
		t.Errorf("expected only task 2 to remain, got %+v", tasks)
	}
}

func TestTUIDeleteCancelled(t *testing.T) {
	cl := openChecklist(t, seedTasks())
	tm := teatest.NewTestModel(t, tui.New(cl), teatest.WithInitialTermSize(80, 24))

	time.Sleep(100 * time.Millisecond)

	sendRunesAndWait(tm, []rune{'d'})
	sendRunesAndWait(tm, []rune{'n'})
	sendRunesAndWait(tm, []rune{'q'})
	readAll(t, tm.FinalOutput(t, teatest.WithFinalTimeout(time.Second)))

	if cl.Len() != 2 {
		t.Errorf("expected cancel to keep both tasks, got %d", cl.Len())
	}
}

func TestTUIEditTask(t *testing.T) {
	cl := openChecklist(t, seedTasks())
	tm := teatest.NewTestModel(t, tui.New(cl), teatest.WithInitialTermSize(80, 24))

	time.Sleep(100 * time.Millisecond)

	sendRunesAndWait(tm, []rune{'e'})
	// The input is prefilled with the current text; append to it.
	sendRunesAndWait(tm, []rune(" today"))
	sendKeyAndWait(tm, tea.KeyMsg{Type: tea.KeyEnter})
	sendRunesAndWait(tm, []rune{'q'})
	readAll(t, tm.FinalOutput(t, teatest.WithFinalTimeout(time.Second)))

	if got := cl.Tasks()[0].Text; got != "Buy milk today" {
		t.Errorf("expected edited text, got %q", got)
	}
}
