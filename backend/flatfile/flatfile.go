// Package flatfile implements a backend.Store that keeps tasks in a plain
// text file, one record per line:
//
//	<id> <done:0|1> <text-to-end-of-line>
//
// The text may contain spaces but not newlines. Reading stops silently at
// the first line whose leading integers fail to parse; trailing garbage in
// the file is dropped rather than reported.
package flatfile

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"checklist/backend"
)

// maxLineBytes caps a single record line on load.
const maxLineBytes = 4 * 1024 * 1024

// Store implements backend.Store for flat-file storage. It is bound to
// exactly one file path for its lifetime and is meant to be held by a
// single owner; the file handle itself is scoped to each Load and Save
// call, never kept open in between.
type Store struct {
	path string // resolved absolute path
}

// New creates a flat-file store bound to path. A relative path is resolved
// against the current working directory; an empty path defaults to
// "checklist.txt".
func New(path string) (*Store, error) {
	if path == "" {
		path = "checklist.txt"
	}

	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		path = filepath.Join(wd, path)
	}

	return &Store{path: path}, nil
}

// Path returns the resolved file path the store is bound to.
func (s *Store) Path() string {
	return s.path
}

// Close closes the store. The flat-file store holds no open resources.
func (s *Store) Close() error {
	return nil
}

// Load reads all tasks from the file in stored order. A file that does not
// exist or cannot be opened yields an empty slice and no error: a first
// run has no file yet.
func (s *Store) Load(ctx context.Context) ([]backend.Task, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return []backend.Task{}, nil
	}
	defer func() { _ = f.Close() }()

	tasks := []backend.Task{}
	scanner := bufio.NewScanner(f)
	// Task text is unbounded; the default 64KB token limit would turn a
	// long line into a load error.
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		task, ok := parseRecord(scanner.Text())
		if !ok {
			// Malformed record: stop reading, keep what parsed so far.
			return tasks, nil
		}
		tasks = append(tasks, task)
	}

	return tasks, scanner.Err()
}

// Save writes all tasks to the file in slice order, truncating any
// existing content. There is no atomic rename and no fsync: a crash
// mid-write may leave a truncated file.
func (s *Store) Save(ctx context.Context, tasks []backend.Task) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	var sb strings.Builder
	for _, t := range tasks {
		sb.WriteString(formatRecord(t))
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(s.path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

// parseRecord parses one line of the file format. The second return value
// is false when the two leading integer fields cannot be parsed.
func parseRecord(line string) (backend.Task, bool) {
	idField, rest, _ := strings.Cut(line, " ")
	id, err := strconv.Atoi(idField)
	if err != nil {
		return backend.Task{}, false
	}

	doneField, text, _ := strings.Cut(rest, " ")
	done, err := strconv.Atoi(doneField)
	if err != nil {
		return backend.Task{}, false
	}

	// Any nonzero flag counts as done. Text is the remainder of the line
	// verbatim, which may be empty.
	return backend.Task{ID: id, Text: text, Done: done != 0}, true
}

// formatRecord encodes one task as a file line, without the newline.
func formatRecord(t backend.Task) string {
	done := 0
	if t.Done {
		done = 1
	}
	return fmt.Sprintf("%d %d %s", t.ID, done, t.Text)
}

// Verify interface compliance at compile time
var _ backend.Store = (*Store)(nil)
