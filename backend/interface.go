package backend

import "context"

// Task represents one checklist entry.
//
// Fields are not validated: empty text or a nonpositive id are accepted
// as-is. Tasks are created by the checklist store, either on Add or when
// loaded from storage.
type Task struct {
	ID   int
	Text string
	Done bool
}

// Store defines the interface for checklist storage backends.
//
// A Store holds the full persisted state: Load returns every task in
// stored order, Save replaces the persisted state with the given tasks in
// slice order. The checklist store calls Load once at startup and Save
// once at shutdown; backends do not need to support incremental updates.
type Store interface {
	// Load reads all persisted tasks in stored order. A missing or
	// unreadable source is not an error: it yields an empty slice,
	// matching a first run with no data.
	Load(ctx context.Context) ([]Task, error)

	// Save replaces the persisted state with tasks, preserving order.
	Save(ctx context.Context, tasks []Task) error

	// Close releases any resources held by the backend.
	Close() error
}

// NextID returns the id the next new task should receive: one past the
// highest id present, or 1 for an empty collection.
func NextID(tasks []Task) int {
	maxID := 0
	for _, t := range tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID + 1
}
