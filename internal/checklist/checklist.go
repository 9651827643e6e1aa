// Package checklist owns the in-memory task collection and its persistence
// lifecycle: load once on Open, mutate in memory, save once on Close.
package checklist

import (
	"context"

	"checklist/backend"
)

// Checklist is the in-memory owner of the task collection. It holds the
// only reference to its backend.Store and is not safe for concurrent use;
// the process is single-user and fully synchronous.
type Checklist struct {
	store  backend.Store
	tasks  []backend.Task
	nextID int
}

// Open loads all tasks from store and computes the next id to assign:
// max(existing ids)+1, or 1 for an empty collection. The next id is
// computed once here and only incremented afterwards, so ids are never
// reused within a process lifetime even after removals.
func Open(ctx context.Context, store backend.Store) (*Checklist, error) {
	tasks, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}

	return &Checklist{
		store:  store,
		tasks:  tasks,
		nextID: backend.NextID(tasks),
	}, nil
}

// Add appends a new pending task with the next free id and returns it.
// Add always succeeds.
func (c *Checklist) Add(text string) backend.Task {
	task := backend.Task{ID: c.nextID, Text: text}
	c.nextID++
	c.tasks = append(c.tasks, task)
	return task
}

// Remove deletes the task with the given id. It returns false when no
// task matches, leaving the collection unchanged.
func (c *Checklist) Remove(id int) bool {
	for i, t := range c.tasks {
		if t.ID == id {
			c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Toggle flips the completion flag of the task with the given id. It
// returns false when no task matches.
func (c *Checklist) Toggle(id int) bool {
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks[i].Done = !c.tasks[i].Done
			return true
		}
	}
	return false
}

// Rename replaces the text of the task with the given id. It returns
// false when no task matches.
func (c *Checklist) Rename(id int, text string) bool {
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks[i].Text = text
			return true
		}
	}
	return false
}

// Tasks returns a copy of the collection in stored order.
func (c *Checklist) Tasks() []backend.Task {
	tasks := make([]backend.Task, len(c.tasks))
	copy(tasks, c.tasks)
	return tasks
}

// Len returns the number of tasks.
func (c *Checklist) Len() int {
	return len(c.tasks)
}

// Close saves the collection and closes the underlying store. The store
// is closed even when the save fails. Callers log a save error and keep
// shutting down; a failed save must not abort the process.
func (c *Checklist) Close(ctx context.Context) error {
	saveErr := c.store.Save(ctx, c.tasks)
	if closeErr := c.store.Close(); saveErr == nil {
		saveErr = closeErr
	}
	return saveErr
}
