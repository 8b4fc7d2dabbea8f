// Package domain contains core business entities and interfaces.
package domain

import "strings"

// Task represents a to-do item.
// Identity is the ID alone; two tasks with equal IDs are the same entity.
type Task struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// NormalizeTaskName trims surrounding whitespace from a task name.
func NormalizeTaskName(name string) string {
	return strings.TrimSpace(name)
}

// SameName reports whether the task's name matches name case-insensitively.
// name is expected to be normalized already.
func (t Task) SameName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(t.Name), name)
}

// IsPending returns true if the task has not been completed.
func (t Task) IsPending() bool {
	return !t.Completed
}

// PendingTasks returns the incomplete tasks, keeping their relative order.
func PendingTasks(tasks []Task) []Task {
	pending := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.IsPending() {
			pending = append(pending, t)
		}
	}
	return pending
}

// FindTask returns the index of the first task with the given ID, or -1.
func FindTask(tasks []Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
