package usecase

import (
	"context"

	"github.com/runoshun/task-reminder/internal/domain"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	PendingOnly bool // Only incomplete tasks
}

// ListTasksOutput contains the result of listing tasks.
type ListTasksOutput struct {
	Tasks []domain.Task // Tasks in stored order
}

// ListTasks is the use case for listing tasks.
type ListTasks struct {
	store domain.CollectionStore
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(store domain.CollectionStore) *ListTasks {
	return &ListTasks{store: store}
}

// Execute returns every task, or only pending ones, preserving stored order.
func (uc *ListTasks) Execute(_ context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	tasks := uc.store.LoadTasks()
	if in.PendingOnly {
		tasks = domain.PendingTasks(tasks)
	}
	return &ListTasksOutput{Tasks: tasks}, nil
}
