package usecase

import (
	"context"
	"strings"

	"github.com/runoshun/task-reminder/internal/domain"
)

// ShowTaskInput contains the parameters for looking up a task.
type ShowTaskInput struct {
	TaskID string
}

// ShowTaskOutput contains the found task.
type ShowTaskOutput struct {
	Task domain.Task
}

// ShowTask is the use case for looking up a task by ID.
type ShowTask struct {
	store domain.CollectionStore
}

// NewShowTask creates a new ShowTask use case.
func NewShowTask(store domain.CollectionStore) *ShowTask {
	return &ShowTask{store: store}
}

// Execute returns the first task whose ID matches.
func (uc *ShowTask) Execute(_ context.Context, in ShowTaskInput) (*ShowTaskOutput, error) {
	if strings.TrimSpace(in.TaskID) == "" {
		return nil, domain.ErrEmptyTaskID
	}

	tasks := uc.store.LoadTasks()
	i := domain.FindTask(tasks, in.TaskID)
	if i < 0 {
		return nil, domain.ErrTaskNotFound
	}
	return &ShowTaskOutput{Task: tasks[i]}, nil
}
