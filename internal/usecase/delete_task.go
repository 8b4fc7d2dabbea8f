package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/task-reminder/internal/domain"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	TaskID string // Task ID to delete
}

// DeleteTaskOutput contains the result of deleting a task.
type DeleteTaskOutput struct {
	Removed int // Number of tasks removed (at most one while IDs are unique)
}

// DeleteTask is the use case for deleting a task.
type DeleteTask struct {
	store  domain.CollectionStore
	logger domain.Logger
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(store domain.CollectionStore, logger domain.Logger) *DeleteTask {
	return &DeleteTask{
		store:  store,
		logger: orNop(logger),
	}
}

// Execute removes every task with the given ID.
// Nothing is written when no task matches.
func (uc *DeleteTask) Execute(_ context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	if strings.TrimSpace(in.TaskID) == "" {
		return nil, domain.ErrEmptyTaskID
	}

	unlock, err := uc.store.Lock(domain.CollectionTasks)
	if err != nil {
		return nil, fmt.Errorf("lock tasks: %w", err)
	}
	defer unlock()

	tasks := uc.store.LoadTasks()
	kept := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != in.TaskID {
			kept = append(kept, t)
		}
	}
	removed := len(tasks) - len(kept)
	if removed == 0 {
		return nil, domain.ErrTaskNotFound
	}

	if err := uc.store.SaveTasks(kept); err != nil {
		return nil, fmt.Errorf("save tasks: %w", err)
	}

	uc.logger.Info("task", fmt.Sprintf("deleted %s", in.TaskID))
	return &DeleteTaskOutput{Removed: removed}, nil
}
