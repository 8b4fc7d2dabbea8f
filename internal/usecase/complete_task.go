package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/task-reminder/internal/domain"
)

// CompleteTaskInput contains the parameters for marking a task.
type CompleteTaskInput struct {
	TaskID    string // Task ID to mark
	Completed bool   // New value of the completed flag
}

// CompleteTaskOutput contains the updated task.
type CompleteTaskOutput struct {
	Task domain.Task
}

// CompleteTask is the use case for marking a task complete or incomplete.
type CompleteTask struct {
	store  domain.CollectionStore
	logger domain.Logger
}

// NewCompleteTask creates a new CompleteTask use case.
func NewCompleteTask(store domain.CollectionStore, logger domain.Logger) *CompleteTask {
	return &CompleteTask{
		store:  store,
		logger: orNop(logger),
	}
}

// Execute sets the completed flag on the first task with a matching ID.
// Nothing is written when no task matches.
func (uc *CompleteTask) Execute(_ context.Context, in CompleteTaskInput) (*CompleteTaskOutput, error) {
	if strings.TrimSpace(in.TaskID) == "" {
		return nil, domain.ErrEmptyTaskID
	}

	unlock, err := uc.store.Lock(domain.CollectionTasks)
	if err != nil {
		return nil, fmt.Errorf("lock tasks: %w", err)
	}
	defer unlock()

	tasks := uc.store.LoadTasks()
	i := domain.FindTask(tasks, in.TaskID)
	if i < 0 {
		return nil, domain.ErrTaskNotFound
	}
	tasks[i].Completed = in.Completed

	if err := uc.store.SaveTasks(tasks); err != nil {
		return nil, fmt.Errorf("save tasks: %w", err)
	}

	uc.logger.Info("task", fmt.Sprintf("marked %s completed=%t", in.TaskID, in.Completed))
	return &CompleteTaskOutput{Task: tasks[i]}, nil
}
