package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/task-reminder/internal/domain"
)

// AddTaskInput contains the parameters for adding a task.
type AddTaskInput struct {
	Name string // Task name (required, trimmed before use)
}

// AddTaskOutput contains the result of adding a task.
type AddTaskOutput struct {
	Task domain.Task // The created task
}

// AddTask is the use case for adding a new task.
type AddTask struct {
	store  domain.CollectionStore
	ids    domain.TokenGenerator
	logger domain.Logger
}

// NewAddTask creates a new AddTask use case.
func NewAddTask(store domain.CollectionStore, ids domain.TokenGenerator, logger domain.Logger) *AddTask {
	return &AddTask{
		store:  store,
		ids:    ids,
		logger: orNop(logger),
	}
}

// Execute adds a task unless the name is blank or already used
// (case-insensitive, after trimming).
func (uc *AddTask) Execute(_ context.Context, in AddTaskInput) (*AddTaskOutput, error) {
	name := domain.NormalizeTaskName(in.Name)
	if name == "" {
		return nil, domain.ErrEmptyTaskName
	}

	unlock, err := uc.store.Lock(domain.CollectionTasks)
	if err != nil {
		return nil, fmt.Errorf("lock tasks: %w", err)
	}
	defer unlock()

	tasks := uc.store.LoadTasks()
	for _, t := range tasks {
		if t.SameName(name) {
			return nil, domain.ErrDuplicateTask
		}
	}

	task := domain.Task{
		ID:        uc.ids.NewTaskID(),
		Name:      name,
		Completed: false,
	}
	tasks = append(tasks, task)

	if err := uc.store.SaveTasks(tasks); err != nil {
		return nil, fmt.Errorf("save tasks: %w", err)
	}

	uc.logger.Info("task", fmt.Sprintf("added %s: %q", task.ID, task.Name))
	return &AddTaskOutput{Task: task}, nil
}

// orNop substitutes a no-op logger for nil.
func orNop(logger domain.Logger) domain.Logger {
	if logger == nil {
		return domain.NopLogger{}
	}
	return logger
}
