package service

import (
	"context"

	"github.com/runoshun/task-reminder/internal/domain"
	"github.com/runoshun/task-reminder/internal/usecase"
)

// Tasks manages the task list.
type Tasks struct {
	add      *usecase.AddTask
	list     *usecase.ListTasks
	show     *usecase.ShowTask
	complete *usecase.CompleteTask
	remove   *usecase.DeleteTask
}

// NewTasks creates a Tasks service over store.
func NewTasks(store domain.CollectionStore, ids domain.TokenGenerator, logger domain.Logger) *Tasks {
	return &Tasks{
		add:      usecase.NewAddTask(store, ids, logger),
		list:     usecase.NewListTasks(store),
		show:     usecase.NewShowTask(store),
		complete: usecase.NewCompleteTask(store, logger),
		remove:   usecase.NewDeleteTask(store, logger),
	}
}

// AddTask appends a new incomplete task. It returns false for a blank name
// or a name already in use (ignoring case).
func (s *Tasks) AddTask(ctx context.Context, name string) (bool, error) {
	_, err := s.add.Execute(ctx, usecase.AddTaskInput{Name: name})
	return outcome(err)
}

// GetAllTasks returns every task in insertion order.
func (s *Tasks) GetAllTasks(ctx context.Context) []domain.Task {
	return s.listTasks(ctx, false)
}

// GetPendingTasks returns the tasks not yet completed, in insertion order.
func (s *Tasks) GetPendingTasks(ctx context.Context) []domain.Task {
	return s.listTasks(ctx, true)
}

func (s *Tasks) listTasks(ctx context.Context, pendingOnly bool) []domain.Task {
	out, err := s.list.Execute(ctx, usecase.ListTasksInput{PendingOnly: pendingOnly})
	if err != nil {
		return []domain.Task{}
	}
	return out.Tasks
}

// GetTaskByID returns the first task with the given id.
func (s *Tasks) GetTaskByID(ctx context.Context, id string) (*domain.Task, bool) {
	out, err := s.show.Execute(ctx, usecase.ShowTaskInput{TaskID: id})
	if err != nil {
		return nil, false
	}
	return &out.Task, true
}

// MarkTaskAsCompleted sets the completed flag. It returns false when no task has the id.
func (s *Tasks) MarkTaskAsCompleted(ctx context.Context, id string, completed bool) (bool, error) {
	_, err := s.complete.Execute(ctx, usecase.CompleteTaskInput{TaskID: id, Completed: completed})
	return outcome(err)
}

// DeleteTask removes the task. It returns false when no task has the id.
func (s *Tasks) DeleteTask(ctx context.Context, id string) (bool, error) {
	_, err := s.remove.Execute(ctx, usecase.DeleteTaskInput{TaskID: id})
	return outcome(err)
}
