package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/runoshun/task-reminder/internal/domain"
	"github.com/runoshun/task-reminder/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteTask_Execute_MarkCompleted(t *testing.T) {
	store := testutil.NewMockCollectionStore()
	seedTasks(store)
	uc := NewCompleteTask(store, nil)

	out, err := uc.Execute(context.Background(), CompleteTaskInput{TaskID: "1", Completed: true})

	require.NoError(t, err)
	assert.True(t, out.Task.Completed)
	assert.True(t, store.Tasks[0].Completed)
	assert.True(t, store.Tasks[1].Completed, "other tasks unchanged")
	assert.False(t, store.Tasks[2].Completed, "other tasks unchanged")
	assert.Equal(t, 1, store.TaskSaves)
}

func TestCompleteTask_Execute_Undo(t *testing.T) {
	store := testutil.NewMockCollectionStore()
	seedTasks(store)
	uc := NewCompleteTask(store, nil)

	_, err := uc.Execute(context.Background(), CompleteTaskInput{TaskID: "2", Completed: false})

	require.NoError(t, err)
	assert.False(t, store.Tasks[1].Completed)
}

func TestCompleteTask_Execute_Idempotent(t *testing.T) {
	store := testutil.NewMockCollectionStore()
	seedTasks(store)
	uc := NewCompleteTask(store, nil)

	_, err := uc.Execute(context.Background(), CompleteTaskInput{TaskID: "1", Completed: true})
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), CompleteTaskInput{TaskID: "1", Completed: true})
	require.NoError(t, err)

	assert.True(t, store.Tasks[0].Completed)
}

func TestCompleteTask_Execute_FirstMatchOnly(t *testing.T) {
	store := testutil.NewMockCollectionStore()
	store.Tasks = []domain.Task{
		{ID: "dup", Name: "a"},
		{ID: "dup", Name: "b"},
	}
	uc := NewCompleteTask(store, nil)

	_, err := uc.Execute(context.Background(), CompleteTaskInput{TaskID: "dup", Completed: true})

	require.NoError(t, err)
	assert.True(t, store.Tasks[0].Completed)
	assert.False(t, store.Tasks[1].Completed)
}

func TestCompleteTask_Execute_NotFound(t *testing.T) {
	store := testutil.NewMockCollectionStore()
	seedTasks(store)
	uc := NewCompleteTask(store, nil)

	_, err := uc.Execute(context.Background(), CompleteTaskInput{TaskID: "missing", Completed: true})

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.Zero(t, store.TaskSaves)
}

func TestCompleteTask_Execute_EmptyID(t *testing.T) {
	store := testutil.NewMockCollectionStore()
	uc := NewCompleteTask(store, nil)

	_, err := uc.Execute(context.Background(), CompleteTaskInput{TaskID: "", Completed: true})

	assert.ErrorIs(t, err, domain.ErrEmptyTaskID)
	assert.Empty(t, store.Locks)
}

func TestCompleteTask_Execute_SaveError(t *testing.T) {
	store := testutil.NewMockCollectionStore()
	seedTasks(store)
	store.SaveTasksErr = errors.New("read-only file system")
	uc := NewCompleteTask(store, nil)

	_, err := uc.Execute(context.Background(), CompleteTaskInput{TaskID: "1", Completed: true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "save tasks")
}
