package usecase

import (
	"context"
	"testing"

	"github.com/runoshun/task-reminder/internal/domain"
	"github.com/runoshun/task-reminder/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowTask_Execute(t *testing.T) {
	store := testutil.NewMockCollectionStore()
	seedTasks(store)
	uc := NewShowTask(store)

	t.Run("found", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), ShowTaskInput{TaskID: "2"})
		require.NoError(t, err)
		assert.Equal(t, domain.Task{ID: "2", Name: "Task 2", Completed: true}, out.Task)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), ShowTaskInput{TaskID: "99"})
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), ShowTaskInput{TaskID: " "})
		assert.ErrorIs(t, err, domain.ErrEmptyTaskID)
	})
}
