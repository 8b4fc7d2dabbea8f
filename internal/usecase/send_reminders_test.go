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

func TestSendReminders_Execute_SendsPendingTasksToEverySubscriber(t *testing.T) {
	store := testutil.NewMockCollectionStore()
	seedTasks(store)
	store.Subscribers = []string{"a@x.com", "b@x.com"}
	mailer := &testutil.MockMailer{}
	uc := NewSendReminders(store, mailer, nil)

	out, err := uc.Execute(context.Background(), SendRemindersInput{})

	require.NoError(t, err)
	assert.Equal(t, 2, out.Sent)
	assert.Equal(t, 2, out.Pending)
	assert.Empty(t, out.Failed)

	require.Len(t, mailer.Reminders, 2)
	assert.Equal(t, "a@x.com", mailer.Reminders[0].Email)
	assert.Equal(t, "b@x.com", mailer.Reminders[1].Email)
	assert.Equal(t, []domain.Task{
		{ID: "1", Name: "Task 1"},
		{ID: "3", Name: "Task 3"},
	}, mailer.Reminders[0].Tasks)
}

func TestSendReminders_Execute_NoPendingTasks(t *testing.T) {
	store := testutil.NewMockCollectionStore()
	store.Tasks = []domain.Task{{ID: "1", Name: "done", Completed: true}}
	store.Subscribers = []string{"a@x.com"}
	mailer := &testutil.MockMailer{}
	uc := NewSendReminders(store, mailer, nil)

	out, err := uc.Execute(context.Background(), SendRemindersInput{})

	require.NoError(t, err)
	assert.Zero(t, out.Sent)
	assert.Empty(t, mailer.Reminders)
}

func TestSendReminders_Execute_FailureDoesNotAbort(t *testing.T) {
	store := testutil.NewMockCollectionStore()
	seedTasks(store)
	store.Subscribers = []string{"a@x.com", "b@x.com", "c@x.com"}
	mailer := &testutil.MockMailer{
		ReminderErrs: map[string]error{"b@x.com": errors.New("mailbox full")},
	}
	logger := &testutil.MockLogger{}
	uc := NewSendReminders(store, mailer, logger)

	out, err := uc.Execute(context.Background(), SendRemindersInput{})

	require.NoError(t, err)
	assert.Equal(t, 2, out.Sent)
	require.Contains(t, out.Failed, "b@x.com")
	assert.Equal(t, 1, logger.Count("ERROR"))
}

func TestSendReminders_Execute_CanceledContext(t *testing.T) {
	store := testutil.NewMockCollectionStore()
	seedTasks(store)
	store.Subscribers = []string{"a@x.com"}
	mailer := &testutil.MockMailer{}
	uc := NewSendReminders(store, mailer, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := uc.Execute(ctx, SendRemindersInput{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, mailer.Reminders)
}
