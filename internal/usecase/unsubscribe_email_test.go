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

func TestUnsubscribeEmail_Execute(t *testing.T) {
	store := testutil.NewMockCollectionStore()
	store.Subscribers = []string{"a@x.com", "b@x.com"}
	uc := NewUnsubscribeEmail(store, nil)

	out, err := uc.Execute(context.Background(), UnsubscribeEmailInput{Email: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", out.Email)
	assert.Equal(t, []string{"b@x.com"}, store.Subscribers)

	_, err = uc.Execute(context.Background(), UnsubscribeEmailInput{Email: "a@x.com"})
	assert.ErrorIs(t, err, domain.ErrNotSubscribed)
	assert.Equal(t, 1, store.SubscriberSaves)
}

func TestUnsubscribeEmail_Execute_ExactMatch(t *testing.T) {
	store := testutil.NewMockCollectionStore()
	store.Subscribers = []string{"a@x.com"}
	uc := NewUnsubscribeEmail(store, nil)

	_, err := uc.Execute(context.Background(), UnsubscribeEmailInput{Email: "A@X.COM"})

	assert.ErrorIs(t, err, domain.ErrNotSubscribed)
	assert.Equal(t, []string{"a@x.com"}, store.Subscribers)
}

func TestUnsubscribeEmail_Execute_LeavesPendingAlone(t *testing.T) {
	store := testutil.NewMockCollectionStore()
	store.Pending["a@x.com"] = domain.PendingSubscription{Email: "a@x.com", Code: "c"}
	uc := NewUnsubscribeEmail(store, nil)

	_, err := uc.Execute(context.Background(), UnsubscribeEmailInput{Email: "a@x.com"})

	assert.ErrorIs(t, err, domain.ErrNotSubscribed)
	assert.Contains(t, store.Pending, "a@x.com")
}

func TestUnsubscribeEmail_Execute_Empty(t *testing.T) {
	store := testutil.NewMockCollectionStore()
	uc := NewUnsubscribeEmail(store, nil)

	_, err := uc.Execute(context.Background(), UnsubscribeEmailInput{Email: " "})

	assert.ErrorIs(t, err, domain.ErrNotSubscribed)
	assert.Empty(t, store.Locks)
}

func TestUnsubscribeEmail_Execute_SaveError(t *testing.T) {
	store := testutil.NewMockCollectionStore()
	store.Subscribers = []string{"a@x.com"}
	store.SaveSubsErr = errors.New("disk full")
	uc := NewUnsubscribeEmail(store, nil)

	_, err := uc.Execute(context.Background(), UnsubscribeEmailInput{Email: "a@x.com"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "save subscribers")
}
