package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/runoshun/task-reminder/internal/domain"
	"github.com/runoshun/task-reminder/internal/infra/filestore"
	"github.com/runoshun/task-reminder/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type subscribeFixture struct {
	store  *testutil.MockCollectionStore
	tokens *testutil.MockTokenGenerator
	mailer *testutil.MockMailer
	logger *testutil.MockLogger
	clock  *testutil.MockClock
	uc     *SubscribeEmail
}

func newSubscribeFixture() *subscribeFixture {
	f := &subscribeFixture{
		store:  testutil.NewMockCollectionStore(),
		tokens: &testutil.MockTokenGenerator{},
		mailer: &testutil.MockMailer{},
		logger: &testutil.MockLogger{},
		clock:  &testutil.MockClock{NowTime: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
	}
	f.uc = NewSubscribeEmail(f.store, f.tokens, f.mailer, f.clock, f.logger)
	return f
}

func TestSubscribeEmail_Execute_Success(t *testing.T) {
	f := newSubscribeFixture()

	out, err := f.uc.Execute(context.Background(), SubscribeEmailInput{Email: " a@x.com "})

	require.NoError(t, err)
	assert.Equal(t, "a@x.com", out.Pending.Email)
	assert.Equal(t, "code-1", out.Pending.Code)
	assert.Equal(t, f.clock.NowTime, out.Pending.RequestedAt)
	assert.NoError(t, out.MailErr)

	require.Contains(t, f.store.Pending, "a@x.com")
	assert.Equal(t, "code-1", f.store.Pending["a@x.com"].Code)
	assert.Empty(t, f.store.Subscribers, "not confirmed until verified")
	assert.Equal(t, []testutil.SentVerification{{Email: "a@x.com", Code: "code-1"}}, f.mailer.Verifications)
	assert.Equal(t, [][]domain.Collection{
		{domain.CollectionSubscribers, domain.CollectionPendingSubscriptions},
	}, f.store.Locks)
}

func TestSubscribeEmail_Execute_ResubscribeReplacesCode(t *testing.T) {
	f := newSubscribeFixture()

	_, err := f.uc.Execute(context.Background(), SubscribeEmailInput{Email: "a@x.com"})
	require.NoError(t, err)
	_, err = f.uc.Execute(context.Background(), SubscribeEmailInput{Email: "a@x.com"})
	require.NoError(t, err)

	require.Len(t, f.store.Pending, 1)
	assert.Equal(t, "code-2", f.store.Pending["a@x.com"].Code)
	assert.Len(t, f.mailer.Verifications, 2)
}

func TestSubscribeEmail_Execute_InvalidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"no at", "not-an-email"},
		{"no local part", "@x.com"},
		{"no domain", "a@"},
		{"display name", "Bob <bob@x.com>"},
		{"inner space", "a b@x.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSubscribeFixture()

			_, err := f.uc.Execute(context.Background(), SubscribeEmailInput{Email: tt.email})

			assert.ErrorIs(t, err, domain.ErrInvalidEmail)
			assert.Empty(t, f.store.Pending)
			assert.Zero(t, f.store.PendingSaves)
			assert.Empty(t, f.mailer.Verifications)
		})
	}
}

func TestSubscribeEmail_Execute_AlreadySubscribed(t *testing.T) {
	f := newSubscribeFixture()
	f.store.Subscribers = []string{"a@x.com"}

	_, err := f.uc.Execute(context.Background(), SubscribeEmailInput{Email: "a@x.com"})

	assert.ErrorIs(t, err, domain.ErrAlreadySubscribed)
	assert.Empty(t, f.store.Pending)
	assert.Empty(t, f.mailer.Verifications)
}

func TestSubscribeEmail_Execute_MailFailureIsNotFatal(t *testing.T) {
	f := newSubscribeFixture()
	f.mailer.VerifyErr = errors.New("connection refused")

	out, err := f.uc.Execute(context.Background(), SubscribeEmailInput{Email: "a@x.com"})

	require.NoError(t, err)
	assert.Error(t, out.MailErr)
	assert.Contains(t, f.store.Pending, "a@x.com")
	assert.Equal(t, 1, f.logger.Count("ERROR"))
}

func TestSubscribeEmail_Execute_CodeError(t *testing.T) {
	f := newSubscribeFixture()
	f.tokens.CodeErr = errors.New("entropy exhausted")

	_, err := f.uc.Execute(context.Background(), SubscribeEmailInput{Email: "a@x.com"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate verification code")
	assert.Empty(t, f.store.Pending)
}

func TestSubscribeEmail_Execute_SaveError(t *testing.T) {
	f := newSubscribeFixture()
	f.store.SavePendingErr = errors.New("disk full")

	_, err := f.uc.Execute(context.Background(), SubscribeEmailInput{Email: "a@x.com"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "save pending subscriptions")
	assert.Empty(t, f.mailer.Verifications, "no mail for an unsaved code")
}

// blockingMailer holds SendVerification until release is closed.
type blockingMailer struct {
	testutil.MockMailer
	started chan struct{}
	release chan struct{}
}

func (m *blockingMailer) SendVerification(ctx context.Context, email, code string) error {
	close(m.started)
	<-m.release
	return m.MockMailer.SendVerification(ctx, email, code)
}

func TestSubscribeEmail_Execute_SendsMailOutsideLock(t *testing.T) {
	store := filestore.New(t.TempDir(), filestore.Options{})
	require.NoError(t, store.SaveSubscribers([]string{"b@x.com"}))
	mailer := &blockingMailer{started: make(chan struct{}), release: make(chan struct{})}
	subscribe := NewSubscribeEmail(store, &testutil.MockTokenGenerator{}, mailer, nil, nil)
	unsubscribe := NewUnsubscribeEmail(store, nil)

	subscribed := make(chan error, 1)
	go func() {
		_, err := subscribe.Execute(context.Background(), SubscribeEmailInput{Email: "a@x.com"})
		subscribed <- err
	}()
	<-mailer.started

	unsubscribed := make(chan error, 1)
	go func() {
		_, err := unsubscribe.Execute(context.Background(), UnsubscribeEmailInput{Email: "b@x.com"})
		unsubscribed <- err
	}()

	select {
	case err := <-unsubscribed:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		close(mailer.release)
		t.Fatal("unsubscribe waited for the verification mail")
	}

	close(mailer.release)
	require.NoError(t, <-subscribed)
	assert.Empty(t, store.LoadSubscribers())
	assert.Contains(t, store.LoadPendingSubscriptions(), "a@x.com")
	assert.Len(t, mailer.Verifications, 1)
}
