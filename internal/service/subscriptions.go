package service

import (
	"context"

	"github.com/runoshun/task-reminder/internal/domain"
	"github.com/runoshun/task-reminder/internal/usecase"
)

// Subscriptions manages the subscribe, verify and unsubscribe flow.
type Subscriptions struct {
	subscribe   *usecase.SubscribeEmail
	verify      *usecase.VerifySubscription
	unsubscribe *usecase.UnsubscribeEmail
}

// NewSubscriptions creates a Subscriptions service over store.
func NewSubscriptions(
	store domain.CollectionStore,
	tokens domain.TokenGenerator,
	mailer domain.Mailer,
	clock domain.Clock,
	logger domain.Logger,
) *Subscriptions {
	return &Subscriptions{
		subscribe:   usecase.NewSubscribeEmail(store, tokens, mailer, clock, logger),
		verify:      usecase.NewVerifySubscription(store, logger),
		unsubscribe: usecase.NewUnsubscribeEmail(store, logger),
	}
}

// SubscribeEmail records a pending subscription and sends the verification code.
// It returns false for a malformed address or one that is already confirmed.
func (s *Subscriptions) SubscribeEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.subscribe.Execute(ctx, usecase.SubscribeEmailInput{Email: email})
	return outcome(err)
}

// VerifySubscription confirms the email when code matches its pending record.
func (s *Subscriptions) VerifySubscription(ctx context.Context, email, code string) (bool, error) {
	_, err := s.verify.Execute(ctx, usecase.VerifySubscriptionInput{Email: email, Code: code})
	return outcome(err)
}

// UnsubscribeEmail removes a confirmed subscriber. It returns false when the
// address was not subscribed.
func (s *Subscriptions) UnsubscribeEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.unsubscribe.Execute(ctx, usecase.UnsubscribeEmailInput{Email: email})
	return outcome(err)
}
