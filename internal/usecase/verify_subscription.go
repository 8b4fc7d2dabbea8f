package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/runoshun/task-reminder/internal/domain"
)

// VerifySubscriptionInput contains the parameters for confirming a subscription.
type VerifySubscriptionInput struct {
	Email string
	Code  string
}

// VerifySubscriptionOutput contains the confirmed address.
type VerifySubscriptionOutput struct {
	Email string
}

// VerifySubscription is the use case for confirming a pending subscription.
type VerifySubscription struct {
	store  domain.CollectionStore
	logger domain.Logger
}

// NewVerifySubscription creates a new VerifySubscription use case.
func NewVerifySubscription(store domain.CollectionStore, logger domain.Logger) *VerifySubscription {
	return &VerifySubscription{
		store:  store,
		logger: orNop(logger),
	}
}

// Execute moves the email from pending to confirmed when the code matches.
// Subscribers are written before the pending map so a failure between the
// two writes leaves a confirmed address with a stale pending record, never
// a lost subscription.
func (uc *VerifySubscription) Execute(_ context.Context, in VerifySubscriptionInput) (*VerifySubscriptionOutput, error) {
	email := domain.NormalizeEmail(in.Email)

	unlock, err := uc.store.Lock(domain.CollectionSubscribers, domain.CollectionPendingSubscriptions)
	if err != nil {
		return nil, fmt.Errorf("lock subscriptions: %w", err)
	}
	defer unlock()

	pending := uc.store.LoadPendingSubscriptions()
	record, ok := pending[email]
	if !ok || email == "" {
		return nil, domain.ErrSubscriptionNotFound
	}
	if subtle.ConstantTimeCompare([]byte(record.Code), []byte(in.Code)) != 1 {
		uc.logger.Warn("subscription", fmt.Sprintf("verification code mismatch for %s", email))
		return nil, domain.ErrVerificationCodeMismatch
	}

	subscribers := uc.store.LoadSubscribers()
	if !domain.ContainsEmail(subscribers, email) {
		subscribers = append(subscribers, email)
	}
	if err := uc.store.SaveSubscribers(subscribers); err != nil {
		return nil, fmt.Errorf("save subscribers: %w", err)
	}

	delete(pending, email)
	if err := uc.store.SavePendingSubscriptions(pending); err != nil {
		return nil, fmt.Errorf("save pending subscriptions: %w", err)
	}

	uc.logger.Info("subscription", fmt.Sprintf("confirmed %s", email))
	return &VerifySubscriptionOutput{Email: email}, nil
}
