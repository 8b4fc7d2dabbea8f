package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/task-reminder/internal/domain"
)

// UnsubscribeEmailInput contains the parameters for an unsubscribe request.
type UnsubscribeEmailInput struct {
	Email string
}

// UnsubscribeEmailOutput contains the removed address.
type UnsubscribeEmailOutput struct {
	Email string
}

// UnsubscribeEmail is the use case for removing a confirmed subscriber.
type UnsubscribeEmail struct {
	store  domain.CollectionStore
	logger domain.Logger
}

// NewUnsubscribeEmail creates a new UnsubscribeEmail use case.
func NewUnsubscribeEmail(store domain.CollectionStore, logger domain.Logger) *UnsubscribeEmail {
	return &UnsubscribeEmail{
		store:  store,
		logger: orNop(logger),
	}
}

// Execute removes the exact address from the confirmed set.
// Pending records are left alone.
func (uc *UnsubscribeEmail) Execute(_ context.Context, in UnsubscribeEmailInput) (*UnsubscribeEmailOutput, error) {
	email := domain.NormalizeEmail(in.Email)
	if email == "" {
		return nil, domain.ErrNotSubscribed
	}

	unlock, err := uc.store.Lock(domain.CollectionSubscribers)
	if err != nil {
		return nil, fmt.Errorf("lock subscribers: %w", err)
	}
	defer unlock()

	kept, removed := domain.RemoveEmail(uc.store.LoadSubscribers(), email)
	if !removed {
		return nil, domain.ErrNotSubscribed
	}
	if err := uc.store.SaveSubscribers(kept); err != nil {
		return nil, fmt.Errorf("save subscribers: %w", err)
	}

	uc.logger.Info("subscription", fmt.Sprintf("unsubscribed %s", email))
	return &UnsubscribeEmailOutput{Email: email}, nil
}
