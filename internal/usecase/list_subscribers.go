package usecase

import (
	"context"
	"sort"

	"github.com/runoshun/task-reminder/internal/domain"
)

// ListSubscribersInput contains the parameters for listing subscriptions.
type ListSubscribersInput struct{}

// ListSubscribersOutput contains confirmed and pending subscriptions.
type ListSubscribersOutput struct {
	Confirmed []string                     // In stored order
	Pending   []domain.PendingSubscription // Sorted by email
}

// ListSubscribers is the use case for listing subscriptions.
type ListSubscribers struct {
	store domain.CollectionStore
}

// NewListSubscribers creates a new ListSubscribers use case.
func NewListSubscribers(store domain.CollectionStore) *ListSubscribers {
	return &ListSubscribers{store: store}
}

// Execute returns confirmed subscribers and pending records.
func (uc *ListSubscribers) Execute(_ context.Context, _ ListSubscribersInput) (*ListSubscribersOutput, error) {
	pending := uc.store.LoadPendingSubscriptions()
	out := &ListSubscribersOutput{
		Confirmed: uc.store.LoadSubscribers(),
		Pending:   make([]domain.PendingSubscription, 0, len(pending)),
	}
	for email, p := range pending {
		if p.Email == "" {
			p.Email = email
		}
		out.Pending = append(out.Pending, p)
	}
	sort.Slice(out.Pending, func(i, j int) bool {
		return out.Pending[i].Email < out.Pending[j].Email
	})
	return out, nil
}
