package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/task-reminder/internal/domain"
)

// SubscribeEmailInput contains the parameters for a subscribe request.
type SubscribeEmailInput struct {
	Email string
}

// SubscribeEmailOutput contains the pending record that was stored.
type SubscribeEmailOutput struct {
	Pending domain.PendingSubscription
	MailErr error // Non-nil when the verification message could not be sent
}

// SubscribeEmail is the use case for starting a double opt-in subscription.
// Fields are ordered to minimize memory padding.
type SubscribeEmail struct {
	store  domain.CollectionStore
	tokens domain.TokenGenerator
	mailer domain.Mailer
	clock  domain.Clock
	logger domain.Logger
}

// NewSubscribeEmail creates a new SubscribeEmail use case.
func NewSubscribeEmail(
	store domain.CollectionStore,
	tokens domain.TokenGenerator,
	mailer domain.Mailer,
	clock domain.Clock,
	logger domain.Logger,
) *SubscribeEmail {
	if clock == nil {
		clock = domain.RealClock{}
	}
	return &SubscribeEmail{
		store:  store,
		tokens: tokens,
		mailer: mailer,
		clock:  clock,
		logger: orNop(logger),
	}
}

// Execute stores a fresh verification code for the email, replacing any
// earlier one, and hands the code to the mailer. Delivery is best effort:
// a send failure is logged and reported in the output, not as an error.
// The mail is sent after the subscription locks are released.
func (uc *SubscribeEmail) Execute(ctx context.Context, in SubscribeEmailInput) (*SubscribeEmailOutput, error) {
	email := domain.NormalizeEmail(in.Email)
	if !domain.ValidEmail(email) {
		return nil, domain.ErrInvalidEmail
	}

	record, err := uc.storePending(email)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("subscription", fmt.Sprintf("pending verification for %s", email))

	out := &SubscribeEmailOutput{Pending: record}
	if uc.mailer != nil {
		if err := uc.mailer.SendVerification(ctx, email, record.Code); err != nil {
			uc.logger.Error("subscription", fmt.Sprintf("send verification to %s: %v", email, err))
			out.MailErr = err
		}
	}
	return out, nil
}

// storePending upserts the pending record for email under the subscription locks.
func (uc *SubscribeEmail) storePending(email string) (domain.PendingSubscription, error) {
	unlock, err := uc.store.Lock(domain.CollectionSubscribers, domain.CollectionPendingSubscriptions)
	if err != nil {
		return domain.PendingSubscription{}, fmt.Errorf("lock subscriptions: %w", err)
	}
	defer unlock()

	if domain.ContainsEmail(uc.store.LoadSubscribers(), email) {
		return domain.PendingSubscription{}, domain.ErrAlreadySubscribed
	}

	code, err := uc.tokens.NewVerificationCode()
	if err != nil {
		return domain.PendingSubscription{}, fmt.Errorf("generate verification code: %w", err)
	}

	pending := uc.store.LoadPendingSubscriptions()
	record := domain.PendingSubscription{
		Email:       email,
		Code:        code,
		RequestedAt: uc.clock.Now(),
	}
	pending[email] = record

	if err := uc.store.SavePendingSubscriptions(pending); err != nil {
		return domain.PendingSubscription{}, fmt.Errorf("save pending subscriptions: %w", err)
	}
	return record, nil
}
