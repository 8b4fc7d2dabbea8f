package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/task-reminder/internal/domain"
)

// SendRemindersInput contains the parameters for a reminder run.
type SendRemindersInput struct{}

// SendRemindersOutput summarizes a reminder run.
type SendRemindersOutput struct {
	Failed  map[string]error // Recipients whose message could not be sent
	Pending int              // Number of pending tasks listed in each message
	Sent    int
}

// SendReminders is the use case for mailing pending tasks to every confirmed subscriber.
type SendReminders struct {
	store  domain.CollectionStore
	mailer domain.Mailer
	logger domain.Logger
}

// NewSendReminders creates a new SendReminders use case.
func NewSendReminders(store domain.CollectionStore, mailer domain.Mailer, logger domain.Logger) *SendReminders {
	return &SendReminders{
		store:  store,
		mailer: mailer,
		logger: orNop(logger),
	}
}

// Execute sends one reminder per subscriber. Nothing is sent when no task is pending.
// A failed recipient is logged and skipped; the run only stops early when ctx is done.
func (uc *SendReminders) Execute(ctx context.Context, _ SendRemindersInput) (*SendRemindersOutput, error) {
	out := &SendRemindersOutput{Failed: make(map[string]error)}

	tasks := domain.PendingTasks(uc.store.LoadTasks())
	out.Pending = len(tasks)
	if len(tasks) == 0 {
		uc.logger.Info("reminder", "no pending tasks, nothing to send")
		return out, nil
	}

	subscribers := uc.store.LoadSubscribers()
	for _, email := range subscribers {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if err := uc.mailer.SendReminder(ctx, email, tasks); err != nil {
			uc.logger.Error("reminder", fmt.Sprintf("send reminder to %s: %v", email, err))
			out.Failed[email] = err
			continue
		}
		out.Sent++
	}

	uc.logger.Info("reminder", fmt.Sprintf("sent %d reminders (%d failed, %d pending tasks)",
		out.Sent, len(out.Failed), out.Pending))
	return out, nil
}
