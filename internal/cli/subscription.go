package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/runoshun/task-reminder/internal/usecase"
)

// newSubscribeCommand creates the subscribe command.
func newSubscribeCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "subscribe <email>",
		Short: "Start a subscription and send the verification code",
		Long: `Record a pending subscription for the address and send it a
verification link.

The address only receives reminders after 'reminder verify' (or the
link in the message) confirms it. Subscribing again replaces the
previous code.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := e.container()
			out, err := c.SubscribeEmailUseCase().Execute(cmd.Context(), usecase.SubscribeEmailInput{Email: args[0]})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out.MailErr != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: verification mail not sent: %v\n", out.MailErr)
			}
			_, _ = fmt.Fprintf(w, "Pending verification for %s\n", out.Pending.Email)
			return nil
		},
	}
}

// newVerifyCommand creates the verify command.
func newVerifyCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <email> <code>",
		Short: "Confirm a pending subscription",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := e.container()
			out, err := c.VerifySubscriptionUseCase().Execute(cmd.Context(), usecase.VerifySubscriptionInput{
				Email: args[0],
				Code:  args[1],
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Subscribed %s\n", out.Email)
			return nil
		},
	}
}

// newUnsubscribeCommand creates the unsubscribe command.
func newUnsubscribeCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "unsubscribe <email>",
		Short: "Remove a confirmed subscriber",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := e.container()
			out, err := c.UnsubscribeEmailUseCase().Execute(cmd.Context(), usecase.UnsubscribeEmailInput{Email: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unsubscribed %s\n", out.Email)
			return nil
		},
	}
}

// newSubscribersCommand creates the subscribers command.
func newSubscribersCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "subscribers",
		Short: "List confirmed and pending subscriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := e.container()
			out, err := c.ListSubscribersUseCase().Execute(cmd.Context(), usecase.ListSubscribersInput{})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			_, _ = fmt.Fprintln(w, styles.Header.Render(fmt.Sprintf("Confirmed (%d)", len(out.Confirmed))))
			for _, email := range out.Confirmed {
				_, _ = fmt.Fprintf(w, "  %s\n", email)
			}

			_, _ = fmt.Fprintln(w, styles.Header.Render(fmt.Sprintf("Pending (%d)", len(out.Pending))))
			for _, p := range out.Pending {
				since := ""
				if !p.RequestedAt.IsZero() {
					since = styles.Muted.Render(" since " + p.RequestedAt.Local().Format("2006-01-02 15:04"))
				}
				_, _ = fmt.Fprintf(w, "  %s%s\n", p.Email, since)
			}
			return nil
		},
	}
}

// newRemindCommand creates the remind command.
func newRemindCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Mail the pending tasks to every subscriber",
		Long: `Send one reminder listing the pending tasks to every confirmed
subscriber. Nothing is sent when no task is pending.

A failed recipient does not stop the run; failures are reported and
the command exits non-zero. Suitable for cron.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := e.container()
			out, err := c.SendRemindersUseCase().Execute(cmd.Context(), usecase.SendRemindersInput{})
			if err != nil {
				return err
			}
			return printReminderSummary(cmd.OutOrStdout(), out)
		},
	}
}

func printReminderSummary(w io.Writer, out *usecase.SendRemindersOutput) error {
	if out.Pending == 0 {
		_, _ = fmt.Fprintln(w, styles.Muted.Render("No pending tasks, nothing sent."))
		return nil
	}
	_, _ = fmt.Fprintf(w, "Sent %d reminder(s) listing %d pending task(s)\n", out.Sent, out.Pending)
	if len(out.Failed) == 0 {
		return nil
	}

	emails := make([]string, 0, len(out.Failed))
	for email := range out.Failed {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	for _, email := range emails {
		_, _ = fmt.Fprintf(w, "%s %s: %v\n", styles.Failed.Render("failed"), email, out.Failed[email])
	}
	return fmt.Errorf("%d reminder(s) failed", len(out.Failed))
}
