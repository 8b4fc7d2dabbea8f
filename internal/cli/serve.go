package cli

import (
	"context"
	"fmt"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/spf13/cobra"

	"github.com/runoshun/task-reminder/internal/app"
	"github.com/runoshun/task-reminder/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

// newServeCommand creates the serve command.
func newServeCommand(e *env) *cobra.Command {
	var addr string
	var remindEvery time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web interface and JSON API",
		Long: `Serve the task list over HTTP.

Routes:
  GET    /health         health check
  GET    /api/tasks      list tasks
  POST   /api/tasks      add a task (form field task-name)
  PUT    /api/tasks      mark a task (JSON {"id", "completed"})
  DELETE /api/tasks?id=  delete a task
  POST   /api/subscribe  start a subscription (form field email)
  GET    /verify         confirm a subscription from the mailed link
  GET    /unsubscribe    remove a subscriber from the mailed link

Static files are served from the configured static directory.
With --remind-every, reminders are mailed periodically while serving.
The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := e.container()
			if addr == "" {
				addr = c.AppConfig.Server.Addr
			}

			c.MirrorLog(cmd.ErrOrStderr())

			srv := c.WebServer()
			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Listen(addr)
			}()

			stopReminders := startReminderLoop(c, remindEvery)

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s (Ctrl+C to stop)\n", addr)

			wait := gfshutdown.GracefulShutdown(
				context.Background(),
				shutdownTimeout,
				map[string]gfshutdown.Operation{
					"http-server": srv.Shutdown,
					"reminders": func(context.Context) error {
						stopReminders()
						return nil
					},
				},
			)

			select {
			case err := <-errCh:
				stopReminders()
				return err
			case code := <-wait:
				if code != 0 {
					return fmt.Errorf("shutdown finished with exit code %d", code)
				}
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from [server] addr)")
	cmd.Flags().DurationVar(&remindEvery, "remind-every", 0, "Send reminders at this interval while serving (0 disables)")

	return cmd
}

// startReminderLoop mails reminders every interval until the returned stop function is called.
// The stop function is safe to call more than once.
func startReminderLoop(c *app.Container, interval time.Duration) func() {
	if interval <= 0 {
		return func() {}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				out, err := c.SendRemindersUseCase().Execute(ctx, usecase.SendRemindersInput{})
				if err != nil {
					c.SlogLogger.Error("reminder run failed", "error", err)
					continue
				}
				c.SlogLogger.Info("reminder run finished", "sent", out.Sent, "failed", len(out.Failed), "pending", out.Pending)
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}
