// Package cli provides the command-line interface for task-reminder.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/task-reminder/internal/app"
)

// Command group IDs.
const (
	groupSetup        = "setup"
	groupTask         = "task"
	groupSubscription = "subscription"
	groupServer       = "server"
)

// annotationSkipStoreInit marks commands that must not create the collections on startup.
const annotationSkipStoreInit = "skip-store-init"

// DefaultDataDir is the data directory used when --data-dir is not given.
const DefaultDataDir = "./data"

// ContainerFactory builds the container for a data directory.
type ContainerFactory func(dataDir string) (*app.Container, error)

// env resolves the container once the --data-dir flag has been parsed.
type env struct {
	factory ContainerFactory
	c       *app.Container
	dataDir string
}

// container returns the container built by PersistentPreRunE.
func (e *env) container() *app.Container {
	return e.c
}

func (e *env) open() error {
	if e.c != nil {
		return nil
	}
	c, err := e.factory(e.dataDir)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	e.c = c
	return nil
}

func (e *env) close() {
	if e.c != nil {
		_ = e.c.Close()
	}
}

func skipStoreInit(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationSkipStoreInit] == "true" || c.Name() == "help" || c.Name() == "completion" {
			return true
		}
	}
	return false
}

// NewRootCommand creates the root command for task-reminder.
// It receives the container factory for dependency injection and version for display.
func NewRootCommand(factory ContainerFactory, version string) *cobra.Command {
	e := &env{factory: factory}

	root := &cobra.Command{
		Use:   "reminder",
		Short: "Task list with email reminders",
		Long: `task-reminder keeps a shared task list and mails the pending tasks
to verified subscribers.

Tasks, confirmed subscribers and pending subscriptions are stored as
three files in the data directory. The same data is served over HTTP
by 'reminder serve'.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := e.open(); err != nil {
				return err
			}
			c := e.container()

			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}

			if skipStoreInit(cmd) {
				return nil
			}
			return c.EnsureInitialized()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			e.close()
		},
	}

	root.PersistentFlags().StringVarP(&e.dataDir, "data-dir", "d", DefaultDataDir, "Directory holding tasks, subscribers and config")

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
		&cobra.Group{ID: groupSubscription, Title: "Subscriptions:"},
		&cobra.Group{ID: groupServer, Title: "Server:"},
	)

	// Setup commands
	initCmd := newInitCommand(e)
	initCmd.GroupID = groupSetup

	configCmd := newConfigCommand(e)
	configCmd.GroupID = groupSetup

	// Task management commands
	addCmd := newAddCommand(e)
	addCmd.GroupID = groupTask

	listCmd := newListCommand(e)
	listCmd.GroupID = groupTask

	showCmd := newShowCommand(e)
	showCmd.GroupID = groupTask

	doneCmd := newDoneCommand(e)
	doneCmd.GroupID = groupTask

	rmCmd := newRmCommand(e)
	rmCmd.GroupID = groupTask

	// Subscription commands
	subscribeCmd := newSubscribeCommand(e)
	subscribeCmd.GroupID = groupSubscription

	verifyCmd := newVerifyCommand(e)
	verifyCmd.GroupID = groupSubscription

	unsubscribeCmd := newUnsubscribeCommand(e)
	unsubscribeCmd.GroupID = groupSubscription

	subscribersCmd := newSubscribersCommand(e)
	subscribersCmd.GroupID = groupSubscription

	remindCmd := newRemindCommand(e)
	remindCmd.GroupID = groupSubscription

	// Server commands
	serveCmd := newServeCommand(e)
	serveCmd.GroupID = groupServer

	root.AddCommand(
		initCmd,
		configCmd,
		addCmd,
		listCmd,
		showCmd,
		doneCmd,
		rmCmd,
		subscribeCmd,
		verifyCmd,
		unsubscribeCmd,
		subscribersCmd,
		remindCmd,
		serveCmd,
	)

	return root
}
