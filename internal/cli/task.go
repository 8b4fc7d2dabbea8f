package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/task-reminder/internal/domain"
	"github.com/runoshun/task-reminder/internal/usecase"
)

// newAddCommand creates the add command.
func newAddCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a task",
		Long: `Add a new task to the end of the list.

The name is trimmed. Names are unique ignoring case, so adding
"Buy milk" twice (or "buy MILK") fails.

Examples:
  reminder add "Buy milk"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := e.container()
			out, err := c.AddTaskUseCase().Execute(cmd.Context(), usecase.AddTaskInput{Name: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added task %s: %s\n", out.Task.ID, out.Task.Name)
			return nil
		},
	}
}

// newListCommand creates the list command.
func newListCommand(e *env) *cobra.Command {
	var pendingOnly bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `Display the task list in insertion order.

Use --pending to hide completed tasks.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := e.container()
			out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{PendingOnly: pendingOnly})
			if err != nil {
				return err
			}
			printTaskList(cmd.OutOrStdout(), out.Tasks)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&pendingOnly, "pending", "p", false, "Show only tasks that are not completed")

	return cmd
}

// printTaskList prints tasks as an aligned table.
func printTaskList(w io.Writer, tasks []domain.Task) {
	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(w, styles.Muted.Render("No tasks."))
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, styles.Header.Render("ID")+"\t"+styles.Header.Render("STATUS")+"\t"+styles.Header.Render("NAME"))
	for _, t := range tasks {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", styles.ID.Render(t.ID), statusLabel(t), t.Name)
	}
}

func statusLabel(t domain.Task) string {
	if t.Completed {
		return styles.Completed.Render("done")
	}
	return styles.Pending.Render("pending")
}

// newShowCommand creates the show command.
func newShowCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := e.container()
			out, err := c.ShowTaskUseCase().Execute(cmd.Context(), usecase.ShowTaskInput{TaskID: args[0]})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "ID:     %s\n", out.Task.ID)
			_, _ = fmt.Fprintf(w, "Name:   %s\n", out.Task.Name)
			_, _ = fmt.Fprintf(w, "Status: %s\n", statusLabel(out.Task))
			return nil
		},
	}
}

// newDoneCommand creates the done command.
func newDoneCommand(e *env) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task completed",
		Long: `Mark a task completed, or pending again with --undo.

Marking a task that already has the requested state succeeds.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := e.container()
			out, err := c.CompleteTaskUseCase().Execute(cmd.Context(), usecase.CompleteTaskInput{
				TaskID:    args[0],
				Completed: !undo,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as %s\n", out.Task.ID, statusLabel(out.Task))
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the task pending again")

	return cmd
}

// newRmCommand creates the rm command.
func newRmCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := e.container()
			_, err := c.DeleteTaskUseCase().Execute(cmd.Context(), usecase.DeleteTaskInput{TaskID: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", args[0])
			return nil
		},
	}
}
