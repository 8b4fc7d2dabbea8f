package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/task-reminder/internal/usecase"
)

// newInitCommand creates the init command.
func newInitCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the data directory",
		Long: `Initialize the data directory.

This command creates the data directory with one empty file per
collection (tasks, subscribers, pending subscriptions) in the
configured storage format.

Running init again is safe: missing collections are created and
existing ones are left untouched.`,
		Annotations: map[string]string{annotationSkipStoreInit: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := e.container()
			out, err := c.InitStoreUseCase().Execute(cmd.Context(), usecase.InitStoreInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.AlreadyInitialized {
				_, _ = fmt.Fprintf(w, "Already initialized: %s\n", c.Config.DataDir)
				return nil
			}
			_, _ = fmt.Fprintf(w, "Initialized task-reminder in %s\n", c.Config.DataDir)
			return nil
		},
	}
}
