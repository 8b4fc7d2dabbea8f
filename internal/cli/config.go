package cli

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/task-reminder/internal/domain"
	"github.com/runoshun/task-reminder/internal/usecase"
)

// newConfigCommand creates the config command.
func newConfigCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage task-reminder configuration files and settings.`,
		Annotations: map[string]string{
			annotationSkipStoreInit: "true",
		},
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newConfigShowCommand(e))
	cmd.AddCommand(newConfigTemplateCommand(e))
	cmd.AddCommand(newConfigInitCommand(e))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display effective configuration after merging all sources.

Shows which config files were loaded and the final merged configuration.
The data directory config overrides the global config, which overrides
the built-in defaults. The SMTP password is masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := e.container()
			out, err := c.ShowConfigUseCase().Execute(cmd.Context(), usecase.ShowConfigInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			_, _ = fmt.Fprintln(w, "[Loaded from]")
			printConfigSource(w, out.GlobalConfig)
			printConfigSource(w, out.DataConfig)
			_, _ = fmt.Fprintln(w)

			_, _ = fmt.Fprintln(w, "[Effective Config]")
			return formatEffectiveConfig(w, out.EffectiveConfig)
		},
	}
}

func printConfigSource(w io.Writer, info domain.ConfigInfo) {
	if info.Exists {
		_, _ = fmt.Fprintf(w, "- %s\n", info.Path)
		return
	}
	_, _ = fmt.Fprintf(w, "- %s (not found)\n", info.Path)
}

// formatEffectiveConfig writes cfg as TOML.
func formatEffectiveConfig(w io.Writer, cfg *domain.Config) error {
	shown := *cfg
	locking := cfg.Storage.LockingEnabled()
	shown.Storage.Locking = &locking
	if shown.Mail.SMTPPassword != "" {
		shown.Mail.SMTPPassword = "********"
	}

	if err := toml.NewEncoder(w).Encode(shown); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// newConfigTemplateCommand creates the config template subcommand.
func newConfigTemplateCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Output configuration template",
		Long: `Output a configuration file template with default values to stdout.

It does not read existing configuration files and works even if they are broken.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := e.container().ShowConfigTemplateUseCase().Execute(cmd.Context(), usecase.ShowConfigTemplateInput{})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Template)
			return nil
		},
	}
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(e *env) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate configuration file template",
		Long: `Generate a configuration file template.

By default, creates config.toml in the data directory.
With --global, creates the global configuration file at
~/.config/task-reminder/config.toml.

Error conditions:
- Target file already exists: error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := e.container()
			out, err := c.InitConfigUseCase().Execute(cmd.Context(), usecase.InitConfigInput{
				Config: c.AppConfig,
				Global: global,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Generate global configuration")

	return cmd
}
