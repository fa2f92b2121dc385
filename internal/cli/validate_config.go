package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"integration-agent/config"
	"integration-agent/internal/app"
)

// newValidateConfigCommand creates the validate-config command.
func newValidateConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-config",
		Short: "Validate the configuration for the selected backend mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Configuration is valid.")
			fmt.Fprintf(out, "Backend: %s\n", app.SelectBackend(cfg))
			fmt.Fprintf(out, "LLM providers: %d configured\n", len(cfg.LLM.Providers))
			return nil
		},
	}
}
