package cli

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// newExecuteCommand creates the execute command for one-shot commands.
func newExecuteCommand(factory AppFactory) *cobra.Command {
	var contextJSON string
	var sessionID string

	cmd := &cobra.Command{
		Use:   "execute <command>",
		Short: "Execute a single natural language command",
		Long: `Execute a single natural language command and print the result.

Examples:
  integration-agent execute "Get issue PROJ-123"
  integration-agent execute "Search issues in project PROJ"
  integration-agent execute "Create page in DOCS: Release notes" --context '{"release":"1.4"}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := args[0]

			if contextJSON != "" {
				var extra map[string]interface{}
				if err := json.Unmarshal([]byte(contextJSON), &extra); err != nil {
					return fmt.Errorf("invalid JSON in --context: %w", err)
				}
				command = fmt.Sprintf("%s\nContext: %s", command, contextJSON)
			}

			a, err := factory(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			ctx, cancel := commandContext(cmd.Context(), a)
			defer cancel()

			result, err := a.Commands.ProcessQuery(ctx, sessionID, command)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&contextJSON, "context", "", "JSON context merged into the command")
	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID for conversation continuity")

	return cmd
}
