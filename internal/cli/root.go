// Package cli provides the cobra command tree for the integration agent.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"integration-agent/internal/app"
)

// AppFactory builds the wired application on demand. Commands that only
// read configuration never pay the wiring cost.
type AppFactory func(ctx context.Context) (*app.App, error)

// NewRootCommand creates the root command.
func NewRootCommand(factory AppFactory, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "integration-agent",
		Short: "Natural language agent for issue trackers, wikis and Java tooling",
		Long: `integration-agent forwards natural language commands to issue
trackers and wiki spaces (Atlassian REST, a custom API, or MCP servers)
and bundles a Java source analysis helper.

Commands are routed through an LLM: plain conversation is answered
directly, operational requests run an agent loop over the integration
tools.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newInteractiveCommand(factory),
		newExecuteCommand(factory),
		newDocFromIssueCommand(factory),
		newAnalyzeJavaCommand(),
		newValidateConfigCommand(),
		newServeCommand(factory),
	)

	return root
}

// commandContext bounds a single command by the configured agent timeout.
func commandContext(ctx context.Context, a *app.App) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.CommandTimeout())
}
