package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newDocFromIssueCommand creates the doc-from-issue command.
func newDocFromIssueCommand(factory AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "doc-from-issue <issue-key> <space-key>",
		Short: "Generate a documentation page from an issue",
		Long: `Fetch an issue and its comments and create a documentation page
for it in the given space.

Example:
  integration-agent doc-from-issue PROJ-123 DOCS`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			issueKey, spaceKey := args[0], args[1]

			a, err := factory(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := commandContext(cmd.Context(), a)
			defer cancel()

			result, err := a.Docgen.FromIssue(ctx, issueKey, spaceKey)
			if err != nil {
				return fmt.Errorf("generate documentation for %s: %w", issueKey, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created page %q (id %s) in space %s\n", result.Page.Title, result.Page.ID, spaceKey)
			if result.Page.WebURL != "" {
				fmt.Fprintf(out, "URL: %s\n", result.Page.WebURL)
			}
			return nil
		},
	}
}
