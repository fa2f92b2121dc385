package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"integration-agent/internal/java"
)

// newAnalyzeJavaCommand creates the analyze-java command. It runs the
// analyzer directly, no LLM or backend configuration required.
func newAnalyzeJavaCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "analyze-java <path>",
		Short: "Analyze a Java file or project",
		Long: `Analyze a Java source file or a project directory and print the
results as JSON. With --output the full analysis is written to a file
and only a summary is printed.

Examples:
  integration-agent analyze-java ./src/main/java
  integration-agent analyze-java Service.java
  integration-agent analyze-java ./backend --output analysis.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			var result interface{}
			var summary interface{}

			if strings.HasSuffix(path, ".java") {
				analysis, err := java.AnalyzeFile(path)
				if err != nil {
					return err
				}
				result = analysis
				summary = analysis
			} else {
				analysis, err := java.AnalyzeProject(path)
				if err != nil {
					return err
				}
				result = analysis
				summary = map[string]interface{}{
					"root":               analysis.Root,
					"file_count":         analysis.FileCount,
					"total_lines":        analysis.TotalLines,
					"class_count":        analysis.ClassCount,
					"interface_count":    analysis.InterfaceCount,
					"method_count":       analysis.MethodCount,
					"average_complexity": analysis.AverageComplexity,
				}
			}

			if output != "" {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return fmt.Errorf("write analysis to %s: %w", output, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Analysis saved to %s\n", output)
				result = summary
			}

			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "Write the full analysis to a file")

	return cmd
}
