package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const interactiveHelp = `Available commands:

Issue operations:
  "Get issue PROJ-123"
  "Search issues in project PROJ"
  "Create issue in PROJ: Fix login bug"
  "Add comment to PROJ-123: Working on this"
  "Move PROJ-123 to In Progress"

Page operations:
  "Get page 12345"
  "Search pages about authentication"
  "Create page in SPACE: API Documentation"

Java operations:
  "Analyze Java code: [paste code]"
  "Generate class UserService in package com.example"
  "Create documentation for issue PROJ-123 in SPACE"

Session commands:
  help  - show this help
  exit  - quit`

// newInteractiveCommand creates the interactive REPL command.
func newInteractiveCommand(factory AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := factory(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			sessionID := uuid.NewString()

			fmt.Fprintln(out, "Integration agent interactive mode.")
			fmt.Fprintln(out, "Type 'help' for available commands or 'exit' to quit.")
			fmt.Fprintln(out)

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "agent> ")
				if !scanner.Scan() {
					fmt.Fprintln(out)
					return scanner.Err()
				}

				command := strings.TrimSpace(scanner.Text())
				switch strings.ToLower(command) {
				case "":
					continue
				case "exit", "quit":
					fmt.Fprintln(out, "Goodbye.")
					return nil
				case "help":
					fmt.Fprintln(out, interactiveHelp)
					continue
				}

				ctx, cancel := commandContext(cmd.Context(), a)
				result, err := a.Commands.ProcessQuery(ctx, sessionID, command)
				cancel()
				if err != nil {
					fmt.Fprintf(out, "Error: %v\n", err)
					continue
				}

				fmt.Fprintln(out, result)
				fmt.Fprintln(out)
			}
		},
	}
}
