package cli

import (
	"github.com/spf13/cobra"
)

// newServeCommand creates the serve command running the HTTP server.
func newServeCommand(factory AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long:  `Run the gin HTTP server exposing the command, Java analysis and status endpoints.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := factory(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			srv, err := a.HTTPServer()
			if err != nil {
				return err
			}
			return srv.Run()
		},
	}
}
