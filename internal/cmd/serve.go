package cmd

import (
	"github.com/spf13/cobra"

	"github.com/seaward/blobtree/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the HTTP API server.

The server exposes search, metadata, content, folder, and transfer
endpoints over the configured backend and shuts down gracefully on
SIGINT or SIGTERM.

Examples:
  blobtree serve
  BLOBTREE_SERVER_PORT=9090 blobtree serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer rt.Close()

	srv := server.New(rt.provider, rt.cfg.Server, rt.log)
	return srv.Run(cmd.Context())
}
