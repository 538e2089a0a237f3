// Package cmd implements the blobtree CLI.
package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/seaward/blobtree/internal/version"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "blobtree",
	Short: "Virtual file/folder hierarchy over flat blob storage",
	Long: `blobtree presents Azure Blob Storage (or any S3-compatible store) as a
virtual hierarchy of files and folders.

URLs address everything: the first path segment is the container, a
trailing slash marks a folder. Empty folders are held open by zero-byte
.keep marker objects.

Examples:
  blobtree ls catalog/151349/
  blobtree put catalog/docs/report.pdf ./report.pdf
  blobtree mv catalog/151349/ archive/151349/
  blobtree serve --config blobtree.yaml`,
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default blobtree.yaml in the working directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug|info|warn|error)")
}

// Execute runs the CLI, cancelling on SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
