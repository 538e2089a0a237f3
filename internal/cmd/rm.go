package cmd

import (
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <url>...",
	Short: "Remove files, folder subtrees, or containers",
	Long: `Remove each URL best-effort.

A file URL removes one object; a folder URL (trailing slash) removes
everything under its prefix; a bare container URL removes the whole
container. Removing what is already gone is not an error.

Examples:
  blobtree rm catalog/151349/epson%20printer.txt
  blobtree rm catalog/151349/ catalog/151350/
  blobtree rm catalog/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer rt.Close()

	return rt.provider.Remove(cmd.Context(), args...)
}
