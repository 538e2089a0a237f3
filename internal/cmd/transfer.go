package cmd

import (
	"github.com/spf13/cobra"
)

var mvCmd = &cobra.Command{
	Use:   "mv <src-url> <dst-url>",
	Short: "Move a file or folder subtree",
	Long: `Move a file or a whole folder subtree.

A trailing slash on the source selects prefix mode: every object under
the source prefix is copied to the destination prefix and then deleted.
Each source object is deleted only after its copy is confirmed;
destinations that already exist are skipped, never overwritten.

Examples:
  blobtree mv catalog/a/old.txt catalog/a/renamed.txt
  blobtree mv catalog/151349/ archive/151349/`,
	Args: cobra.ExactArgs(2),
	RunE: runMv,
}

var cpCmd = &cobra.Command{
	Use:   "cp <src-url> <dst-url>",
	Short: "Copy a file or folder subtree",
	Long: `Copy a file or a whole folder subtree, leaving sources in place.

Examples:
  blobtree cp catalog/a/doc.txt catalog/b/doc.txt
  blobtree cp catalog/151349/ backup/151349/`,
	Args: cobra.ExactArgs(2),
	RunE: runCp,
}

func init() {
	rootCmd.AddCommand(mvCmd)
	rootCmd.AddCommand(cpCmd)
}

func runMv(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer rt.Close()
	return rt.provider.Move(cmd.Context(), args[0], args[1])
}

func runCp(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer rt.Close()
	return rt.provider.Copy(cmd.Context(), args[0], args[1])
}
