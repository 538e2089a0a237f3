package cmd

import (
	"github.com/spf13/cobra"

	"github.com/seaward/blobtree/pkg/assets"
)

var mkdirParent string

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <name>",
	Short: "Create a folder",
	Long: `Create a virtual folder.

Without --parent the name becomes a new container. With --parent the
folder is created under that URL and held open by a marker object until
it gains content.

Examples:
  blobtree mkdir catalog
  blobtree mkdir 151349 --parent catalog/`,
	Args: cobra.ExactArgs(1),
	RunE: runMkdir,
}

func init() {
	rootCmd.AddCommand(mkdirCmd)
	mkdirCmd.Flags().StringVarP(&mkdirParent, "parent", "p", "", "Parent folder URL")
}

func runMkdir(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer rt.Close()

	return rt.provider.CreateFolder(cmd.Context(), assets.Folder{
		Name:      args[0],
		ParentURL: mkdirParent,
	})
}
