package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/seaward/blobtree/pkg/assets"
)

var lsKeyword string

var lsCmd = &cobra.Command{
	Use:   "ls [folder-url]",
	Short: "List a virtual folder, or all containers",
	Long: `List the folders and files directly under a folder URL.

Without an argument the top-level containers are listed. The keyword
flag prefix-filters entries inside the folder (or container names at the
top level).

Examples:
  blobtree ls
  blobtree ls catalog/151349/
  blobtree ls catalog/151349/ --keyword eps`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
	lsCmd.Flags().StringVarP(&lsKeyword, "keyword", "k", "", "Prefix filter inside the folder")
}

func runLs(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer rt.Close()

	folderURL := ""
	if len(args) == 1 {
		folderURL = args[0]
	}

	result, err := rt.provider.Search(cmd.Context(), folderURL, lsKeyword)
	if err != nil {
		return err
	}
	return printListing(result)
}

func printListing(result *assets.SearchResult) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tNAME\tSIZE\tMODIFIED\tURL")
	for _, f := range result.Folders {
		modified := ""
		if !f.ModifiedAt.IsZero() {
			modified = f.ModifiedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "dir\t%s\t\t%s\t%s\n", f.Name, modified, f.URL)
	}
	for _, b := range result.Blobs {
		fmt.Fprintf(w, "file\t%s\t%d\t%s\t%s\n", b.Name, b.Size, b.ModifiedAt.Format("2006-01-02 15:04:05"), b.URL)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("%d entries\n", result.TotalCount)
	return nil
}
