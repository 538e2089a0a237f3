package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var statCmd = &cobra.Command{
	Use:   "stat <url>",
	Short: "Show metadata for one file",
	Args:  cobra.ExactArgs(1),
	RunE:  runStat,
}

func init() {
	rootCmd.AddCommand(statCmd)
}

func runStat(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer rt.Close()

	rec, err := rt.provider.Stat(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Name:\t%s\n", rec.Name)
	fmt.Fprintf(w, "URL:\t%s\n", rec.URL)
	fmt.Fprintf(w, "Relative:\t%s\n", rec.RelativeURL)
	fmt.Fprintf(w, "Content-Type:\t%s\n", rec.ContentType)
	fmt.Fprintf(w, "Size:\t%d\n", rec.Size)
	if !rec.CreatedAt.IsZero() {
		fmt.Fprintf(w, "Created:\t%s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	if !rec.ModifiedAt.IsZero() {
		fmt.Fprintf(w, "Modified:\t%s\n", rec.ModifiedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}
