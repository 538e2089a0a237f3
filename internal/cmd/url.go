package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var urlCmd = &cobra.Command{
	Use:   "url <path-or-url>...",
	Short: "Resolve paths to absolute public URLs",
	Long: `Resolve each argument to its absolute public URL.

Relative paths are joined onto the configured base URL, path segments
are percent-encoded, and the CDN host is substituted when one is
configured. Already-absolute URLs are normalized the same way.

Examples:
  blobtree url "/catalog/151349/epson printer.txt"
  blobtree url catalog/151349/thumb.png?w=200`,
	Args: cobra.MinimumNArgs(1),
	RunE: runURL,
}

func init() {
	rootCmd.AddCommand(urlCmd)
}

func runURL(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer rt.Close()

	for _, arg := range args {
		abs, err := rt.provider.ResolveAbsoluteURL(arg)
		if err != nil {
			return fmt.Errorf("resolve %q: %w", arg, err)
		}
		fmt.Println(abs)
	}
	return nil
}
