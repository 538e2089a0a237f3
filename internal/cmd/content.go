package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var catCmd = &cobra.Command{
	Use:   "cat <url>",
	Short: "Stream a file to stdout",
	Args:  cobra.ExactArgs(1),
	RunE:  runCat,
}

var putCmd = &cobra.Command{
	Use:   "put <url> [file]",
	Short: "Upload a file (or stdin) to a URL",
	Long: `Upload content to a file URL. With no file argument, or with "-",
stdin is uploaded. The container is created when absent and the target
name must pass the extension policy.

Examples:
  blobtree put catalog/docs/report.pdf ./report.pdf
  cat notes.txt | blobtree put catalog/docs/notes.txt`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPut,
}

func init() {
	rootCmd.AddCommand(catCmd)
	rootCmd.AddCommand(putCmd)
}

func runCat(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer rt.Close()

	rc, err := rt.provider.OpenRead(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer rc.Close()

	_, err = io.Copy(os.Stdout, rc)
	return err
}

func runPut(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer rt.Close()

	var src io.Reader = os.Stdin
	if len(args) == 2 && args[1] != "-" {
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}

	wc, err := rt.provider.OpenWrite(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if _, err := io.Copy(wc, src); err != nil {
		_ = wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return err
	}

	abs, err := rt.provider.ResolveAbsoluteURL(args[0])
	if err == nil {
		fmt.Println(abs)
	}
	return nil
}
