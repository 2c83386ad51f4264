package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Starath/GridPath_BE/downloader"
)

func newImportCmd() *cobra.Command {
	var outDir string
	var concurrency int
	cmd := &cobra.Command{
		Use:   "import URL...",
		Short: "Fetch HTML grid pages and save them as layout files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := downloader.DownloadLayouts(cmd.Context(), args, outDir, concurrency)
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "layouts", "output directory")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", downloader.DefaultMaxConcurrent, "parallel downloads")
	return cmd
}
