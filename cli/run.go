package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Starath/GridPath_BE/pathfinding/session"
)

func newRunCmd() *cobra.Command {
	var layoutPath, algorithm string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one search on a layout file and draw the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrid(layoutPath)
			if err != nil {
				return err
			}
			started := time.Now()
			result, err := session.New(g).Run(cmd.Context(), algorithm, nil)
			if err != nil {
				return fmt.Errorf("%s: %w", algorithm, err)
			}
			printResult(cmd.OutOrStdout(), g, result, time.Since(started))
			return nil
		},
	}
	cmd.Flags().StringVarP(&layoutPath, "layout", "l", defaultLayoutPath, "layout file")
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "astar", "algorithm: "+algorithmNames())
	return cmd
}
