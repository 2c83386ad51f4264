package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Starath/GridPath_BE/grid"
	"github.com/Starath/GridPath_BE/pathfinding/session"
)

func newCompareCmd() *cobra.Command {
	var layoutPath string
	cmd := &cobra.Command{
		Use:   "compare [algorithm...]",
		Short: "Run several algorithms concurrently on a layout file and compare them",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrid(layoutPath)
			if err != nil {
				return err
			}
			return compare(cmd.Context(), cmd.OutOrStdout(), g, args...)
		},
	}
	cmd.Flags().StringVarP(&layoutPath, "layout", "l", defaultLayoutPath, "layout file")
	return cmd
}

func compare(ctx context.Context, w io.Writer, g *grid.Grid, algorithms ...string) error {
	comparisons, err := session.Compare(ctx, g, algorithms...)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Comparison on %dx%d grid, %s -> %s:\n", g.Width, g.Height, g.Start, g.Goal)
	fastest := comparisons[0]
	for _, cmp := range comparisons {
		hops := "no path"
		if cmp.Result.Found {
			hops = fmt.Sprintf("%d hops", cmp.Result.Hops())
		}
		fmt.Fprintf(w, "  - %-8s %-10s %5d visited  %s\n", cmp.Algorithm, hops, cmp.Result.NodesVisited, cmp.Duration)
		if cmp.Duration < fastest.Duration {
			fastest = cmp
		}
	}
	fmt.Fprintf(w, "Fastest: %s\n", fastest.Algorithm)
	fmt.Fprintln(w, strings.Repeat("-", 40))
	return nil
}
