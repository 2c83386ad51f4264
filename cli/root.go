// Package cli holds the gridpath command tree: the HTTP server, one-off
// searches and comparisons on layout files, an interactive prompt and the
// HTML layout importer.
package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Starath/GridPath_BE/grid"
	"github.com/Starath/GridPath_BE/pathfinding"
	"github.com/Starath/GridPath_BE/pathfinding/session"
	"github.com/Starath/GridPath_BE/render"
)

const defaultLayoutPath = "layout.json"

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "gridpath",
		Short:        "Grid pathfinding with BFS, Dijkstra and A*",
		SilenceUsage: true,
	}
	root.AddCommand(
		newServeCmd(),
		newRunCmd(),
		newCompareCmd(),
		newInteractiveCmd(),
		newImportCmd(),
	)
	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}

func algorithmNames() string {
	algorithms := session.Algorithms()
	names := make([]string, 0, len(algorithms))
	for _, alg := range algorithms {
		names = append(names, string(alg))
	}
	return strings.Join(names, "|")
}

func loadGrid(path string) (*grid.Grid, error) {
	layout, err := grid.LoadLayout(path)
	if err != nil {
		return nil, err
	}
	return grid.FromLayout(layout), nil
}

func printResult(w io.Writer, g *grid.Grid, result *pathfinding.Result, duration time.Duration) {
	fmt.Fprint(w, render.ASCII(g, result))
	fmt.Fprintln(w, render.Summary(result))
	fmt.Fprintf(w, "Execution time: %s\n", duration)
}
