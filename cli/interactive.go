package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Starath/GridPath_BE/grid"
	"github.com/Starath/GridPath_BE/pathfinding/session"
)

func newInteractiveCmd() *cobra.Command {
	var layoutPath string
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Read algorithm names from stdin and search the layout until 'exit'",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrid(layoutPath)
			if err != nil {
				return err
			}
			return interactive(cmd, g)
		},
	}
	cmd.Flags().StringVarP(&layoutPath, "layout", "l", defaultLayoutPath, "layout file")
	return cmd
}

func interactive(cmd *cobra.Command, g *grid.Grid) error {
	reader := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	s := session.New(g)

	fmt.Fprintf(out, "Loaded %dx%d grid with %d obstacles.\n", g.Width, g.Height, g.ObstacleCount())
	fmt.Fprintln(out, strings.Repeat("=", 50))

	for {
		fmt.Fprintf(out, "\nEnter an algorithm (%s), 'compare' or 'exit': ", algorithmNames())
		line, err := reader.ReadString('\n')
		input := strings.ToLower(strings.TrimSpace(line))

		switch {
		case input == "exit":
			fmt.Fprintln(out, "\n===== Done =====")
			return nil
		case input == "":
		case input == "compare":
			if err := compare(cmd.Context(), out, s.Snapshot()); err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
			}
		default:
			started := time.Now()
			result, runErr := s.Run(cmd.Context(), input, nil)
			if runErr != nil {
				fmt.Fprintf(out, "Error: %v\n", runErr)
				break
			}
			printResult(out, g, result, time.Since(started))
			fmt.Fprintln(out, strings.Repeat("#", 60))
		}

		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
