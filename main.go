package main

import (
	"os"

	"github.com/Starath/GridPath_BE/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
