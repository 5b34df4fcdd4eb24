package main

import (
	"os"

	"github.com/brewlab/percolate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
