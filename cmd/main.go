package main

import (
	"os"

	"github.com/stewartburton/brainblitz/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
