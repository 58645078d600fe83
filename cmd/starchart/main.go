package main

import (
	"os"

	"github.com/starchartio/starchart/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
