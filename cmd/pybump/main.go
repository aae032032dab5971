package main

import (
	"context"
	"os"

	"github.com/pybump/pybump/internal/cli"
	"github.com/pybump/pybump/internal/printer"
)

func main() {
	if err := cli.New().Run(context.Background(), os.Args); err != nil {
		printer.PrintError(err.Error())
		os.Exit(1)
	}
}
