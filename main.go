package main

import (
	"os"

	"github.com/ARQAP/museum-insights/src/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		cmd.PrintError(err)
		os.Exit(1)
	}
}
