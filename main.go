package main

import (
	"os"

	"github.com/Zachkp/portfolio-builder/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
