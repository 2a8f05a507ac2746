package main

import (
	"os"

	"github.com/maelh/robogrid/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
