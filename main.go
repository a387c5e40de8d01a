package main

import (
	"os"

	"github.com/hibare/mongostash/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
