package main

import (
	"os"

	"github.com/embedlang/macrolang/cmd/macrolint/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
