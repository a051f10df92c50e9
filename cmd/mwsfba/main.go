package main

import (
	"os"

	"github.com/solatis/mwsfba/cmd/mwsfba/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
