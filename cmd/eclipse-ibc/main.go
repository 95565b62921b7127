package main

import (
	"os"

	"github.com/eclipse-ibc/eclipse-ibc-go/cmd/eclipse-ibc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
