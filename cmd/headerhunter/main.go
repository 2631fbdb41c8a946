package main

import (
	"os"

	"github.com/CypherHippie/HeaderHunter/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
