package main

import (
	"os"

	"github.com/ybdev/birthdayd/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
