package main

import (
	"os"

	"github.com/openquant/creditcurve/cmd/curverisk/cmd"
	"github.com/openquant/creditcurve/internal/logging"
)

func main() {
	defer logging.Sync()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
