package main

import (
	"fmt"
	"os"

	"opdash/internal/cli"
	"opdash/internal/config"
)

func main() {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	factory := NewGatewayFactory(getEnvironment())
	root := cli.NewRootCommand(cfg, factory.Open)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cli.NewErrorHandler().HandleSimple(err))
		os.Exit(1)
	}
}
