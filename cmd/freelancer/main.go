package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Bryan21B/freelancer-cli/internal/app"
	"github.com/Bryan21B/freelancer-cli/internal/cli"
)

func main() {
	// Help and init don't need the database, so skip app initialization
	// (which may prompt for an encryption password)
	skipInit := false
	for _, a := range os.Args[1:] {
		if a == "-h" || a == "--help" || a == "help" || a == "init" {
			skipInit = true
			break
		}
	}

	if !skipInit {
		ctx := context.Background()
		a, err := app.New(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize app: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()
		cli.SetApp(a)
	}

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
