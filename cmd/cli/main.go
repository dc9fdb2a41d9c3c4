// Command cli is the interactive terminal client for the tgproxy HTTP API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/tgproxy/internal/buildinfo"
	"github.com/dmitrijs2005/tgproxy/internal/client/cli"
	"github.com/dmitrijs2005/tgproxy/internal/client/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tgproxy cli:", err)
		os.Exit(1)
	}

	fmt.Printf("Using proxy at %s\n", cfg.ServerURL)
	app.Run(context.Background())
}
