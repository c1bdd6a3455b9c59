// Package main is the schema migration tool for the Top Notes catalog.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/topnotes/catalog-api/internal/app"
	"github.com/topnotes/catalog-api/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := flag.NewFlagSet("topnotes-migrate", flag.ExitOnError)
	configPath := flags.String("config", "", "path to config file")
	flags.Usage = printUsage

	args := os.Args[1:]
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]
	if err := flags.Parse(args[1:]); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := app.OpenStore(ctx, cfg.Database, app.NewLogger(cfg.Logging))
	if err != nil {
		return err
	}
	defer store.Close()

	switch command {
	case "up":
		if err := store.Migrate(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		version, err := store.Version(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("migrations applied, schema version %d\n", version)
		return nil

	case "status":
		version, err := store.Version(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("schema version: %d\n", version)
		return nil

	case "help", "-h", "--help":
		printUsage()
		return nil

	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage() {
	fmt.Println(`Top Notes catalog migration tool

Usage:
  topnotes-migrate <command> [flags]

Commands:
  up        Apply pending schema migrations
  status    Print the current schema version
  help      Show this help message

Flags:
  -config   Path to config file`)
}
