// Package main is the operator CLI for the Top Notes catalog.
// Admin accounts are provisioned here; the HTTP surface never creates them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/topnotes/catalog-api/internal/app"
	"github.com/topnotes/catalog-api/internal/config"
	"github.com/topnotes/catalog-api/internal/service"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	args := os.Args[1:]
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]
	args = args[1:]

	switch command {
	case "create":
		return runCreate(args)
	case "set-password":
		return runSetPassword(args)
	case "list":
		return runList(args)
	case "version":
		fmt.Printf("Top Notes Admin CLI\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)
		return nil
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func openAdminService(ctx context.Context, configPath string) (*service.AdminService, func() error, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	logger := app.NewLogger(cfg.Logging)
	store, err := app.OpenStore(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("migration failed: %w", err)
	}

	return service.NewAdminService(store.Admins, store.Tokens, logger), store.Close, nil
}

func runCreate(args []string) error {
	flags := flag.NewFlagSet("create", flag.ExitOnError)
	configPath := flags.String("config", "", "path to config file")
	name := flags.String("name", "", "admin name (login)")
	password := flags.String("password", "", "admin password")
	staff := flags.Bool("staff", true, "grant admin API access")
	superuser := flags.Bool("superuser", false, "grant provisioning rights")
	if err := flags.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	admins, closeStore, err := openAdminService(ctx, *configPath)
	if err != nil {
		return err
	}
	defer closeStore()

	admin, err := admins.Create(ctx, service.CreateAdminInput{
		Name:        *name,
		Password:    *password,
		IsStaff:     *staff,
		IsSuperuser: *superuser,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidAdminName) {
			return fmt.Errorf("a name between 1 and 255 characters is required (-name)")
		}
		return err
	}

	fmt.Printf("admin %q created (id %d, staff=%v, superuser=%v)\n",
		admin.Name, admin.ID, admin.IsStaff, admin.IsSuperuser)
	return nil
}

func runSetPassword(args []string) error {
	flags := flag.NewFlagSet("set-password", flag.ExitOnError)
	configPath := flags.String("config", "", "path to config file")
	name := flags.String("name", "", "admin name (login)")
	password := flags.String("password", "", "new password")
	if err := flags.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	admins, closeStore, err := openAdminService(ctx, *configPath)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := admins.SetPassword(ctx, *name, *password); err != nil {
		return err
	}

	fmt.Printf("password rotated for %q; existing tokens revoked\n", *name)
	return nil
}

func runList(args []string) error {
	flags := flag.NewFlagSet("list", flag.ExitOnError)
	configPath := flags.String("config", "", "path to config file")
	if err := flags.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	admins, closeStore, err := openAdminService(ctx, *configPath)
	if err != nil {
		return err
	}
	defer closeStore()

	list, err := admins.List(ctx)
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Println("no admins provisioned")
		return nil
	}

	fmt.Printf("%-6s %-30s %-6s %-10s %-7s\n", "ID", "NAME", "STAFF", "SUPERUSER", "ACTIVE")
	for _, admin := range list {
		fmt.Printf("%-6d %-30s %-6v %-10v %-7v\n",
			admin.ID, admin.Name, admin.IsStaff, admin.IsSuperuser, admin.IsActive)
	}
	return nil
}

func printUsage() {
	fmt.Println(`Top Notes Admin CLI

Usage:
  topnotes-admin <command> [flags]

Commands:
  create        Provision an admin account
  set-password  Rotate an admin's password and revoke its tokens
  list          List admin accounts
  version       Print version information
  help          Show this help message

Examples:
  topnotes-admin create -name "Top Notes Admin" -password secret123
  topnotes-admin set-password -name "Top Notes Admin" -password newsecret
  topnotes-admin list

Use "topnotes-admin <command> -h" for command flags.`)
}
