// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/hellogrowth/platform/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down|status|check] [version]",
	Short: "Run database migrations",
	Long:  `Apply, roll back or inspect the embedded database migrations`,
	Args:  validateMigrateArgs,
	Run: func(cmd *cobra.Command, args []string) {
		command := "up"
		if len(args) > 0 {
			command = args[0]
		}

		downTo := -1
		if len(args) > 1 {
			downTo, _ = strconv.Atoi(args[1])
		}

		dsn, _ := cmd.Flags().GetString("dsn")
		if err := migrate(cmd.Context(), dsn, command, downTo); err != nil {
			cmd.PrintErr(err)
			os.Exit(1)
		}
	},
}

func init() {
	migrateCmd.Flags().String("dsn", "", "PostgreSQL DSN connection string")
	_ = migrateCmd.MarkFlagRequired("dsn")

	rootCmd.AddCommand(migrateCmd)
}

func validateMigrateArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}

	if err := cobra.RangeArgs(0, 2)(cmd, args); err != nil {
		return err
	}

	switch args[0] {
	case "up", "down", "status", "check":
	default:
		return fmt.Errorf("invalid command: %q", args[0])
	}

	// A target version is only meaningful for "down".
	if len(args) == 2 {
		if args[0] != "down" {
			return fmt.Errorf("invalid argument combination: %q", args)
		}
		if version, err := strconv.Atoi(args[1]); err != nil || version < 0 {
			return fmt.Errorf("invalid version number: %q", args[1])
		}
	}

	return nil
}

func migrate(ctx context.Context, dsn, command string, downTo int) error {
	config, err := pgx.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("DSN validation failed: %v", err)
	}

	db := stdlib.OpenDB(*config)
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("DB connection failed: %v", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.EmbedMigrations)
	if err != nil {
		return fmt.Errorf("failed to create goose provider: %w", err)
	}

	switch command {
	case "up":
		_, err = provider.Up(ctx)
		return err
	case "down":
		if downTo == -1 {
			_, err = provider.Down(ctx)
			return err
		}
		_, err = provider.DownTo(ctx, int64(downTo))
		return err
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return err
		}
		fmt.Println("    Applied At                  Migration")
		fmt.Println("    =======================================")
		for _, s := range statuses {
			appliedAt := "Pending"
			if s.State == goose.StateApplied {
				appliedAt = s.AppliedAt.Format(time.RFC3339)
			}
			fmt.Printf("    %-24s -- %s\n", appliedAt, s.Source.Path)
		}
		return nil
	case "check":
		hasPending, err := provider.HasPending(ctx)
		if err != nil {
			return fmt.Errorf("failed to check pending migrations: %w", err)
		}
		current, err := provider.GetDBVersion(ctx)
		if err != nil {
			return fmt.Errorf("failed to get current version: %v", err)
		}
		if hasPending {
			return fmt.Errorf("migrations are pending: current version %d", current)
		}
		fmt.Printf("Database is up to date (version %d)\n", current)
		return nil
	}

	return nil
}
