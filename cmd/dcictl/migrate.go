package main

import (
	"database/sql"
	"fmt"
	"io"

	"dci-control-server/internal/database/migrations"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the SQL schema migrations",
	}
	cmd.AddCommand(newMigrateUpCmd())
	cmd.AddCommand(newMigrateDownCmd())
	cmd.AddCommand(newMigrateVersionCmd())
	cmd.AddCommand(newMigrateListCmd())
	return cmd
}

func newMigrateUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSQL(func(sqlDB *sql.DB) error {
				if err := migrations.Up(sqlDB); err != nil {
					return err
				}
				return printVersion(cmd.OutOrStdout(), sqlDB)
			})
		},
	}
}

func newMigrateDownCmd() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1")
			}
			return withSQL(func(sqlDB *sql.DB) error {
				if err := migrations.Down(sqlDB, steps); err != nil {
					return err
				}
				return printVersion(cmd.OutOrStdout(), sqlDB)
			})
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	return cmd
}

func newMigrateVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSQL(func(sqlDB *sql.DB) error {
				return printVersion(cmd.OutOrStdout(), sqlDB)
			})
		},
	}
}

func newMigrateListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the embedded migration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := migrations.Files()
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
}

func withSQL(fn func(sqlDB *sql.DB) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	defer sqlDB.Close()
	return fn(sqlDB)
}

func printVersion(out io.Writer, sqlDB *sql.DB) error {
	version, dirty, err := migrations.Version(sqlDB)
	if err != nil {
		return err
	}
	if dirty {
		fmt.Fprintf(out, "schema version %d (dirty)\n", version)
		return nil
	}
	fmt.Fprintf(out, "schema version %d\n", version)
	return nil
}
