package main

import (
	"fmt"
	"sort"

	"dci-control-server/internal/database"
	"dci-control-server/internal/database/models"
	"dci-control-server/internal/repository"
	"dci-control-server/internal/seed"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var file string
	var migrate bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load bootstrap teams, users, products and catalog entries from YAML",
		Long: `Loads a seed document. Rows that already exist by name are left untouched,
so the command is safe to run on every deployment.

The file defaults to SEED_FILE from the configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if file == "" {
				file = cfg.SeedFile
			}
			if file == "" {
				return fmt.Errorf("no seed file: pass --file or set SEED_FILE")
			}

			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			if migrate {
				if err := database.Migrate(db, cfg.MigrationMode); err != nil {
					return err
				}
			}

			result, err := seed.LoadFile(cmd.Context(), repository.NewRepositories(db), file)
			if err != nil {
				return err
			}

			kinds := make([]string, 0, len(result))
			for kind := range result {
				kinds = append(kinds, string(kind))
			}
			sort.Strings(kinds)
			if len(kinds) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to create")
			}
			for _, kind := range kinds {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d created\n", kind, result[models.Kind(kind)])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the seed document")
	cmd.Flags().BoolVar(&migrate, "migrate", true, "bring the schema up to date first, using DB_MIGRATION_MODE")
	return cmd
}
