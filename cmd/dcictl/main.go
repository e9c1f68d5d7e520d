// Command dcictl administers a DCI control server database: schema
// migrations and bootstrap data.
package main

import (
	"fmt"
	"os"

	"dci-control-server/internal/config"
	"dci-control-server/internal/database"
	"dci-control-server/internal/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
)

// openDB connects without touching the schema; each command decides what
// to migrate.
var openDB = func(cfg *config.Config) (*gorm.DB, error) {
	return database.Initialize(cfg.DatabaseURL, &database.Options{
		LogLevel:      gormlogger.Silent,
		MigrationMode: config.MigrationNone,
	})
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dcictl",
		Short:         "DCI control server administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newSeedCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dcictl %s (commit: %s)\n", Version, Commit)
		},
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Setup(cfg.LogLevel)
	return cfg, nil
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
