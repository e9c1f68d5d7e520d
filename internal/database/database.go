package database

import (
	"fmt"
	"time"

	"dci-control-server/internal/config"
	"dci-control-server/internal/database/migrations"
	"dci-control-server/internal/database/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Options struct {
	LogLevel        logger.LogLevel
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	// MigrationMode is one of config.MigrationAuto, config.MigrationSQL or config.MigrationNone.
	MigrationMode string
}

// AllModels returns every model managed by AutoMigrate, parents first.
func AllModels() []interface{} {
	return []interface{}{
		&models.Team{},
		&models.User{},
		&models.Product{},
		&models.ProductTeam{},
		&models.Topic{},
		&models.ComponentType{},
		&models.Component{},
		&models.Test{},
		&models.JobDefinition{},
		&models.RemoteCI{},
		&models.Job{},
		&models.JobState{},
	}
}

// GormConfig returns the gorm configuration shared by every dialect.
// Driver errors are translated so that constraint violations can be matched
// with gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated.
func GormConfig(level logger.LogLevel) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Initialize opens a Postgres connection and brings the schema up to date
// according to opts.MigrationMode.
func Initialize(dsn string, opts *Options) (*gorm.DB, error) {
	// Defaults
	if opts == nil {
		opts = &Options{}
	}
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Error
	}
	if opts.MaxOpenConns == 0 {
		opts.MaxOpenConns = 20
	}
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = 10
	}
	if opts.ConnMaxLifetime == 0 {
		opts.ConnMaxLifetime = 30 * time.Minute
	}
	if opts.ConnMaxIdleTime == 0 {
		opts.ConnMaxIdleTime = 10 * time.Minute
	}
	if opts.MigrationMode == "" {
		opts.MigrationMode = config.MigrationAuto
	}

	// Open DB
	db, err := gorm.Open(postgres.Open(dsn), GormConfig(opts.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
		sqlDB.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}

	if err := Migrate(db, opts.MigrationMode); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate brings the schema up to date with the given mode.
func Migrate(db *gorm.DB, mode string) error {
	switch mode {
	case config.MigrationAuto:
		return AutoMigrate(db)
	case config.MigrationSQL:
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("sql migrate: %w", err)
		}
		return migrations.Up(sqlDB)
	case config.MigrationNone:
		return nil
	}
	return fmt.Errorf("unknown migration mode %q", mode)
}

// AutoMigrate creates or updates every table from the gorm models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Product{}, "Teams", &models.ProductTeam{}); err != nil {
		return fmt.Errorf("setup product_teams join table: %w", err)
	}
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
