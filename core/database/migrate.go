package database

import (
	"embed"
	"errors"
	"fmt"

	"time2gather/core/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate applies every pending up migration. down rolls back a single step instead.
func Migrate(config DatabaseConfig, down bool) error {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, config.URL())
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer m.Close()

	if down {
		err = m.Steps(-1)
	} else {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error("Database:Migrate", "down", down, "error", err)
		return fmt.Errorf("migrate: %w", err)
	}

	version, dirty, _ := m.Version()
	logger.Info("Database:Migrate:Done", "version", version, "dirty", dirty, "down", down)
	return nil
}
