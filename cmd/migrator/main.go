package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"devevent/config"
)

const (
	migrationUp   = "up"
	migrationDown = "down"
)

func main() {
	var dsn, migrationsPath, direction string
	flag.StringVar(&dsn, "dsn", os.Getenv("DATABASE_URL"), "postgres connection string (defaults to DATABASE_URL)")
	flag.StringVar(&migrationsPath, "migrations-path", "migrations", "path to migrations")
	flag.StringVar(&direction, "direction", migrationUp, "up or down")
	flag.Parse()

	logger := config.NewLogger(os.Getenv("GO_ENV"))

	if dsn == "" {
		logger.Error("dsn is required")
		os.Exit(1)
	}
	if direction != migrationUp && direction != migrationDown {
		logger.Error("unknown direction", slog.String("direction", direction))
		os.Exit(1)
	}

	if err := run("file://"+migrationsPath, dsn, direction, logger); err != nil {
		logger.Error("migration failed", slog.String("direction", direction), "err", err)
		os.Exit(1)
	}
}

func run(sourceURL, dsn, direction string, logger *slog.Logger) error {
	m, err := migrate.New(sourceURL, dsn)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logger.Warn("failed to close migrator", "source_err", srcErr, "db_err", dbErr)
		}
	}()

	if direction == migrationDown {
		err = m.Down()
	} else {
		err = m.Up()
	}
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("no migrations to apply")
		return nil
	case err != nil:
		return err
	}
	logger.Info("migrations applied", slog.String("direction", direction))
	return nil
}
