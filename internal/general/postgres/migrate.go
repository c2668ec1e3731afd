package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"travel-po/internal/general/config"
	"travel-po/internal/general/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies all pending schema migrations from migrationsPath
// (a directory of golang-migrate SQL pairs). A no-op when the schema is
// already current.
func RunMigrations(ctx context.Context, cfg *config.Config, log *logger.Logger, migrationsPath string) error {
	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(cfg.Database.Host, strconv.Itoa(cfg.Database.Port)),
		Path:   "/" + cfg.Database.Name,
		User:   url.UserPassword(cfg.Database.User, cfg.Database.Password),
	}
	q := url.Values{}
	q.Set("sslmode", "disable")
	u.RawQuery = q.Encode()

	m, err := migrate.New("file://"+migrationsPath, u.String())
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			log.Error(ctx, "migrate_close_failed", "Failed to close migration source", srcErr, nil)
		}
		if dbErr != nil {
			log.Error(ctx, "migrate_close_failed", "Failed to close migration database handle", dbErr, nil)
		}
	}()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("read migration version: %w", err)
	}

	log.Info(ctx, "migrations_applied", "Database schema is up to date", map[string]any{
		"version": version,
		"dirty":   dirty,
	})
	return nil
}
