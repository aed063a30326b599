package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsDir = "migrations"

// RunMigrations applies embedded SQL migrations via goose. If database is nil, it's a no-op.
func RunMigrations(ctx context.Context, database *sql.DB) error {
	return Migrate(ctx, database, "up")
}

// Migrate runs a goose command (up, down, status, version, redo) against the embedded migrations.
func Migrate(ctx context.Context, database *sql.DB, command string) error {
	if database == nil {
		return nil
	}
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	switch cmd := strings.ToLower(strings.TrimSpace(command)); cmd {
	case "", "up":
		return goose.UpContext(ctx, database, migrationsDir)
	case "down", "status", "version", "redo":
		return goose.RunContext(ctx, cmd, database, migrationsDir)
	default:
		return fmt.Errorf("unsupported migration command %q", command)
	}
}

// Ping checks connectivity for health reporting.
func Ping(ctx context.Context, database *sql.DB) error {
	if database == nil {
		return nil
	}
	return database.PingContext(ctx)
}
