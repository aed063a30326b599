package main

// Run database migrations:
//   go run ./cmd/migrate [up|down|status|version|redo]

import (
	"context"
	"flag"
	"os"
	"strings"

	"resume-booster/internal/shared/config"
	"resume-booster/internal/shared/storage/db"
	"resume-booster/internal/shared/telemetry"
)

func main() {
	flag.Parse()
	command := "up"
	if flag.NArg() > 0 {
		command = strings.ToLower(flag.Arg(0))
	}
	os.Exit(run(command))
}

func run(command string) int {
	defer telemetry.Sync()

	cfg, err := config.Load()
	if err != nil {
		telemetry.Error("config.load_failed", map[string]any{"error": err})
		return 1
	}
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		telemetry.Error("migrate.no_database", map[string]any{"reason": "DATABASE_URL empty"})
		return 1
	}
	ctx := context.Background()

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.DefaultMigrateOptions().Merge(db.Options(cfg.DB)))
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"error": err})
		return 1
	}
	defer sqlDB.Close()

	if err := db.Migrate(ctx, sqlDB, command); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"command": command, "error": err})
		return 1
	}
	telemetry.Info("migrate.done", map[string]any{"command": command})
	return 0
}
