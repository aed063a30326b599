package health

import (
	"context"
	"database/sql"
	"time"

	"resume-booster/internal/shared/storage/db"
)

const (
	DatabaseUp     = "up"
	DatabaseDown   = "down"
	DatabaseMemory = "memory"
)

const pingTimeout = 2 * time.Second

// Report is the health payload.
type Report struct {
	OK       bool   `json:"ok"`
	Env      string `json:"env"`
	Database string `json:"database"`
}

// Service reports process and database health.
type Service struct {
	DB  *sql.DB
	Env string
}

// NewService constructs a new health service. database may be nil when the
// process runs on in-memory repositories.
func NewService(database *sql.DB, env string) *Service {
	return &Service{DB: database, Env: env}
}

// Status pings the database when one is configured.
func (s *Service) Status(ctx context.Context) Report {
	report := Report{OK: true, Env: s.Env, Database: DatabaseMemory}
	if s.DB == nil {
		return report
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.Ping(ctx, s.DB); err != nil {
		report.OK = false
		report.Database = DatabaseDown
		return report
	}
	report.Database = DatabaseUp
	return report
}
