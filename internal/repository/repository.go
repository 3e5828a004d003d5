package repository

import (
	"context"
	"database/sql"
	"time"

	"babylog/internal/models"
)

// LogRepo is the append-only log store. Entries are never updated or deleted.
type LogRepo interface {
	// Append inserts the entry, filling in ID and CreatedAt when absent,
	// and returns the stored entry.
	Append(ctx context.Context, e models.LogEntry) (models.LogEntry, error)
	// List returns entries newest first, optionally bounded by [from, to]
	// (inclusive; zero means unbounded) and filtered by type.
	List(ctx context.Context, from, to time.Time, typ models.LogType) ([]models.LogEntry, error)
	// ListAll returns every entry, newest first.
	ListAll(ctx context.Context) ([]models.LogEntry, error)
	// LastOfType returns the newest entry whose type is one of types,
	// or nil when no such entry exists.
	LastOfType(ctx context.Context, types ...models.LogType) (*models.LogEntry, error)
}

// SettingsRepo persists the per-device settings slots.
type SettingsRepo interface {
	ReminderInterval(ctx context.Context) (float64, error)
	SaveReminderInterval(ctx context.Context, hours float64) error
	Language(ctx context.Context) (string, error)
	SaveLanguage(ctx context.Context, lang string) error
}

type Repository struct {
	Logs     LogRepo
	Settings SettingsRepo
}

func NewRepository(conn *sql.DB) *Repository {
	return &Repository{
		Logs:     NewLogSQLite(conn),
		Settings: NewSettingsSQLite(conn),
	}
}
