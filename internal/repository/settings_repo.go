package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"babylog/internal/models"
)

type SettingsSQLite struct {
	db *sql.DB
}

func NewSettingsSQLite(db *sql.DB) *SettingsSQLite {
	return &SettingsSQLite{db: db}
}

const (
	keyReminderHours = "babylog_reminder_hours"
	keyLanguage      = "babylog_language"

	upsertSettingSQL = `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value=excluded.value
	`

	selectSettingSQL = `SELECT value FROM settings WHERE key=?`
)

func (r *SettingsSQLite) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, selectSettingSQL, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (r *SettingsSQLite) put(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, upsertSettingSQL, key, value)
	return err
}

// ReminderInterval returns the configured reminder interval in hours,
// 0 when unset or disabled.
func (r *SettingsSQLite) ReminderInterval(ctx context.Context) (float64, error) {
	raw, ok, err := r.get(ctx, keyReminderHours)
	if err != nil || !ok {
		return 0, err
	}
	hours, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		// Unparseable slot falls back to disabled rather than failing.
		return 0, nil
	}
	return hours, nil
}

func (r *SettingsSQLite) SaveReminderInterval(ctx context.Context, hours float64) error {
	return r.put(ctx, keyReminderHours, strconv.FormatFloat(hours, 'f', -1, 64))
}

// Language returns the stored UI language, defaulting to English.
func (r *SettingsSQLite) Language(ctx context.Context) (string, error) {
	raw, ok, err := r.get(ctx, keyLanguage)
	if err != nil {
		return "", err
	}
	if !ok || !models.ValidLanguage(raw) {
		return models.LangEnglish, nil
	}
	return raw, nil
}

func (r *SettingsSQLite) SaveLanguage(ctx context.Context, lang string) error {
	return r.put(ctx, keyLanguage, lang)
}
