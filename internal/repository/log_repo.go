package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"babylog/internal/models"

	"github.com/google/uuid"
)

type LogSQLite struct {
	db *sql.DB
}

func NewLogSQLite(db *sql.DB) *LogSQLite { return &LogSQLite{db: db} }

const (
	sqliteTimeLayout = "2006-01-02 15:04:05"

	insertLogSQL = `
		INSERT INTO logs (id, created_at, type, sub_type, side, amount_ml, left_ml, right_ml, left_seconds, right_seconds, duration_seconds, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectLogColumns = `SELECT id, created_at, type, sub_type, side, amount_ml, left_ml, right_ml, left_seconds, right_seconds, duration_seconds, notes FROM logs`
)

// Append inserts a new entry. If ID or CreatedAt are empty, they're set.
func (r *LogSQLite) Append(ctx context.Context, e models.LogEntry) (models.LogEntry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	} else {
		e.CreatedAt = e.CreatedAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertLogSQL,
		e.ID,
		e.CreatedAt.Format(sqliteTimeLayout),
		string(e.Type),
		nullStr(e.SubType),
		nullStr(e.Side),
		nullInt(e.AmountMl),
		nullInt(e.LeftMl),
		nullInt(e.RightMl),
		nullInt(e.LeftSeconds),
		nullInt(e.RightSeconds),
		nullInt(e.DurationSeconds),
		nullStr(e.Notes),
	)
	if err != nil {
		return models.LogEntry{}, err
	}
	return e, nil
}

// List returns entries bounded by [from, to] and/or type, newest first.
func (r *LogSQLite) List(ctx context.Context, from, to time.Time, typ models.LogType) ([]models.LogEntry, error) {
	var (
		conds []string
		args  []any
	)

	// Bounds use the same layout Append stores, so the text comparison
	// in sqlite matches the column values.
	if !from.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, from.UTC().Format(sqliteTimeLayout))
	}
	if !to.IsZero() {
		conds = append(conds, "created_at <= ?")
		args = append(args, to.UTC().Format(sqliteTimeLayout))
	}
	if typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, string(typ))
	}

	q := selectLogColumns
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.LogEntry, 0, 64)
	for rows.Next() {
		e, err := scanLogEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every entry, newest first.
func (r *LogSQLite) ListAll(ctx context.Context) ([]models.LogEntry, error) {
	return r.List(ctx, time.Time{}, time.Time{}, "")
}

// LastOfType returns the newest entry among the given types, nil when absent.
func (r *LogSQLite) LastOfType(ctx context.Context, types ...models.LogType) (*models.LogEntry, error) {
	if len(types) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(types))
	args := make([]any, len(types))
	for i, t := range types {
		placeholders[i] = "?"
		args[i] = string(t)
	}

	q := selectLogColumns + " WHERE type IN (" + strings.Join(placeholders, ", ") + ") ORDER BY created_at DESC LIMIT 1"

	row := r.db.QueryRowContext(ctx, q, args...)
	e, err := scanLogEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLogEntry(row rowScanner) (models.LogEntry, error) {
	var (
		e        models.LogEntry
		typ      string
		subType  sql.NullString
		side     sql.NullString
		amount   sql.NullInt64
		leftMl   sql.NullInt64
		rightMl  sql.NullInt64
		leftSec  sql.NullInt64
		rightSec sql.NullInt64
		duration sql.NullInt64
		notes    sql.NullString
	)
	if err := row.Scan(
		&e.ID, &e.CreatedAt, &typ,
		&subType, &side,
		&amount, &leftMl, &rightMl,
		&leftSec, &rightSec, &duration,
		&notes,
	); err != nil {
		return models.LogEntry{}, err
	}

	e.CreatedAt = e.CreatedAt.UTC()
	e.Type = models.LogType(typ)
	e.SubType = subType.String
	e.Side = side.String
	e.AmountMl = int(amount.Int64)
	e.LeftMl = int(leftMl.Int64)
	e.RightMl = int(rightMl.Int64)
	e.LeftSeconds = int(leftSec.Int64)
	e.RightSeconds = int(rightSec.Int64)
	e.DurationSeconds = int(duration.Int64)
	e.Notes = notes.String
	return e, nil
}

// nullStr maps "" to NULL so absent fields stay absent in storage.
func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullInt maps 0 to NULL; all stored quantities are strictly positive.
func nullInt(v int) any {
	if v == 0 {
		return nil
	}
	return v
}
