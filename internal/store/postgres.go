package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/earshot/internal/feedback"
)

// tagSeparator joins tag slices into a single column. Tags are free text but
// never contain the unit separator control character.
const tagSeparator = "\x1f"

// PostgresStore is the remote database backend, driven through database/sql
// with the pgx stdlib driver.
type PostgresStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresStore opens the database, verifies connectivity, and ensures the
// two tables exist. Table creation is idempotent; schema evolution beyond
// that belongs to operators.
func NewPostgresStore(dsn string, logger *zap.Logger) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%w: postgres dsn is required", ErrInvalidConfig)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	ps := &PostgresStore{db: db, logger: logger}
	if err := ps.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("connected to postgres store")
	return ps, nil
}

func (ps *PostgresStore) ensureSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id           TEXT PRIMARY KEY,
	nickname     TEXT NOT NULL,
	device_model TEXT NOT NULL DEFAULT '',
	os_version   TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS observations (
	id                TEXT PRIMARY KEY,
	session_id        TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	course_name       TEXT NOT NULL,
	category          TEXT NOT NULL,
	tags              TEXT NOT NULL,
	issue_description TEXT NOT NULL,
	feeling_tags      TEXT NOT NULL,
	feeling_other     TEXT NOT NULL DEFAULT '',
	created_at        TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS observations_created_at_idx ON observations (created_at DESC);`

	if _, err := ps.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// ListSessions implements Store.
func (ps *PostgresStore) ListSessions(ctx context.Context) ([]feedback.Session, error) {
	rows, err := ps.db.QueryContext(ctx,
		`SELECT id, nickname, device_model, os_version, created_at, updated_at
		 FROM sessions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var out []feedback.Session
	for rows.Next() {
		var s feedback.Session
		if err := rows.Scan(&s.ID, &s.Nickname, &s.DeviceModel, &s.OSVersion, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListObservations implements Store. Newest-first per the log contract.
func (ps *PostgresStore) ListObservations(ctx context.Context) ([]feedback.Observation, error) {
	rows, err := ps.db.QueryContext(ctx,
		`SELECT id, session_id, course_name, category, tags, issue_description,
		        feeling_tags, feeling_other, created_at
		 FROM observations ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list observations: %w", err)
	}
	defer rows.Close()

	var out []feedback.Observation
	for rows.Next() {
		var o feedback.Observation
		var tags, feelings string
		if err := rows.Scan(&o.ID, &o.SessionID, &o.CourseName, &o.Category, &tags,
			&o.IssueDescription, &feelings, &o.FeelingOther, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}
		o.Tags = splitTags(tags)
		o.FeelingTags = splitTags(feelings)
		out = append(out, o)
	}
	return out, rows.Err()
}

// InsertSession implements Store.
func (ps *PostgresStore) InsertSession(ctx context.Context, s feedback.Session) error {
	_, err := ps.db.ExecContext(ctx,
		`INSERT INTO sessions (id, nickname, device_model, os_version, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.Nickname, s.DeviceModel, s.OSVersion, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// InsertObservation implements Store.
func (ps *PostgresStore) InsertObservation(ctx context.Context, o feedback.Observation) error {
	_, err := ps.db.ExecContext(ctx,
		`INSERT INTO observations (id, session_id, course_name, category, tags,
		                           issue_description, feeling_tags, feeling_other, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		o.ID, o.SessionID, o.CourseName, string(o.Category), joinTags(o.Tags),
		o.IssueDescription, joinTags(o.FeelingTags), o.FeelingOther, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert observation: %w", err)
	}
	return nil
}

// UpdateSession implements Store.
func (ps *PostgresStore) UpdateSession(ctx context.Context, s feedback.Session) error {
	res, err := ps.db.ExecContext(ctx,
		`UPDATE sessions SET nickname = $2, device_model = $3, os_version = $4, updated_at = $5
		 WHERE id = $1`,
		s.ID, s.Nickname, s.DeviceModel, s.OSVersion, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", s.ID, ErrNotFound)
	}
	return nil
}

// DeleteSession implements Store. Observations cascade via the foreign key.
func (ps *PostgresStore) DeleteSession(ctx context.Context, id string) error {
	res, err := ps.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return nil
}

// Close implements Store.
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}

func joinTags(tags []string) string {
	return strings.Join(tags, tagSeparator)
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, tagSeparator)
}
