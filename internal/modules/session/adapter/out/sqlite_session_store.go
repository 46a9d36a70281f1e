package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fast/internal/modules/session/domain"
	sessionout "fast/internal/modules/session/port/out"
	apperrors "fast/internal/platform/errors"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05.999999999Z07:00"

// SQLiteSessionStore is the durable record store. A partial unique index
// backs the single-active invariant at the schema level as well, so a
// second active row cannot slip in even through a bug in the command
// layer.
type SQLiteSessionStore struct {
	db *sql.DB
}

func NewSQLiteSessionStore(dbPath string) (sessionout.Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteSessionStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteSessionStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  start_at TEXT NOT NULL,
  end_at TEXT,
  target_seconds INTEGER
);
CREATE UNIQUE INDEX IF NOT EXISTS sessions_single_active
  ON sessions ((1)) WHERE end_at IS NULL;
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("%w: create sessions table: %v", apperrors.ErrStorage, err)
	}
	return nil
}

func (s *SQLiteSessionStore) Insert(ctx context.Context, session domain.FastingSession) error {
	const stmt = `INSERT INTO sessions (id, start_at, end_at, target_seconds) VALUES (?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, stmt, session.ID, session.StartAt.Format(timeLayout), endColumn(session), targetColumn(session)); err != nil {
		return fmt.Errorf("%w: insert session: %v", apperrors.ErrStorage, err)
	}
	return nil
}

func (s *SQLiteSessionStore) Update(ctx context.Context, session domain.FastingSession) error {
	const stmt = `UPDATE sessions SET start_at = ?, end_at = ?, target_seconds = ? WHERE id = ?`
	res, err := s.db.ExecContext(ctx, stmt, session.StartAt.Format(timeLayout), endColumn(session), targetColumn(session), session.ID)
	if err != nil {
		return fmt.Errorf("%w: update session: %v", apperrors.ErrStorage, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *SQLiteSessionStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: delete session: %v", apperrors.ErrStorage, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *SQLiteSessionStore) ByID(ctx context.Context, id string) (domain.FastingSession, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, start_at, end_at, target_seconds FROM sessions WHERE id = ?`, id)
	session, err := scanSession(row)
	if err == sql.ErrNoRows {
		return domain.FastingSession{}, apperrors.ErrNotFound
	}
	return session, err
}

func (s *SQLiteSessionStore) Active(ctx context.Context) (domain.FastingSession, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, start_at, end_at, target_seconds FROM sessions WHERE end_at IS NULL LIMIT 1`)
	session, err := scanSession(row)
	if err == sql.ErrNoRows {
		return domain.FastingSession{}, apperrors.ErrNoActiveSession
	}
	return session, err
}

func (s *SQLiteSessionStore) All(ctx context.Context) ([]domain.FastingSession, error) {
	return s.query(ctx, `SELECT id, start_at, end_at, target_seconds FROM sessions ORDER BY start_at`)
}

func (s *SQLiteSessionStore) Completed(ctx context.Context) ([]domain.FastingSession, error) {
	return s.query(ctx, `SELECT id, start_at, end_at, target_seconds FROM sessions WHERE end_at IS NOT NULL ORDER BY end_at`)
}

func (s *SQLiteSessionStore) query(ctx context.Context, stmt string) ([]domain.FastingSession, error) {
	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%w: query sessions: %v", apperrors.ErrStorage, err)
	}
	defer rows.Close()

	var sessions []domain.FastingSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate sessions: %v", apperrors.ErrStorage, err)
	}
	return sessions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (domain.FastingSession, error) {
	var (
		session       domain.FastingSession
		startRaw      string
		endRaw        sql.NullString
		targetSeconds sql.NullInt64
	)
	if err := row.Scan(&session.ID, &startRaw, &endRaw, &targetSeconds); err != nil {
		if err == sql.ErrNoRows {
			return domain.FastingSession{}, err
		}
		return domain.FastingSession{}, fmt.Errorf("%w: scan session: %v", apperrors.ErrStorage, err)
	}
	start, err := time.Parse(timeLayout, startRaw)
	if err != nil {
		return domain.FastingSession{}, fmt.Errorf("%w: parse start_at: %v", apperrors.ErrStorage, err)
	}
	session.StartAt = start
	if endRaw.Valid {
		end, err := time.Parse(timeLayout, endRaw.String)
		if err != nil {
			return domain.FastingSession{}, fmt.Errorf("%w: parse end_at: %v", apperrors.ErrStorage, err)
		}
		session.EndAt = &end
	}
	if targetSeconds.Valid {
		target := time.Duration(targetSeconds.Int64) * time.Second
		session.Target = &target
	}
	return session, nil
}

func endColumn(session domain.FastingSession) any {
	if session.EndAt == nil {
		return nil
	}
	return session.EndAt.Format(timeLayout)
}

func targetColumn(session domain.FastingSession) any {
	if session.Target == nil {
		return nil
	}
	return int64(*session.Target / time.Second)
}
