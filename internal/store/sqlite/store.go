package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/ayushkanha/VoxHire/internal/store"
	"github.com/ayushkanha/VoxHire/pkg/logger"
)

type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec("PRAGMA journal_mode = WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}

	logger.Info("SQLite transcript store initialized", zap.String("path", dbPath))

	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS interview_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		session_id TEXT NOT NULL,
		name TEXT,
		email TEXT,
		role TEXT,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_interview_session ON interview_log(session_id);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

func (s *Store) Append(ctx context.Context, rec store.Record) error {
	query := `
		INSERT INTO interview_log (question, answer, session_id, name, email, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		rec.Question,
		rec.Answer,
		rec.SessionID,
		rec.Name,
		rec.Email,
		rec.Role,
		rec.Timestamp.Unix(),
	)

	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}

	logger.Debug("Record appended", zap.String("session_id", rec.SessionID))
	return nil
}

// Query returns records in rowid order, which is insertion order. That is
// the ordering contract downstream consumers rely on.
func (s *Store) Query(ctx context.Context, sessionID string) ([]store.Record, error) {
	query := `
		SELECT question, answer, session_id, name, email, role, created_at
		FROM interview_log
		WHERE session_id = ?
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []store.Record
	for rows.Next() {
		var r store.Record
		var createdAt int64

		err := rows.Scan(&r.Question, &r.Answer, &r.SessionID, &r.Name, &r.Email, &r.Role, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		r.Timestamp = time.Unix(createdAt, 0)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return records, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
