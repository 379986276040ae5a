package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ayushkanha/VoxHire/internal/store"
	"github.com/ayushkanha/VoxHire/pkg/logger"
)

var header = []string{"Question", "Answer", "Session_id", "Name", "Email", "Role", "Timestamp"}

// Store appends interview records to a CSV file. The header row is written
// once, when the file is first created or found empty.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	logger.Info("CSV transcript store initialized", zap.String("path", path))

	return &Store{path: path}, nil
}

func (s *Store) Append(ctx context.Context, rec store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open transcript file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat transcript file: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("failed to write header row: %w", err)
		}
	}

	row := []string{
		rec.Question,
		rec.Answer,
		rec.SessionID,
		rec.Name,
		rec.Email,
		rec.Role,
		rec.Timestamp.UTC().Format(time.RFC3339),
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush record: %w", err)
	}

	logger.Debug("Record appended", zap.String("session_id", rec.SessionID))
	return nil
}

func (s *Store) Query(ctx context.Context, sessionID string) ([]store.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open transcript file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript file: %w", err)
	}

	var records []store.Record
	for i, row := range rows {
		if i == 0 || len(row) < 7 {
			continue
		}
		if row[2] != sessionID {
			continue
		}

		ts, _ := time.Parse(time.RFC3339, row[6])
		records = append(records, store.Record{
			Question:  row[0],
			Answer:    row[1],
			SessionID: row[2],
			Name:      row[3],
			Email:     row[4],
			Role:      row[5],
			Timestamp: ts,
		})
	}

	return records, nil
}

func (s *Store) Close() error {
	return nil
}
