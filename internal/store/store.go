package store

import (
	"context"
	"time"
)

// Record is one denormalized row of the interview trail. Records for a
// session are linked by SessionID only; the store is an append log, not a
// relational model.
type Record struct {
	Question  string
	Answer    string
	SessionID string
	Name      string
	Email     string
	Role      string
	Timestamp time.Time
}

// Store is the transcript backend. Append adds one record to the trail;
// Query returns every record for a session in the order the backend holds
// them. Callers must not re-sort the result: insertion order is the only
// ordering the trail has.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, sessionID string) ([]Record, error)
	Close() error
}
