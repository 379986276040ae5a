package interview

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ayushkanha/VoxHire/internal/store"
)

type fakeDedupe struct {
	seen map[string]bool
	err  error
}

func (f *fakeDedupe) MarkRecorded(ctx context.Context, hash string, ttl time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.seen == nil {
		f.seen = make(map[string]bool)
	}
	if f.seen[hash] {
		return false, nil
	}
	f.seen[hash] = true
	return true, nil
}

func TestRecordAppendsAndSkipsImmediateDuplicate(t *testing.T) {
	st := &fakeStore{}
	r := NewRecorder(st, nil)

	rec := store.Record{Question: "q1", Answer: "a1", SessionID: "s1"}

	saved, err := r.Record(context.Background(), rec)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if !saved {
		t.Fatalf("first submission must be saved")
	}

	saved, err = r.Record(context.Background(), rec)
	if err != nil {
		t.Fatalf("duplicate submission must not error: %v", err)
	}
	if saved {
		t.Fatalf("immediate duplicate must be skipped")
	}

	if len(st.records) != 1 {
		t.Fatalf("expected 1 persisted record, got %d", len(st.records))
	}
}

func TestRecordDistinctPairsAllSaved(t *testing.T) {
	st := &fakeStore{}
	r := NewRecorder(st, nil)

	pairs := []store.Record{
		{Question: "q1", Answer: "a1", SessionID: "s1"},
		{Question: "q2", Answer: "a2", SessionID: "s1"},
		{Question: "q1", Answer: "a1", SessionID: "s2"},
	}

	for _, p := range pairs {
		saved, err := r.Record(context.Background(), p)
		if err != nil {
			t.Fatalf("Record failed: %v", err)
		}
		if !saved {
			t.Fatalf("distinct pair %+v must be saved", p)
		}
	}

	if len(st.records) != len(pairs) {
		t.Fatalf("expected %d records, got %d", len(pairs), len(st.records))
	}
}

func TestRecordStoreErrorSurfaces(t *testing.T) {
	st := &fakeStore{err: errors.New("write failed")}
	r := NewRecorder(st, nil)

	saved, err := r.Record(context.Background(), store.Record{Question: "q", Answer: "a", SessionID: "s1"})
	if err == nil {
		t.Fatalf("expected the store error to surface")
	}
	if saved {
		t.Fatalf("failed write must not report saved")
	}
}

func TestRecordDedupeIndexSkipsAcrossRecorders(t *testing.T) {
	st := &fakeStore{}
	index := &fakeDedupe{}

	// Two recorders sharing one index model two process instances.
	first := NewRecorder(st, index)
	second := NewRecorder(st, index)

	rec := store.Record{Question: "q1", Answer: "a1", SessionID: "s1"}

	if saved, err := first.Record(context.Background(), rec); err != nil || !saved {
		t.Fatalf("first instance must save: saved=%v err=%v", saved, err)
	}
	if saved, err := second.Record(context.Background(), rec); err != nil || saved {
		t.Fatalf("second instance must skip via the shared index: saved=%v err=%v", saved, err)
	}

	if len(st.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(st.records))
	}
}

func TestRecordDedupeIndexFailureStillWrites(t *testing.T) {
	st := &fakeStore{}
	r := NewRecorder(st, &fakeDedupe{err: errors.New("redis down")})

	saved, err := r.Record(context.Background(), store.Record{Question: "q", Answer: "a", SessionID: "s1"})
	if err != nil {
		t.Fatalf("index failure must not block the write: %v", err)
	}
	if !saved {
		t.Fatalf("expected the record to be written when the index is down")
	}
}

func TestRecordFillsTimestamp(t *testing.T) {
	st := &fakeStore{}
	r := NewRecorder(st, nil)

	if _, err := r.Record(context.Background(), store.Record{Question: "q", Answer: "a", SessionID: "s1"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if st.records[0].Timestamp.IsZero() {
		t.Fatalf("expected a server-assigned timestamp")
	}
}
