package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/ayushkanha/VoxHire/internal/store"
)

func TestAppendAndQueryBySession(t *testing.T) {
	s := NewStore()

	records := []store.Record{
		{Question: "q1", Answer: "a1", SessionID: "s1"},
		{Question: "q2", Answer: "a2", SessionID: "s2"},
		{Question: "q3", Answer: "a3", SessionID: "s1"},
	}
	for _, r := range records {
		if err := s.Append(context.Background(), r); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got, err := s.Query(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 2 || got[0].Question != "q1" || got[1].Question != "q3" {
		t.Fatalf("unexpected records: %+v", got)
	}
}

func TestConcurrentAppends(t *testing.T) {
	s := NewStore()

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := store.Record{Question: fmt.Sprintf("q%d", i), Answer: "a", SessionID: "s1"}
			if err := s.Append(context.Background(), rec); err != nil {
				t.Errorf("Append failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	got, err := s.Query(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != writers {
		t.Fatalf("expected %d records, got %d", writers, len(got))
	}
}
