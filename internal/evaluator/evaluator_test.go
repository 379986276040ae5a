package evaluator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ayushkanha/VoxHire/internal/llm"
	"github.com/ayushkanha/VoxHire/internal/store"
	"github.com/ayushkanha/VoxHire/internal/store/memory"
)

type stubModel struct {
	reply      string
	err        error
	calls      int
	lastPrompt string
}

func (m *stubModel) Chat(ctx context.Context, system string, turns []llm.Message) (string, error) {
	m.calls++
	if len(turns) > 0 {
		m.lastPrompt = turns[len(turns)-1].Content
	}
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func seedTranscript(t *testing.T, st store.Store) {
	t.Helper()

	records := []store.Record{
		{Question: "What is a JOIN?", Answer: "It combines rows from two tables.", SessionID: "s1", Name: "Ada", Role: "Data Analyst", Timestamp: time.Now()},
		{Question: "Explain GROUP BY.", Answer: "It aggregates rows sharing a key.", SessionID: "s1", Timestamp: time.Now()},
	}
	for _, r := range records {
		if err := st.Append(context.Background(), r); err != nil {
			t.Fatalf("seed append failed: %v", err)
		}
	}
}

func TestEvaluateEmptyTranscriptReturnsNotFound(t *testing.T) {
	st := memory.NewStore()
	e := NewEvaluator(st, &stubModel{reply: "SCORE: 5.0"}, false)

	_, err := e.Evaluate(context.Background(), "missing")
	if !errors.Is(err, ErrNoTranscript) {
		t.Fatalf("expected ErrNoTranscript, got %v", err)
	}
}

func TestEvaluateBuildsNumberedTranscript(t *testing.T) {
	st := memory.NewStore()
	seedTranscript(t, st)

	model := &stubModel{reply: "SCORE: 8.0\nFEEDBACK:\nOverall Performance: good."}
	e := NewEvaluator(st, model, false)

	res, err := e.Evaluate(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if res.Score != 8.0 || res.ScoreSource != ScoreParsed {
		t.Fatalf("unexpected result: %+v", res)
	}
	if model.calls != 1 {
		t.Fatalf("expected exactly one model call, got %d", model.calls)
	}

	prompt := model.lastPrompt
	if !strings.Contains(prompt, "candidate Ada") || !strings.Contains(prompt, "role: Data Analyst") {
		t.Fatalf("expected candidate metadata in the header, got: %s", prompt)
	}

	q1 := strings.Index(prompt, "Q1: What is a JOIN?")
	a1 := strings.Index(prompt, "A1: It combines rows")
	q2 := strings.Index(prompt, "Q2: Explain GROUP BY.")
	if q1 < 0 || a1 < 0 || q2 < 0 || !(q1 < a1 && a1 < q2) {
		t.Fatalf("expected numbered QA pairs in retrieval order, got: %s", prompt)
	}
}

func TestEvaluateModelErrorSurfaces(t *testing.T) {
	st := memory.NewStore()
	seedTranscript(t, st)

	e := NewEvaluator(st, &stubModel{err: errors.New("upstream unavailable")}, false)

	_, err := e.Evaluate(context.Background(), "s1")
	if err == nil {
		t.Fatalf("expected model error to surface")
	}
	if errors.Is(err, ErrNoTranscript) {
		t.Fatalf("model failure must not masquerade as a missing transcript")
	}
}

func TestEvaluateDegradesOnMalformedOutput(t *testing.T) {
	st := memory.NewStore()
	seedTranscript(t, st)

	raw := "I refuse to follow formats today."
	e := NewEvaluator(st, &stubModel{reply: raw}, false)

	res, err := e.Evaluate(context.Background(), "s1")
	if err != nil {
		t.Fatalf("malformed output must degrade, not fail: %v", err)
	}
	if res.Score != 7.0 || res.ScoreSource != ScoreDefaulted {
		t.Fatalf("expected defaulted score, got %+v", res)
	}
	if res.Feedback != raw {
		t.Fatalf("expected raw text as feedback, got %q", res.Feedback)
	}
}

func TestEvaluatePersistedResultIsExcludedFromLaterRuns(t *testing.T) {
	st := memory.NewStore()
	seedTranscript(t, st)

	model := &stubModel{reply: "SCORE: 6.0\nFEEDBACK:\nFine."}
	e := NewEvaluator(st, model, true)

	if _, err := e.Evaluate(context.Background(), "s1"); err != nil {
		t.Fatalf("first evaluation failed: %v", err)
	}

	records, err := st.Query(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected the audit record appended, got %d records", len(records))
	}
	audit := records[2]
	if audit.Question != auditQuestion || !strings.Contains(audit.Answer, "SCORE: 6.0") {
		t.Fatalf("unexpected audit record: %+v", audit)
	}

	if _, err := e.Evaluate(context.Background(), "s1"); err != nil {
		t.Fatalf("second evaluation failed: %v", err)
	}
	if strings.Contains(model.lastPrompt, auditQuestion) {
		t.Fatalf("audit record must not leak into the transcript")
	}
	if strings.Contains(model.lastPrompt, "Q3:") {
		t.Fatalf("audit record must not be counted as a QA pair")
	}
}
