package evaluator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ayushkanha/VoxHire/internal/llm"
	"github.com/ayushkanha/VoxHire/internal/metrics"
	"github.com/ayushkanha/VoxHire/internal/store"
	"github.com/ayushkanha/VoxHire/pkg/logger"
)

// ErrNoTranscript is returned when a session has no recorded QA pairs.
var ErrNoTranscript = errors.New("no interview records for session")

// auditQuestion marks rows that hold a persisted evaluation rather than a
// real QA pair. Audit rows are excluded from transcript reconstruction so
// repeated evaluations never score their own output.
const auditQuestion = "__evaluation__"

const evalSystemPrompt = `You are an expert interview assessor. You will receive the full transcript of a mock technical interview as numbered question/answer pairs.

Assess the candidate and respond in EXACTLY this format:

SCORE: <overall score from 0 to 10, one decimal place>
FEEDBACK:
Overall Performance: <summary>
Strengths: <what the candidate did well>
Areas for Improvement: <specific gaps>
Communication: <clarity and structure of answers>
Technical Knowledge: <depth and correctness>
Problem-Solving: <approach and reasoning>

Do not add anything before the SCORE line.`

// ChatModel is the slice of the LLM client the evaluator needs. A
// different model than the turn engine's may back it.
type ChatModel interface {
	Chat(ctx context.Context, system string, turns []llm.Message) (string, error)
}

// Evaluator scores a session's full transcript with a single model call.
type Evaluator struct {
	store         store.Store
	model         ChatModel
	persistResult bool
	now           func() time.Time
}

// NewEvaluator builds an evaluator over st. When persistResult is set, each
// computed evaluation is appended back to the session's trail as an audit
// record.
func NewEvaluator(st store.Store, model ChatModel, persistResult bool) *Evaluator {
	return &Evaluator{
		store:         st,
		model:         model,
		persistResult: persistResult,
		now:           time.Now,
	}
}

// Evaluate fetches every QA record for the session, reconstructs the
// transcript in retrieval order, and asks the model for a scored
// assessment. Malformed model output degrades to defaults; only a missing
// transcript or a failed model call is an error.
func (e *Evaluator) Evaluate(ctx context.Context, sessionID string) (Result, error) {
	records, err := e.store.Query(ctx, sessionID)
	if err != nil {
		metrics.EvaluationsTotal.WithLabelValues("store_error").Inc()
		return Result{}, fmt.Errorf("failed to fetch transcript: %w", err)
	}

	qa := make([]store.Record, 0, len(records))
	for _, r := range records {
		if r.Question != auditQuestion {
			qa = append(qa, r)
		}
	}

	if len(qa) == 0 {
		metrics.EvaluationsTotal.WithLabelValues("not_found").Inc()
		return Result{}, ErrNoTranscript
	}

	transcript := buildTranscript(qa)

	raw, err := e.model.Chat(ctx, evalSystemPrompt, []llm.Message{
		{Role: llm.RoleUser, Content: transcript},
	})
	if err != nil {
		metrics.EvaluationsTotal.WithLabelValues("model_error").Inc()
		return Result{}, fmt.Errorf("evaluation model call failed: %w", err)
	}

	res := parseEvaluation(raw)

	metrics.EvaluationsTotal.WithLabelValues("ok").Inc()
	metrics.EvaluationScore.Observe(res.Score)

	logger.Info("Session evaluated",
		zap.String("session_id", sessionID),
		zap.Float64("score", res.Score),
		zap.String("score_source", res.ScoreSource.String()),
		zap.String("feedback_source", res.FeedbackSource.String()),
		zap.Int("qa_pairs", len(qa)),
	)

	if e.persistResult {
		audit := store.Record{
			Question:  auditQuestion,
			Answer:    fmt.Sprintf("SCORE: %.1f\nFEEDBACK:\n%s", res.Score, res.Feedback),
			SessionID: sessionID,
			Timestamp: e.now(),
		}
		if err := e.store.Append(ctx, audit); err != nil {
			logger.Warn("Failed to persist evaluation record",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
		}
	}

	return res, nil
}

// buildTranscript renders the records as a header naming the candidate
// followed by numbered QA pairs, in the order the store returned them.
func buildTranscript(records []store.Record) string {
	var b strings.Builder

	first := records[0]
	b.WriteString("Interview transcript")
	if first.Name != "" {
		fmt.Fprintf(&b, " for candidate %s", first.Name)
	}
	if first.Role != "" {
		fmt.Fprintf(&b, " (role: %s)", first.Role)
	}
	b.WriteString("\n\n")

	for i, r := range records {
		fmt.Fprintf(&b, "Q%d: %s\nA%d: %s\n\n", i+1, r.Question, i+1, r.Answer)
	}

	return b.String()
}
