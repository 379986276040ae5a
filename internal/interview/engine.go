package interview

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ayushkanha/VoxHire/internal/llm"
	"github.com/ayushkanha/VoxHire/internal/metrics"
	"github.com/ayushkanha/VoxHire/internal/store"
	"github.com/ayushkanha/VoxHire/pkg/logger"
)

// ChatModel is the slice of the LLM client the engine needs.
type ChatModel interface {
	Chat(ctx context.Context, system string, turns []llm.Message) (string, error)
}

// Engine drives one interview turn at a time. Each turn makes exactly one
// model round-trip; the system prompt carries the persona rules plus the
// session's effective domain, followed by the full prior history.
type Engine struct {
	model    ChatModel
	registry *Registry
	recorder *Recorder
	now      func() time.Time
}

func NewEngine(model ChatModel, registry *Registry, recorder *Recorder) *Engine {
	return &Engine{
		model:    model,
		registry: registry,
		recorder: recorder,
		now:      time.Now,
	}
}

// NextTurn resolves the session, sends the conversation to the model and
// returns the interviewer's next question. The user message and the reply
// are appended together after a successful model call; a failed call leaves
// the history exactly as it was.
//
// When the session already has history, the pair (previous question, this
// answer) is recorded to the transcript store. The engine owns that
// decision; the model is never given write access. A failed write is
// logged and the turn still succeeds.
func (e *Engine) NextTurn(ctx context.Context, sessionID, message, domainHint string) (string, error) {
	start := e.now()

	sess := e.registry.GetOrCreate(sessionID)
	sess.SetDomainIfAbsent(domainHint)

	// The session lock is held across the model call. Turns for one
	// session are serialized in arrival order; unrelated sessions proceed
	// in parallel.
	sess.mu.Lock()
	defer sess.mu.Unlock()

	domain := sess.domain
	if domain == "" {
		domain = defaultDomain
	}

	turns := make([]llm.Message, 0, len(sess.history)+1)
	turns = append(turns, sess.history...)
	turns = append(turns, llm.Message{Role: llm.RoleUser, Content: message})

	reply, err := e.model.Chat(ctx, buildSystemPrompt(domain), turns)
	if err != nil {
		metrics.TurnsTotal.WithLabelValues("error").Inc()
		logger.Error("Turn generation failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return "", fmt.Errorf("model call failed: %w", err)
	}

	// The question the candidate just answered is the assistant turn at
	// the tail of the prior history. Empty on the first turn: there is
	// nothing to persist during the introduction.
	var prevQuestion string
	if n := len(sess.history); n > 0 {
		prevQuestion = sess.history[n-1].Content
	}

	sess.history = append(sess.history,
		llm.Message{Role: llm.RoleUser, Content: message},
		llm.Message{Role: llm.RoleAssistant, Content: reply},
	)

	if prevQuestion != "" && e.recorder != nil {
		_, err := e.recorder.Record(ctx, store.Record{
			Question:  prevQuestion,
			Answer:    message,
			SessionID: sessionID,
			Timestamp: e.now(),
		})
		if err != nil {
			logger.Warn("Failed to persist QA pair, continuing turn",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
		}
	}

	metrics.TurnsTotal.WithLabelValues("ok").Inc()
	metrics.TurnDuration.Observe(e.now().Sub(start).Seconds())

	logger.Info("Turn completed",
		zap.String("session_id", sessionID),
		zap.String("domain", domain),
		zap.Int("history_len", len(sess.history)),
	)

	return reply, nil
}
