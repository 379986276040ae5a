package interview

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ayushkanha/VoxHire/internal/metrics"
	"github.com/ayushkanha/VoxHire/internal/store"
	"github.com/ayushkanha/VoxHire/pkg/logger"
	"github.com/ayushkanha/VoxHire/pkg/utils"
)

func recordHash(rec store.Record) string {
	return utils.HashString(rec.SessionID + "\x1f" + rec.Question + "\x1f" + rec.Answer)
}

// dedupeTTL bounds how long a QA pair counts as a duplicate of itself.
const dedupeTTL = 10 * time.Minute

// DedupeIndex is an optional cross-instance idempotency index.
type DedupeIndex interface {
	MarkRecorded(ctx context.Context, hash string, ttl time.Duration) (bool, error)
}

// Recorder writes completed QA pairs to the transcript store. Duplicate
// policy: an immediately repeated identical (question, answer) pair for the
// same session is skipped silently, so retried saves never inflate the
// transcript the evaluator scores.
type Recorder struct {
	store  store.Store
	dedupe DedupeIndex

	mu       sync.Mutex
	lastHash map[string]string
}

// NewRecorder wraps st. dedupe may be nil; then duplicate detection is
// per-process only (last pair per session).
func NewRecorder(st store.Store, dedupe DedupeIndex) *Recorder {
	return &Recorder{
		store:    st,
		dedupe:   dedupe,
		lastHash: make(map[string]string),
	}
}

// Record appends rec unless it duplicates the session's most recent pair.
// Returns true when a row was written, false when the pair was skipped as a
// duplicate.
func (r *Recorder) Record(ctx context.Context, rec store.Record) (bool, error) {
	hash := recordHash(rec)

	r.mu.Lock()
	if r.lastHash[rec.SessionID] == hash {
		r.mu.Unlock()
		metrics.QARecordsSaved.WithLabelValues("duplicate").Inc()
		logger.Debug("Duplicate QA pair skipped", zap.String("session_id", rec.SessionID))
		return false, nil
	}
	r.mu.Unlock()

	if r.dedupe != nil {
		first, err := r.dedupe.MarkRecorded(ctx, hash, dedupeTTL)
		if err != nil {
			// Dedupe is best-effort: if the index is down we accept the
			// possibility of a duplicate row rather than losing the write.
			logger.Warn("Idempotency index unavailable", zap.Error(err))
		} else if !first {
			metrics.QARecordsSaved.WithLabelValues("duplicate").Inc()
			logger.Debug("Duplicate QA pair skipped", zap.String("session_id", rec.SessionID))
			return false, nil
		}
	}

	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	if err := r.store.Append(ctx, rec); err != nil {
		metrics.QARecordsSaved.WithLabelValues("error").Inc()
		return false, err
	}

	r.mu.Lock()
	r.lastHash[rec.SessionID] = hash
	r.mu.Unlock()

	metrics.QARecordsSaved.WithLabelValues("saved").Inc()
	return true, nil
}
