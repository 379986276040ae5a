package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ayushkanha/VoxHire/internal/evaluator"
	"github.com/ayushkanha/VoxHire/internal/metrics"
	"github.com/ayushkanha/VoxHire/internal/store"
	"github.com/ayushkanha/VoxHire/pkg/logger"
)

// TurnEngine generates the interviewer's next question.
type TurnEngine interface {
	NextTurn(ctx context.Context, sessionID, message, domainHint string) (string, error)
}

// QARecorder persists a completed question/answer pair.
type QARecorder interface {
	Record(ctx context.Context, rec store.Record) (bool, error)
}

// SessionEvaluator scores a session's transcript.
type SessionEvaluator interface {
	Evaluate(ctx context.Context, sessionID string) (evaluator.Result, error)
}

type InterviewHandler struct {
	engine    TurnEngine
	recorder  QARecorder
	evaluator SessionEvaluator
}

func NewInterviewHandler(engine TurnEngine, recorder QARecorder, sessionEvaluator SessionEvaluator) *InterviewHandler {
	return &InterviewHandler{
		engine:    engine,
		recorder:  recorder,
		evaluator: sessionEvaluator,
	}
}

// StartSession hands out a fresh session identifier. Session state itself
// is created lazily on the first chat turn.
func (h *InterviewHandler) StartSession(c *fiber.Ctx) error {
	sessionID := uuid.NewString()

	metrics.SessionsStarted.Inc()
	logger.Info("Session started", zap.String("session_id", sessionID))

	return c.JSON(fiber.Map{
		"session_id": sessionID,
	})
}

func (h *InterviewHandler) Chat(c *fiber.Ctx) error {
	var req struct {
		SessionID string `json:"session_id"`
		Message   string `json:"message"`
		Domain    string `json:"domain"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid request body",
		})
	}

	if req.SessionID == "" || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "session_id and message are required",
		})
	}

	question, err := h.engine.NextTurn(c.Context(), req.SessionID, req.Message, req.Domain)
	if err != nil {
		logger.Error("Chat turn failed",
			zap.String("session_id", req.SessionID),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"question": question,
	})
}

func (h *InterviewHandler) SaveQA(c *fiber.Ctx) error {
	var req struct {
		Question  string `json:"question"`
		Answer    string `json:"answer"`
		SessionID string `json:"session_id"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		Role      string `json:"role"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid request body",
		})
	}

	if req.Question == "" || req.Answer == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "question and answer are required",
		})
	}

	saved, err := h.recorder.Record(c.Context(), store.Record{
		Question:  req.Question,
		Answer:    req.Answer,
		SessionID: req.SessionID,
		Name:      req.Name,
		Email:     req.Email,
		Role:      req.Role,
	})
	if err != nil {
		logger.Error("Failed to save QA pair",
			zap.String("session_id", req.SessionID),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": err.Error(),
		})
	}

	detail := "Q&A pair saved successfully."
	if !saved {
		detail = "Duplicate Q&A skipped."
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"detail": detail,
	})
}

func (h *InterviewHandler) EvaluateSession(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "session_id is required",
		})
	}

	result, err := h.evaluator.Evaluate(c.Context(), sessionID)
	if err != nil {
		if errors.Is(err, evaluator.ErrNoTranscript) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"detail": "No interview records found for this session",
			})
		}

		logger.Error("Evaluation failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"score":    result.Score,
		"feedback": result.Feedback,
	})
}
