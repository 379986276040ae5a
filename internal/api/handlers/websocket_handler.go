package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/ayushkanha/VoxHire/pkg/logger"
)

// WebSocketHandler serves a live interview over one connection: each
// inbound answer produces the next question, streamed word by word.
type WebSocketHandler struct {
	engine TurnEngine
}

func NewWebSocketHandler(engine TurnEngine) *WebSocketHandler {
	return &WebSocketHandler{
		engine: engine,
	}
}

func (h *WebSocketHandler) HandleConnection(c *websocket.Conn) {
	logger.Info("WebSocket connection established")

	defer func() {
		c.Close()
		logger.Info("WebSocket connection closed")
	}()

	for {
		var msg struct {
			SessionID string `json:"session_id"`
			Message   string `json:"message"`
			Domain    string `json:"domain"`
		}

		err := c.ReadJSON(&msg)
		if err != nil {
			logger.Debug("WebSocket read ended", zap.Error(err))
			break
		}

		if msg.SessionID == "" || msg.Message == "" {
			h.sendError(c, "session_id and message are required")
			continue
		}

		err = h.streamTurn(c, msg.SessionID, msg.Message, msg.Domain)
		if err != nil {
			logger.Error("Failed to stream turn", zap.Error(err))
			h.sendError(c, "Failed to generate question")
		}
	}
}

func (h *WebSocketHandler) streamTurn(c *websocket.Conn, sessionID, message, domain string) error {
	question, err := h.engine.NextTurn(context.Background(), sessionID, message, domain)
	if err != nil {
		return err
	}

	words := strings.Fields(question)
	for i, word := range words {
		chunk := word
		if i < len(words)-1 {
			chunk += " "
		}

		if err := h.sendChunk(c, chunk); err != nil {
			return err
		}
	}

	return c.WriteJSON(map[string]interface{}{
		"type":     "complete",
		"question": question,
	})
}

func (h *WebSocketHandler) sendChunk(c *websocket.Conn, content string) error {
	return c.WriteJSON(map[string]interface{}{
		"type":    "chunk",
		"content": content,
	})
}

func (h *WebSocketHandler) sendError(c *websocket.Conn, errorMsg string) {
	c.WriteJSON(map[string]interface{}{
		"type":   "error",
		"detail": errorMsg,
	})
}
