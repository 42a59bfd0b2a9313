package api

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/citadel/authagent/domain"
)

// PostMessageRequest is the body for POST /v1/sessions/:session_id/messages.
type PostMessageRequest struct {
	Content string `json:"content"`
}

// PostMessage runs one completion turn for a session and archives both sides
// of the exchange.
// POST /v1/sessions/:session_id/messages
func (h *Handler) PostMessage(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := c.Param("session_id")

	var req PostMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Content == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "content is required"})
	}

	session, err := h.store.GetSession(ctx, sessionID)
	if err != nil {
		log.Printf("ERROR: failed to get session: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get session"})
	}
	if session == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
	}

	reply, err := h.sessions.Process(ctx, sessionID, req.Content)
	if err != nil {
		// Initialization failures are operator mistakes, not
		// conversational events; remote failures never land here.
		log.Printf("ERROR: completion turn failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "completion client initialization failed"})
	}

	h.archiveMessage(ctx, sessionID, domain.RoleUser, req.Content)
	outcome := domain.RoleAssistant
	if reply.Reported {
		outcome = domain.RoleSystem
	}
	h.archiveMessage(ctx, sessionID, outcome, reply.Text)

	return c.JSON(http.StatusOK, reply)
}

// GetSessionMessages returns the archived transcript for a session.
// GET /v1/sessions/:session_id/messages
func (h *Handler) GetSessionMessages(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := c.Param("session_id")

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 50
	}
	before := c.QueryParam("before")

	messages, err := h.store.GetMessages(ctx, sessionID, limit+1, before)
	if err != nil {
		log.Printf("ERROR: failed to get messages: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get messages"})
	}

	hasMore := len(messages) > limit
	if hasMore {
		messages = messages[:limit]
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"messages": messages,
		"has_more": hasMore,
	})
}

// archiveMessage persists one transcript entry. Archive failures are logged,
// not surfaced: the live transcript already holds the message.
func (h *Handler) archiveMessage(ctx context.Context, sessionID string, role domain.Role, content string) {
	msg := &domain.Message{
		MessageID: "msg_" + uuid.New().String()[:8],
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := h.store.CreateMessage(ctx, msg); err != nil {
		log.Printf("ERROR: failed to archive message: %v", err)
	}
}
