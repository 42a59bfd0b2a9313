package api

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/citadel/authagent/domain"
)

// CreateSessionRequest is the body for POST /v1/sessions.
type CreateSessionRequest struct {
	UserID string `json:"user_id"`
}

// CreateSession creates a new conversation session and registers its live
// counterpart, seeded with the system prompt.
// POST /v1/sessions
func (h *Handler) CreateSession(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.UserID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}

	session := &domain.Session{
		SessionID: "sess_" + uuid.New().String()[:8],
		UserID:    req.UserID,
		CreatedAt: time.Now(),
	}
	if err := h.store.CreateSession(ctx, session); err != nil {
		log.Printf("ERROR: failed to create session: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create session"})
	}

	// Register the live session and archive its seed messages so the
	// stored transcript matches what the model will see.
	h.sessions.Ensure(session.SessionID)
	for _, msg := range h.sessions.Snapshot(session.SessionID) {
		h.archiveMessage(ctx, session.SessionID, msg.Role, msg.Content)
	}

	return c.JSON(http.StatusCreated, session)
}
