// Package api provides HTTP handlers for the session service.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/citadel/authagent/agent"
	"github.com/citadel/authagent/config"
	"github.com/citadel/authagent/store"
)

// Handler handles HTTP requests.
type Handler struct {
	store    store.Store
	sessions *agent.Manager
	config   *config.Config
}

// NewHandler creates a new handler.
func NewHandler(store store.Store, sessions *agent.Manager, config *config.Config) *Handler {
	return &Handler{
		store:    store,
		sessions: sessions,
		config:   config,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/v1/sessions", h.CreateSession)
	e.POST("/v1/sessions/:session_id/messages", h.PostMessage)
	e.GET("/v1/sessions/:session_id/messages", h.GetSessionMessages)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}
