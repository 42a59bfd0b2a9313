package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citadel/authagent/agent"
	"github.com/citadel/authagent/api"
	"github.com/citadel/authagent/azureai"
	"github.com/citadel/authagent/config"
	"github.com/citadel/authagent/domain"
	"github.com/citadel/authagent/tests/helpers"
)

// newCompletionServer returns a fake completion endpoint and a config bound
// to it.
func newCompletionServer(t *testing.T, handler http.HandlerFunc) *azureai.Config {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &azureai.Config{
		APIKey:     "secret",
		APIBase:    server.URL,
		APIVersion: "2024-02-01",
		Deployment: "gpt-4o",
	}
}

func postJSON(t *testing.T, e *echo.Echo, handler echo.HandlerFunc, path string, body interface{}, paramNames, paramValues []string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(paramNames) > 0 {
		c.SetParamNames(paramNames...)
		c.SetParamValues(paramValues...)
	}
	require.NoError(t, handler(c))
	return rec
}

func TestCreateSessionAndCompletionTurn(t *testing.T) {
	cfg := newCompletionServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"c1","choices":[{"index":0,"message":{"role":"assistant","content":"access granted"}}]}`)
	})

	db := helpers.NewTestSQLiteStore(t)
	sessions := agent.NewManager(cfg, time.Second, agent.DefaultSystemPrompt)
	h := api.NewHandler(db, sessions, &config.Config{})
	e := echo.New()

	// Create a session.
	rec := postJSON(t, e, h.CreateSession, "/v1/sessions", map[string]string{"user_id": "u1"}, nil, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var session domain.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.NotEmpty(t, session.SessionID)
	assert.Equal(t, "u1", session.UserID)

	// Run one completion turn.
	rec = postJSON(t, e, h.PostMessage, "/v1/sessions/"+session.SessionID+"/messages",
		map[string]string{"content": "can user-a create resource-1?"},
		[]string{"session_id"}, []string{session.SessionID})
	require.Equal(t, http.StatusOK, rec.Code)

	var reply agent.Reply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Equal(t, "access granted", reply.Text)
	assert.False(t, reply.Reported)

	// The archive holds system prompt, user message, and assistant reply.
	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/"+session.SessionID+"/messages", nil)
	getRec := httptest.NewRecorder()
	c := e.NewContext(req, getRec)
	c.SetParamNames("session_id")
	c.SetParamValues(session.SessionID)
	require.NoError(t, h.GetSessionMessages(c))
	require.Equal(t, http.StatusOK, getRec.Code)

	var resp struct {
		Messages []domain.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 3)
	assert.Equal(t, domain.RoleSystem, resp.Messages[0].Role)
	assert.Equal(t, domain.RoleUser, resp.Messages[1].Role)
	assert.Equal(t, domain.RoleAssistant, resp.Messages[2].Role)
}

func TestPostMessageRemoteFailureReported(t *testing.T) {
	cfg := newCompletionServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"rate limited","type":"rate_limit_error"}}`)
	})

	db := helpers.NewTestSQLiteStore(t)
	sessions := agent.NewManager(cfg, time.Second, "")
	h := api.NewHandler(db, sessions, &config.Config{})
	e := echo.New()

	rec := postJSON(t, e, h.CreateSession, "/v1/sessions", map[string]string{"user_id": "u1"}, nil, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var session domain.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))

	rec = postJSON(t, e, h.PostMessage, "/v1/sessions/"+session.SessionID+"/messages",
		map[string]string{"content": "hello"},
		[]string{"session_id"}, []string{session.SessionID})
	require.Equal(t, http.StatusOK, rec.Code, "remote failures are absorbed, not surfaced as HTTP errors")

	var reply agent.Reply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.True(t, reply.Reported)
	assert.Contains(t, reply.Text, "rate limited")
}

func TestPostMessageUnknownSession(t *testing.T) {
	db := helpers.NewTestSQLiteStore(t)
	sessions := agent.NewManager(nil, time.Second, "")
	h := api.NewHandler(db, sessions, &config.Config{})
	e := echo.New()

	rec := postJSON(t, e, h.PostMessage, "/v1/sessions/nope/messages",
		map[string]string{"content": "hello"},
		[]string{"session_id"}, []string{"nope"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateSessionMissingUserID(t *testing.T) {
	db := helpers.NewTestSQLiteStore(t)
	h := api.NewHandler(db, agent.NewManager(nil, time.Second, ""), &config.Config{})
	e := echo.New()

	rec := postJSON(t, e, h.CreateSession, "/v1/sessions", map[string]string{}, nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
