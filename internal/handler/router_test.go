package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sarahkali/oracle/backend/internal/model/catalog"
	"github.com/sarahkali/oracle/backend/internal/model/chat"
	"github.com/sarahkali/oracle/backend/internal/model/persona"
	chatService "github.com/sarahkali/oracle/backend/internal/service/chat"
	"github.com/sarahkali/oracle/backend/internal/service/flow"
	"github.com/sarahkali/oracle/backend/internal/service/reportcache"
	"github.com/sarahkali/oracle/backend/internal/service/session"
)

type quietLLM struct{}

func (quietLLM) Reply(context.Context, []chat.Message) string { return "✨ Estou aqui com você." }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	services := catalog.NewMemoryStore(catalog.Seed())
	transcript := chatService.NewService()
	proc, err := flow.NewProcessor(flow.Config{
		Sessions:   session.NewStore(session.DefaultIdleTTL),
		Catalog:    services,
		Cache:      reportcache.NewMemory(reportcache.DefaultTTL, nil),
		LLM:        quietLLM{},
		Transcript: transcript,
		PixKey:     "pix@teste.com",
	})
	require.NoError(t, err)

	return NewRouter(Dependencies{
		Processor:      proc,
		Catalog:        services,
		Persona:        persona.Default(),
		Transcript:     transcript,
		AllowedOrigins: []string{"*"},
	})
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestRoutesAreMounted(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodGet, "/api/services", "", http.StatusOK},
		{http.MethodGet, "/api/persona", "", http.StatusOK},
		{http.MethodPost, "/api/session", "", http.StatusCreated},
		{http.MethodPost, "/api/chat", `{"sessionId":"u1","message":"oi"}`, http.StatusOK},
		{http.MethodGet, "/api/stream/u1", "", http.StatusBadRequest},
		{http.MethodGet, "/api/stream/u1?message=oi", "", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			require.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}

func TestPreflightHandledByCORS(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
