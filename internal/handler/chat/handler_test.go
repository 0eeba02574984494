package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/sarahkali/oracle/backend/internal/model/catalog"
	"github.com/sarahkali/oracle/backend/internal/model/chat"
	chatservice "github.com/sarahkali/oracle/backend/internal/service/chat"
	"github.com/sarahkali/oracle/backend/internal/service/flow"
	"github.com/sarahkali/oracle/backend/internal/service/reportcache"
	"github.com/sarahkali/oracle/backend/internal/service/session"
)

type echoLLM struct{}

func (echoLLM) Reply(_ context.Context, history []chat.Message) string {
	text, _ := chat.LastUserContent(history)
	return "✨ Sobre " + text + ", confie na sua intuição."
}

func setupRouter(t *testing.T) (*chi.Mux, *chatservice.Service) {
	t.Helper()
	transcript := chatservice.NewService()
	proc, err := flow.NewProcessor(flow.Config{
		Sessions:   session.NewStore(session.DefaultIdleTTL),
		Catalog:    catalog.NewMemoryStore(catalog.Seed()),
		Cache:      reportcache.NewMemory(reportcache.DefaultTTL, nil),
		LLM:        echoLLM{},
		Transcript: transcript,
		PixKey:     "pix@teste.com",
	})
	if err != nil {
		t.Fatalf("new processor: %v", err)
	}

	r := chi.NewRouter()
	New(proc, transcript).RegisterRoutes(r)
	return r, transcript
}

func postJSON(r http.Handler, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decodeChat(t *testing.T, resp *httptest.ResponseRecorder) chatResponse {
	t.Helper()
	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestCreateSession(t *testing.T) {
	r, _ := setupRouter(t)
	resp := postJSON(r, "/session", map[string]string{})

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	var s chat.Session
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.UserID == "" || s.Stage != chat.StageStart {
		t.Fatalf("unexpected session: %+v", s)
	}
}

func TestChatChoosingServiceUsesTranscript(t *testing.T) {
	r, transcript := setupRouter(t)

	resp := postJSON(r, "/chat", chatRequest{SessionID: "u1", Message: "2"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	out := decodeChat(t, resp)
	if out.Stage != chat.StageAwaitingPayment {
		t.Fatalf("expected awaiting payment, got %s", out.Stage)
	}
	if !strings.Contains(out.Reply, "R$ 37,00") || !strings.Contains(out.Reply, "pix@teste.com") {
		t.Fatalf("reply lacks payment details: %q", out.Reply)
	}

	out = decodeChat(t, postJSON(r, "/chat", chatRequest{SessionID: "u1", Message: "paguei, segue o comprovante"}))
	if out.Stage != chat.StagePaymentConfirmed {
		t.Fatalf("expected payment confirmed, got %s", out.Stage)
	}

	messages, _ := transcript.History(context.Background(), "u1", 0)
	if len(messages) != 4 {
		t.Fatalf("expected 4 recorded turns, got %d", len(messages))
	}
}

func TestChatWithClientHistory(t *testing.T) {
	r, _ := setupRouter(t)

	out := decodeChat(t, postJSON(r, "/chat", chatRequest{
		SessionID: "u2",
		Message:   "como vai meu amor?",
		History: []historyEntry{
			{Role: "user", Content: "oi"},
			{Role: "assistant", Content: "Olá!"},
		},
	}))
	if !strings.Contains(out.Reply, "como vai meu amor?") {
		t.Fatalf("expected llm reply, got %q", out.Reply)
	}
	if out.Stage != chat.StageStart {
		t.Fatalf("expected start stage, got %s", out.Stage)
	}
}

func TestChatAssignsSessionID(t *testing.T) {
	r, _ := setupRouter(t)
	out := decodeChat(t, postJSON(r, "/chat", chatRequest{Message: "oi"}))
	if out.SessionID == "" {
		t.Fatalf("expected a generated session id")
	}
}

func TestChatRejectsBadRequests(t *testing.T) {
	r, _ := setupRouter(t)

	cases := map[string]any{
		"empty message": chatRequest{SessionID: "u1", Message: "   "},
		"bad role":      chatRequest{SessionID: "u1", Message: "oi", History: []historyEntry{{Role: "narrator", Content: "x"}}},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if resp := postJSON(r, "/chat", body); resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.Code)
			}
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader("{"))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.Code)
	}
}

func TestListMessages(t *testing.T) {
	r, _ := setupRouter(t)
	postJSON(r, "/chat", chatRequest{SessionID: "u3", Message: "oi"})

	req := httptest.NewRequest(http.MethodGet, "/session/u3/messages", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var messages []chat.Message
	if err := json.NewDecoder(resp.Body).Decode(&messages); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(messages) != 2 || messages[0].Content != "oi" {
		t.Fatalf("unexpected transcript: %+v", messages)
	}
}
