package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sarahkali/oracle/backend/internal/model/chat"
	chatService "github.com/sarahkali/oracle/backend/internal/service/chat"
	"github.com/sarahkali/oracle/backend/pkg/utils"
)

// Funnel is the conversation engine behind the chat endpoints.
type Funnel interface {
	ProcessMessage(ctx context.Context, userID string, history []chat.Message) string
	Converse(ctx context.Context, userID, text string) string
	Session(userID string) chat.Session
}

// Handler serves the request/response chat API.
type Handler struct {
	funnel     Funnel
	transcript chatService.Log
}

// New creates a chat handler. transcript may be nil.
func New(funnel Funnel, transcript chatService.Log) *Handler {
	return &Handler{
		funnel:     funnel,
		transcript: transcript,
	}
}

// RegisterRoutes mounts the chat endpoints on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreateSession)
	r.Get("/session/{sessionID}", h.handleGetSession)
	r.Get("/session/{sessionID}/messages", h.handleListMessages)
	r.Post("/chat", h.handleChat)
}

type historyEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	SessionID string         `json:"sessionId"`
	Message   string         `json:"message"`
	History   []historyEntry `json:"history,omitempty"`
}

type chatResponse struct {
	SessionID string       `json:"sessionId"`
	Reply     string       `json:"reply"`
	Stage     chat.Stage   `json:"stage"`
	Session   chat.Session `json:"session"`
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id := chatService.NewSessionID()
	utils.RespondJSON(w, http.StatusCreated, h.funnel.Session(id))
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	utils.RespondJSON(w, http.StatusOK, h.funnel.Session(sessionID))
}

func (h *Handler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	if h.transcript == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "transcript unavailable")
		return
	}

	messages, err := h.transcript.History(r.Context(), chi.URLParam(r, "sessionID"), 0)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if messages == nil {
		messages = []chat.Message{}
	}
	utils.RespondJSON(w, http.StatusOK, messages)
}

// handleChat answers one user message. When the client sends its own
// history it is used as is; otherwise the recorded transcript is replayed.
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payload.Message = strings.TrimSpace(payload.Message)
	if payload.Message == "" {
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}
	if payload.SessionID == "" {
		payload.SessionID = chatService.NewSessionID()
	}

	var reply string
	if payload.History != nil {
		history, err := toMessages(payload.History)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		history = append(history, chat.UserMessage(payload.Message))
		reply = h.funnel.ProcessMessage(r.Context(), payload.SessionID, history)
	} else {
		reply = h.funnel.Converse(r.Context(), payload.SessionID, payload.Message)
	}

	session := h.funnel.Session(payload.SessionID)
	utils.RespondJSON(w, http.StatusOK, chatResponse{
		SessionID: payload.SessionID,
		Reply:     reply,
		Stage:     session.Stage,
		Session:   session,
	})
}

func toMessages(entries []historyEntry) ([]chat.Message, error) {
	messages := make([]chat.Message, 0, len(entries)+1)
	for _, entry := range entries {
		role, ok := chat.ParseRole(strings.ToLower(strings.TrimSpace(entry.Role)))
		if !ok {
			return nil, chatService.ErrInvalidRole
		}
		messages = append(messages, chat.Message{Role: role, Content: entry.Content})
	}
	return messages, nil
}
