package stream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sarahkali/oracle/backend/internal/model/chat"
	"github.com/sarahkali/oracle/backend/internal/model/persona"
	"github.com/sarahkali/oracle/backend/pkg/utils"
)

var log = logrus.WithField("component", "stream")

// ErrStreamingUnsupported is returned when the writer cannot flush.
var ErrStreamingUnsupported = errors.New("streaming unsupported")

// Funnel is the conversation engine behind the stream.
type Funnel interface {
	Converse(ctx context.Context, userID, text string) string
	Session(userID string) chat.Session
}

// Handler delivers funnel replies via Server-Sent Events.
type Handler struct {
	funnel  Funnel
	persona persona.Persona
}

// New creates a new stream handler
func New(funnel Funnel, p persona.Persona) *Handler {
	return &Handler{
		funnel:  funnel,
		persona: p,
	}
}

// StreamResponse represents a streaming response chunk
type StreamResponse struct {
	Event     string     `json:"event"`
	Content   string     `json:"content,omitempty"`
	SessionID string     `json:"sessionId,omitempty"`
	Stage     chat.Stage `json:"stage,omitempty"`
	Finished  bool       `json:"finished,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// HandleStreamRequest answers userMessage for sessionID as an event stream:
// start, one delta per reply line, the full message, then end.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, sessionID string, userMessage string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return ErrStreamingUnsupported
	}
	utils.SetupSSEHeaders(w)

	h.sendSSE(w, flusher, StreamResponse{
		Event:     "start",
		SessionID: sessionID,
		Content:   fmt.Sprintf("%s está consultando as energias...", h.persona.Name),
	})

	reply := h.funnel.Converse(ctx, sessionID, userMessage)
	if err := ctx.Err(); err != nil {
		log.WithField("session", sessionID).WithError(err).Info("client left before the reply")
		return nil
	}

	for _, chunk := range splitChunks(reply) {
		h.sendSSE(w, flusher, StreamResponse{
			Event:     "delta",
			SessionID: sessionID,
			Content:   chunk,
		})
	}

	h.sendSSE(w, flusher, StreamResponse{
		Event:     "message",
		SessionID: sessionID,
		Content:   reply,
	})

	stage := h.funnel.Session(sessionID).Stage
	h.sendSSE(w, flusher, StreamResponse{
		Event:     "end",
		SessionID: sessionID,
		Stage:     stage,
		Finished:  true,
	})

	log.WithFields(logrus.Fields{"session": sessionID, "stage": stage}).Debug("stream completed")
	return nil
}

// splitChunks cuts a reply into lines, keeping the line breaks so the
// concatenated deltas equal the reply.
func splitChunks(reply string) []string {
	parts := strings.SplitAfter(reply, "\n")
	chunks := parts[:0]
	for _, part := range parts {
		if part != "" {
			chunks = append(chunks, part)
		}
	}
	return chunks
}

func (h *Handler) sendSSE(w http.ResponseWriter, flusher http.Flusher, response StreamResponse) {
	utils.SendSSEChunk(w, flusher, response)
}
