package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	catalogHandler "github.com/sarahkali/oracle/backend/internal/handler/catalog"
	"github.com/sarahkali/oracle/backend/internal/handler/chat"
	"github.com/sarahkali/oracle/backend/internal/handler/live"
	"github.com/sarahkali/oracle/backend/internal/handler/stream"
	middlewarePkg "github.com/sarahkali/oracle/backend/internal/middleware"
	"github.com/sarahkali/oracle/backend/internal/model/catalog"
	"github.com/sarahkali/oracle/backend/internal/model/persona"
	chatService "github.com/sarahkali/oracle/backend/internal/service/chat"
	"github.com/sarahkali/oracle/backend/internal/service/flow"
	"github.com/sarahkali/oracle/backend/pkg/utils"
)

var log = logrus.WithField("component", "router")

// Dependencies are the services the HTTP layer exposes.
type Dependencies struct {
	Processor      *flow.Processor
	Catalog        catalog.Store
	Persona        persona.Persona
	Transcript     chatService.Log
	AllowedOrigins []string
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(deps.AllowedOrigins))

	started := time.Now()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"status": "ok",
			"uptime": time.Since(started).Round(time.Second).String(),
		})
	})

	catalogH := catalogHandler.New(deps.Catalog, deps.Persona)
	chatH := chat.New(deps.Processor, deps.Transcript)
	streamH := stream.New(deps.Processor, deps.Persona)
	liveH := live.NewWebSocketHandler(deps.Processor, deps.Persona)

	r.Route("/api", func(api chi.Router) {
		catalogH.RegisterRoutes(api)
		chatH.RegisterRoutes(api)
		liveH.RegisterWebSocketRoutes(api)

		api.Get("/stream/{sessionID}", func(w http.ResponseWriter, r *http.Request) {
			sessionID := chi.URLParam(r, "sessionID")
			userMessage := r.URL.Query().Get("message")

			if userMessage == "" {
				utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
				return
			}

			if err := streamH.HandleStreamRequest(r.Context(), w, sessionID, userMessage); err != nil {
				log.WithError(err).WithField("session", sessionID).Error("stream request failed")
				utils.RespondError(w, http.StatusInternalServerError, "streaming failed")
			}
		})
	})

	return r
}
