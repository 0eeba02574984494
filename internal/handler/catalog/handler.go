package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sarahkali/oracle/backend/internal/model/catalog"
	"github.com/sarahkali/oracle/backend/internal/model/persona"
	"github.com/sarahkali/oracle/backend/pkg/utils"
)

// Handler exposes the service menu and the consultant persona.
type Handler struct {
	services catalog.Store
	persona  persona.Persona
}

// New creates a catalog handler.
func New(services catalog.Store, p persona.Persona) *Handler {
	return &Handler{
		services: services,
		persona:  p,
	}
}

// RegisterRoutes mounts the catalog endpoints on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/services", h.handleListServices)
	r.Get("/services/{serviceID}", h.handleGetService)
	r.Get("/persona", h.handleGetPersona)
}

type serviceView struct {
	catalog.Service
	Price string `json:"price"`
	Menu  string `json:"menu"`
}

func newServiceView(s catalog.Service) serviceView {
	return serviceView{Service: s, Price: s.Price(), Menu: s.MenuLine()}
}

func (h *Handler) handleListServices(w http.ResponseWriter, r *http.Request) {
	services := h.services.List()
	views := make([]serviceView, 0, len(services))
	for _, s := range services {
		views = append(views, newServiceView(s))
	}
	utils.RespondJSON(w, http.StatusOK, views)
}

func (h *Handler) handleGetService(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "serviceID")
	s, ok := h.services.FindByID(id)
	if !ok {
		s, ok = h.services.FindByChoice(id)
	}
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "service not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, newServiceView(s))
}

func (h *Handler) handleGetPersona(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.persona)
}
