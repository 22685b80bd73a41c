package persona

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	promptservice "github.com/sayuki-dev/oshitalk/backend/internal/service/prompt"
	"github.com/sayuki-dev/oshitalk/backend/pkg/utils"
)

// Handler exposes the persona catalog.
type Handler struct {
	composer *promptservice.Composer
}

// New creates the persona handler.
func New(composer *promptservice.Composer) *Handler {
	return &Handler{composer: composer}
}

// RegisterRoutes wires the persona endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/personas", h.handleList)
	r.Get("/personas/{personaID}/greeting", h.handleGreeting)
}

type personaSummary struct {
	ID       string `json:"id"`
	Greeting string `json:"greeting"`
}

func (h *Handler) handleList(w http.ResponseWriter, _ *http.Request) {
	ids := h.composer.PersonaIDs()

	personas := make([]personaSummary, 0, len(ids))
	for _, id := range ids {
		personas = append(personas, personaSummary{ID: id, Greeting: h.composer.Greeting(id)})
	}

	utils.RespondJSON(w, http.StatusOK, personas)
}

func (h *Handler) handleGreeting(w http.ResponseWriter, r *http.Request) {
	personaID := chi.URLParam(r, "personaID")
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"personaId": personaID,
		"greeting":  h.composer.Greeting(personaID),
	})
}
