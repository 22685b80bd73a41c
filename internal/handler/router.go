package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chathandler "github.com/sayuki-dev/oshitalk/backend/internal/handler/chat"
	personahandler "github.com/sayuki-dev/oshitalk/backend/internal/handler/persona"
	middlewarePkg "github.com/sayuki-dev/oshitalk/backend/internal/middleware"
	"github.com/sayuki-dev/oshitalk/backend/internal/service/history"
	promptservice "github.com/sayuki-dev/oshitalk/backend/internal/service/prompt"
	"github.com/sayuki-dev/oshitalk/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(historyStore *history.Store, composer *promptservice.Composer, generator chathandler.Generator, defaultPersonaID string, recentLimit int) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	chatHandler := chathandler.New(historyStore, composer, generator, defaultPersonaID, recentLimit)
	wsHandler := chathandler.NewWebSocketHandler(chatHandler)
	personaHandler := personahandler.New(composer)

	r.Route("/api", func(api chi.Router) {
		chatHandler.RegisterRoutes(api)
		wsHandler.RegisterRoutes(api)
		personaHandler.RegisterRoutes(api)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
