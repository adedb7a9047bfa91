package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/niholbooks/shop-bot/internal/usecase"
	"github.com/niholbooks/shop-bot/pkg/logger"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(wf *usecase.Workflow) {
	r.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.router.Route("/api/v1", func(v1 chi.Router) {
		updHandler := NewUpdateHandler(wf, r.logger)
		registerUpdateRoutes(v1, updHandler)
	})
}

func registerUpdateRoutes(router chi.Router, updHandler *UpdateHandler) {
	router.Route("/updates", func(upd chi.Router) {
		upd.Post("/", updHandler.handleUpdate)
	})
}
