package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chathandler "github.com/saarthi-app/backend/internal/handler/chat"
	"github.com/saarthi-app/backend/internal/handler/health"
	"github.com/saarthi-app/backend/internal/handler/live"
	middlewarePkg "github.com/saarthi-app/backend/internal/middleware"
	chatservice "github.com/saarthi-app/backend/internal/service/chat"
)

// NewRouter wires HTTP routes to core services. store may be nil when no
// session persistence is configured.
func NewRouter(chatSvc *chatservice.Service, store chatservice.Store) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	chatHandler := chathandler.New(chatSvc, store)
	healthHandler := health.New(chatSvc)
	liveHandler := live.New(chatSvc)

	r.Route("/api", func(api chi.Router) {
		chatHandler.RegisterRoutes(api)
		healthHandler.RegisterRoutes(api)
		liveHandler.RegisterRoutes(api)
	})

	return r
}
