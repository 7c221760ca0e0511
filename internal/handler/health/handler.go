package health

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saarthi-app/backend/internal/service/chat"
	"github.com/saarthi-app/backend/pkg/utils"
)

// Handler exposes the pipeline health report.
type Handler struct {
	chatSvc *chat.Service
}

func New(chatSvc *chat.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.handleHealth)
}

// handleHealth probes every stage. Degraded pipelines still answer 200;
// only a fully unhealthy pipeline gets 503 so load balancers keep routing
// to an instance that can serve fallback responses.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := h.chatSvc.CheckHealth(r.Context())

	status := http.StatusOK
	if report.Status == chat.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	utils.RespondJSON(w, status, report)
}
