package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saarthi-app/backend/internal/service/chat"
	"github.com/saarthi-app/backend/internal/service/reflection"
	"github.com/saarthi-app/backend/pkg/utils"
)

// Handler serves the conversation endpoints.
type Handler struct {
	chatSvc *chat.Service
	store   chat.Store
}

// New creates the chat handler. store may be nil when no session
// persistence is configured; the session endpoints then answer 503.
func New(chatSvc *chat.Service, store chat.Store) *Handler {
	return &Handler{chatSvc: chatSvc, store: store}
}

// RegisterRoutes mounts the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Get("/chat/sessions", h.handleListSessions)
	r.Get("/chat/sessions/{sessionID}/history", h.handleHistory)
	r.Post("/chat/sessions/{sessionID}/end", h.handleEndSession)
}

type chatRequest struct {
	UserInput       string `json:"user_input"`
	SessionID       string `json:"session_id,omitempty"`
	UserID          string `json:"user_id,omitempty"`
	InteractionMode string `json:"interaction_mode"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.InteractionMode == "" {
		payload.InteractionMode = reflection.ModeWisdom
	}

	result, err := h.chatSvc.ProcessMessage(r.Context(), chat.Request{
		UserInput:       payload.UserInput,
		SessionID:       payload.SessionID,
		UserID:          payload.UserID,
		InteractionMode: payload.InteractionMode,
	})
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrEmptyInput),
			errors.Is(err, chat.ErrInputTooLong),
			errors.Is(err, reflection.ErrInvalidMode):
			utils.RespondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, chat.ErrSessionEnded):
			utils.RespondError(w, http.StatusConflict, "session has ended")
		default:
			utils.RespondError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "session store not configured")
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		utils.RespondError(w, http.StatusBadRequest, "user_id query parameter is required")
		return
	}

	sessions, err := h.store.ListSessions(r.Context(), userID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "session store not configured")
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	session, err := h.store.GetSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, chat.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, "session not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	turns, err := h.store.History(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"session": session,
		"turns":   turns,
	})
}

func (h *Handler) handleEndSession(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "session store not configured")
		return
	}

	var payload struct {
		Summary string `json:"summary,omitempty"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	sessionID := chi.URLParam(r, "sessionID")
	session, err := h.store.EndSession(r.Context(), sessionID, payload.Summary)
	if err != nil {
		if errors.Is(err, chat.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, "session not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to end session")
		return
	}

	utils.RespondJSON(w, http.StatusOK, session)
}
