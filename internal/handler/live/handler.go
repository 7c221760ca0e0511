package live

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/saarthi-app/backend/internal/service/chat"
	"github.com/saarthi-app/backend/internal/service/reflection"
)

// Handler runs a live conversation over a websocket: one inbound text
// message per turn, one result frame back, on the same session for the
// life of the connection.
type Handler struct {
	chatSvc  *chat.Service
	upgrader websocket.Upgrader
}

func New(chatSvc *chat.Service) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the live endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/chat/ws", h.handleLiveChat)
}

type inboundFrame struct {
	Type            string `json:"type"`
	Text            string `json:"text,omitempty"`
	InteractionMode string `json:"interaction_mode,omitempty"`
	UserID          string `json:"user_id,omitempty"`
	Timestamp       int64  `json:"timestamp,omitempty"`
}

type outboundFrame struct {
	Type      string `json:"type"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func (h *Handler) handleLiveChat(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[live] websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// The session is pinned on the first turn and reused for the rest of
	// the connection.
	sessionID := r.URL.Query().Get("session_id")
	mode := r.URL.Query().Get("interaction_mode")
	if mode == "" {
		mode = reflection.ModeWisdom
	}

	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[live] connection closed unexpectedly: %v", err)
			}
			return
		}

		switch frame.Type {
		case "ping":
			h.send(conn, outboundFrame{Type: "pong"})
		case "message":
			if frame.InteractionMode != "" {
				mode = frame.InteractionMode
			}
			result, err := h.chatSvc.ProcessMessage(r.Context(), chat.Request{
				UserInput:       frame.Text,
				SessionID:       sessionID,
				UserID:          frame.UserID,
				InteractionMode: mode,
			})
			if err != nil {
				h.send(conn, outboundFrame{Type: "error", Error: clientError(err)})
				continue
			}
			sessionID = result.SessionID
			h.send(conn, outboundFrame{Type: "response", Data: result})
		default:
			h.send(conn, outboundFrame{Type: "error", Error: "unknown frame type"})
		}
	}
}

func (h *Handler) send(conn *websocket.Conn, frame outboundFrame) {
	frame.Timestamp = time.Now().UnixMilli()
	payload, err := json.Marshal(frame)
	if err != nil {
		log.Printf("[live] failed to encode frame: %v", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		log.Printf("[live] failed to write frame: %v", err)
	}
}

func clientError(err error) string {
	switch {
	case errors.Is(err, chat.ErrEmptyInput),
		errors.Is(err, chat.ErrInputTooLong),
		errors.Is(err, reflection.ErrInvalidMode):
		return err.Error()
	case errors.Is(err, chat.ErrSessionEnded):
		return "session has ended"
	}
	return "internal error"
}
