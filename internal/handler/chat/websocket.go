package chat

import (
	"log"
	"math/rand"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// WebSocketHandler carries the same per-turn semantics as POST /chat over a
// persistent connection.
type WebSocketHandler struct {
	chatHandler *Handler
	upgrader    websocket.Upgrader
}

// NewWebSocketHandler wraps the chat handler for websocket clients.
func NewWebSocketHandler(chatHandler *Handler) *WebSocketHandler {
	return &WebSocketHandler{
		chatHandler: chatHandler,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes wires the websocket endpoint.
func (h *WebSocketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/chat/ws/{sessionID}", h.handleWebSocket)
}

type wsInbound struct {
	Message   string `json:"message"`
	PersonaID string `json:"personaId"`
}

type wsOutbound struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		http.Error(w, "sessionID is required", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for session=%s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	log.Printf("[ws] connection opened for session=%s", sessionID)

	for {
		var inbound wsInbound
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read error for session=%s: %v", sessionID, err)
			}
			return
		}

		if inbound.Message == "" {
			if err := conn.WriteJSON(wsOutbound{Error: "message is required"}); err != nil {
				return
			}
			continue
		}

		reply, err := h.chatHandler.runTurn(r.Context(), chatRequest{
			Message:   inbound.Message,
			SessionID: sessionID,
			PersonaID: inbound.PersonaID,
		})
		if err != nil {
			log.Printf("[ws] turn failed for session=%s: %v", sessionID, err)
			reply = fallbackResponses[rand.Intn(len(fallbackResponses))]
		}

		if err := conn.WriteJSON(wsOutbound{Response: reply}); err != nil {
			log.Printf("[ws] write error for session=%s: %v", sessionID, err)
			return
		}
	}
}
