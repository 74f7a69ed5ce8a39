package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/ayusman/abhinaya/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local UI connections only
	},
}

// EventsHandler pushes reaction events to connected WebSocket clients.
// The session publishes into it; clients only listen.
type EventsHandler struct {
	log     zerolog.Logger
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewEventsHandler creates an EventsHandler.
func NewEventsHandler(log zerolog.Logger) *EventsHandler {
	return &EventsHandler{
		log:     log.With().Str("component", "events").Logger(),
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP upgrades the connection and parks it until the client leaves.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Reads are only consumed to notice disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Publish fans a reaction out to every connected client. Wire it to
// Session.OnReaction.
func (h *EventsHandler) Publish(r session.Reaction) {
	msg, err := json.Marshal(r)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.Debug().Err(err).Msg("drop slow client write")
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *EventsHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
