package handler

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WSEvent is the envelope for all WebSocket messages. The relay pushes the
// engine's replayable event log through these, so spectators can animate a
// month without polling.
type WSEvent struct {
	Type     string `json:"type"`
	GameCode string `json:"game_code"`
	Data     any    `json:"data"`
}

// WSConn wraps a spectator connection.
type WSConn struct {
	conn     *websocket.Conn
	gameCode string
	send     chan []byte
}

// Hub manages spectator connections grouped by game code.
type Hub struct {
	mu    sync.RWMutex
	games map[string]map[*WSConn]bool
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{games: make(map[string]map[*WSConn]bool)}
}

// Register adds a connection to its game channel.
func (h *Hub) Register(c *WSConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.games[c.gameCode] == nil {
		h.games[c.gameCode] = make(map[*WSConn]bool)
	}
	h.games[c.gameCode][c] = true
}

// Unregister removes a connection and closes its send channel.
func (h *Hub) Unregister(c *WSConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.games[c.gameCode]
	if !ok || !conns[c] {
		return
	}
	delete(conns, c)
	if len(conns) == 0 {
		delete(h.games, c.gameCode)
	}
	close(c.send)
}

// BroadcastToGame sends an event to every connection watching a game.
func (h *Hub) BroadcastToGame(gameCode string, event WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("gameCode", gameCode).Msg("Failed to marshal WebSocket event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.games[gameCode] {
		select {
		case c.send <- data:
		default:
			log.Warn().Str("gameCode", gameCode).Msg("Dropping WebSocket message, buffer full")
		}
	}
}

// SubscriberCount returns the number of connections watching a game.
func (h *Hub) SubscriberCount(gameCode string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.games[gameCode])
}

// ConnectionCount returns the total number of active connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, conns := range h.games {
		n += len(conns)
	}
	return n
}
