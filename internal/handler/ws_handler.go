package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gorilla/websocket"
	"github.com/sachio222/civil-war-strategy-online-sub000/internal/service"
)

const (
	writeWait   = 10 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = 54 * time.Second // Must be less than pongWait
	maxMsgSize  = 512
	sendBufSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS handled by middleware; tighten in production
	},
}

// WSHandler upgrades spectator connections. Spectating needs no token: the
// game code is the capability, and the stream carries only what the status
// and poll endpoints already expose.
type WSHandler struct {
	hub     *Hub
	gameSvc *service.GameService
}

// NewWSHandler creates a WSHandler.
func NewWSHandler(hub *Hub, gameSvc *service.GameService) *WSHandler {
	return &WSHandler{hub: hub, gameSvc: gameSvc}
}

// ServeWS handles GET /api/v1/games/{code}/ws.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	game, err := h.gameSvc.Status(r.Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := &WSConn{
		conn:     conn,
		gameCode: game.Code,
		send:     make(chan []byte, sendBufSize),
	}
	h.hub.Register(client)

	// A welcome frame confirms the subscription and carries the current
	// game status so a late-joining spectator can catch up.
	welcome, _ := json.Marshal(WSEvent{
		Type:     "connected",
		GameCode: game.Code,
		Data: map[string]any{
			"status":       game.Status,
			"current_side": game.CurrentSide,
			"turn_number":  game.TurnNumber,
		},
	})
	client.send <- welcome

	go h.writePump(client)
	go h.readPump(client)

	log.Info().Str("gameCode", game.Code).Int("watchers", h.hub.SubscriberCount(game.Code)).Msg("Spectator connected")
}

// readPump discards inbound frames; the spectator stream is one-way. It
// exists to answer pings and notice the close.
func (h *WSHandler) readPump(c *WSConn) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
		log.Info().Str("gameCode", c.gameCode).Msg("Spectator disconnected")
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("gameCode", c.gameCode).Msg("WebSocket unexpected close")
			}
			return
		}
	}
}

// writePump writes queued events and keeps the connection alive with pings.
func (h *WSHandler) writePump(c *WSConn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Drain queued messages into the same write
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte("\n"))
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
