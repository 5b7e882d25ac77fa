package handler

// BroadcastGameEvent implements service.Broadcaster using the WebSocket hub.
func (h *Hub) BroadcastGameEvent(gameCode string, eventType string, data any) {
	h.BroadcastToGame(gameCode, WSEvent{
		Type:     eventType,
		GameCode: gameCode,
		Data:     data,
	})
}
