package service

// Broadcaster pushes relay events (turn submitted, phase changed, game
// joined/ended/abandoned) to spectators. The WebSocket hub implements it;
// services never import the handler package.
type Broadcaster interface {
	BroadcastGameEvent(gameCode string, eventType string, data any)
}

// NoopBroadcaster drops every event. Used when no hub is wired, e.g. in
// the campaign runner.
type NoopBroadcaster struct{}

func (NoopBroadcaster) BroadcastGameEvent(string, string, any) {}
