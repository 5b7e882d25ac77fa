package handler

import (
	"encoding/json"
	"testing"
)

func newHubConn(gameCode string) *WSConn {
	return &WSConn{gameCode: gameCode, send: make(chan []byte, 4)}
}

func TestHubBroadcastToGame(t *testing.T) {
	hub := NewHub()
	watcher := newHubConn("ABC123")
	other := newHubConn("ZZZ999")
	hub.Register(watcher)
	hub.Register(other)

	hub.BroadcastToGame("ABC123", WSEvent{Type: "turn_submitted", GameCode: "ABC123", Data: map[string]int{"side": 1}})

	select {
	case raw := <-watcher.send:
		var ev WSEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if ev.Type != "turn_submitted" || ev.GameCode != "ABC123" {
			t.Errorf("got event %+v", ev)
		}
	default:
		t.Fatal("watcher did not receive broadcast")
	}

	select {
	case <-other.send:
		t.Fatal("connection on another game received the broadcast")
	default:
	}
}

func TestHubSubscriberCounts(t *testing.T) {
	hub := NewHub()
	a := newHubConn("ABC123")
	b := newHubConn("ABC123")
	c := newHubConn("ZZZ999")
	hub.Register(a)
	hub.Register(b)
	hub.Register(c)

	if n := hub.SubscriberCount("ABC123"); n != 2 {
		t.Errorf("SubscriberCount = %d, want 2", n)
	}
	if n := hub.ConnectionCount(); n != 3 {
		t.Errorf("ConnectionCount = %d, want 3", n)
	}

	hub.Unregister(a)
	if n := hub.SubscriberCount("ABC123"); n != 1 {
		t.Errorf("after unregister, SubscriberCount = %d, want 1", n)
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	c := newHubConn("ABC123")
	hub.Register(c)
	hub.Unregister(c)

	if _, open := <-c.send; open {
		t.Error("send channel still open after unregister")
	}

	// Unregistering again must not panic on the closed channel.
	hub.Unregister(c)
}

func TestHubBroadcastDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	c := &WSConn{gameCode: "ABC123", send: make(chan []byte, 1)}
	hub.Register(c)

	hub.BroadcastToGame("ABC123", WSEvent{Type: "one", GameCode: "ABC123"})
	hub.BroadcastToGame("ABC123", WSEvent{Type: "two", GameCode: "ABC123"})

	var ev WSEvent
	if err := json.Unmarshal(<-c.send, &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev.Type != "one" {
		t.Errorf("buffered event = %q, want the first one", ev.Type)
	}
	select {
	case <-c.send:
		t.Error("second event should have been dropped")
	default:
	}
}

func TestHubBroadcastGameEvent(t *testing.T) {
	hub := NewHub()
	c := newHubConn("ABC123")
	hub.Register(c)

	hub.BroadcastGameEvent("ABC123", "phase_changed", map[string]string{"phase": "events"})

	var ev WSEvent
	if err := json.Unmarshal(<-c.send, &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev.Type != "phase_changed" {
		t.Errorf("type = %q, want phase_changed", ev.Type)
	}
}
