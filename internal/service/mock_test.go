package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sachio222/civil-war-strategy-online-sub000/internal/model"
)

// In-memory fakes for the repository interfaces. They are deliberately
// simple: a map guarded by a mutex, with the same guard semantics as the
// SQL implementations.

type mockGameRepo struct {
	mu    sync.Mutex
	games map[string]*model.Game
}

func newMockGameRepo() *mockGameRepo {
	return &mockGameRepo{games: make(map[string]*model.Game)}
}

func (m *mockGameRepo) Create(ctx context.Context, code string, creatorSide int, creatorUserID string) (*model.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g := &model.Game{
		Code:        code,
		Status:      "waiting",
		CreatorSide: creatorSide,
		CurrentSide: 1,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if creatorSide == 1 {
		g.UnionUserID = creatorUserID
	} else {
		g.ConfedUserID = creatorUserID
	}
	m.games[code] = g
	return copyGame(g), nil
}

func (m *mockGameRepo) FindByCode(ctx context.Context, code string) (*model.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[code]
	if !ok {
		return nil, nil
	}
	return copyGame(g), nil
}

func (m *mockGameRepo) Join(ctx context.Context, code string, side int, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[code]
	if !ok || g.Status != "waiting" || g.CreatorSide == side {
		return false, nil
	}
	if side == 1 {
		g.UnionUserID = userID
	} else {
		g.ConfedUserID = userID
	}
	g.Status = "active"
	return true, nil
}

func (m *mockGameRepo) AdvanceTurn(ctx context.Context, code string, side, turnNumber int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[code]
	if !ok || g.Status != "active" || g.CurrentSide != side || g.TurnNumber != turnNumber {
		return false, nil
	}
	g.CurrentSide = 3 - g.CurrentSide
	g.TurnNumber++
	return true, nil
}

func (m *mockGameRepo) SetFinished(ctx context.Context, code string, winner int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g, ok := m.games[code]; ok && g.Status != "finished" {
		g.Status = "finished"
		g.Winner = winner
		now := time.Now()
		g.FinishedAt = &now
	}
	return nil
}

func (m *mockGameRepo) SetAbandoned(ctx context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g, ok := m.games[code]; ok && g.Status == "waiting" {
		g.Status = "abandoned"
	}
	return nil
}

func (m *mockGameRepo) ListByUser(ctx context.Context, userID string) ([]model.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Game
	for _, g := range m.games {
		if g.UnionUserID == userID || g.ConfedUserID == userID {
			out = append(out, *copyGame(g))
		}
	}
	return out, nil
}

func (m *mockGameRepo) ListStaleWaiting(ctx context.Context, cutoff time.Time) ([]model.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Game
	for _, g := range m.games {
		if g.Status == "waiting" && g.CreatedAt.Before(cutoff) {
			out = append(out, *copyGame(g))
		}
	}
	return out, nil
}

func copyGame(g *model.Game) *model.Game {
	c := *g
	return &c
}

type archivedTurn struct {
	turnNumber int
	side       int
	state      json.RawMessage
}

type mockTurnRepo struct {
	mu    sync.Mutex
	turns map[string][]archivedTurn
}

func newMockTurnRepo() *mockTurnRepo {
	return &mockTurnRepo{turns: make(map[string][]archivedTurn)}
}

func (m *mockTurnRepo) Archive(ctx context.Context, gameCode string, turnNumber, side int, state json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.turns[gameCode] {
		if t.turnNumber == turnNumber {
			m.turns[gameCode][i] = archivedTurn{turnNumber, side, state}
			return nil
		}
	}
	m.turns[gameCode] = append(m.turns[gameCode], archivedTurn{turnNumber, side, state})
	return nil
}

func (m *mockTurnRepo) ListByGame(ctx context.Context, gameCode string) ([]model.Turn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Turn
	for _, t := range m.turns[gameCode] {
		out = append(out, model.Turn{GameCode: gameCode, TurnNumber: t.turnNumber, Side: t.side, State: t.state})
	}
	return out, nil
}

type mockCache struct {
	mu        sync.Mutex
	snapshots map[string]json.RawMessage
	phases    map[string][2]string
	ready     map[string]map[int]bool
	waiting   map[string]bool
}

func newMockCache() *mockCache {
	return &mockCache{
		snapshots: make(map[string]json.RawMessage),
		phases:    make(map[string][2]string),
		ready:     make(map[string]map[int]bool),
		waiting:   make(map[string]bool),
	}
}

func (m *mockCache) SetSnapshot(ctx context.Context, code string, state json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[code] = state
	return nil
}

func (m *mockCache) GetSnapshot(ctx context.Context, code string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshots[code], nil
}

func (m *mockCache) SetPhase(ctx context.Context, code, phase, label string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.phases[code] = [2]string{phase, label}
	return nil
}

func (m *mockCache) GetPhase(ctx context.Context, code string) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.phases[code]
	if !ok || p[0] == "" {
		return "playing", "", nil
	}
	return p[0], p[1], nil
}

func (m *mockCache) MarkReady(ctx context.Context, code string, side int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ready[code] == nil {
		m.ready[code] = make(map[int]bool)
	}
	m.ready[code][side] = true
	return nil
}

func (m *mockCache) ClearReady(ctx context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.ready, code)
	return nil
}

func (m *mockCache) ReadySides(ctx context.Context, code string) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []int
	for s := range m.ready[code] {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockCache) SetWaitingExpiry(ctx context.Context, code string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.waiting[code] = true
	return nil
}

func (m *mockCache) ClearWaitingExpiry(ctx context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.waiting, code)
	return nil
}

func (m *mockCache) DeleteGameData(ctx context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, code)
	delete(m.phases, code)
	delete(m.ready, code)
	delete(m.waiting, code)
	return nil
}

type recordedEvent struct {
	gameCode  string
	eventType string
	data      any
}

type mockBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (m *mockBroadcaster) BroadcastGameEvent(gameCode string, eventType string, data any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, recordedEvent{gameCode, eventType, data})
}

func (m *mockBroadcaster) eventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.events))
	for i, e := range m.events {
		out[i] = e.eventType
	}
	return out
}
