package cws

import (
	"encoding/json"
	"fmt"
)

// SnapshotVersion is the current save-format version. Bump it whenever the
// GameState wire shape changes incompatibly.
const SnapshotVersion = 1

// Snapshot is the versioned envelope the persistence and relay layers
// exchange. The embedded state is the complete world; no external context
// is needed to resume a game from it.
type Snapshot struct {
	Version int        `json:"version"`
	State   *GameState `json:"state"`
}

// Marshal serializes the state into a versioned snapshot document.
func (g *GameState) Marshal() ([]byte, error) {
	return json.Marshal(Snapshot{Version: SnapshotVersion, State: g})
}

// LoadSnapshot parses a snapshot document and returns the state it holds.
// Documents written by a newer format version are refused rather than
// misread.
func LoadSnapshot(data []byte) (*GameState, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	if snap.State == nil {
		return nil, fmt.Errorf("snapshot has no state")
	}
	return snap.State, nil
}

// Equal compares two states field by field, ignoring the event log and the
// random source. Used to cross-check a relayed snapshot against a local
// re-resolution of the same orders.
func (g *GameState) Equal(other *GameState) bool {
	if other == nil {
		return false
	}
	a := g.Clone()
	b := other.Clone()
	a.Events = nil
	b.Events = nil
	aj, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bj, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(aj) == string(bj)
}
