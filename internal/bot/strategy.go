package bot

import (
	"github.com/sachio222/civil-war-strategy-online-sub000/pkg/cws"
)

// Strategy plays one side's order phase. PlayTurn mutates the state
// through the engine's order interface and returns the orders it issued,
// in order, for logging and relay. It never resolves the month; the
// caller does that once both sides are in.
type Strategy interface {
	Name() string
	PlayTurn(g *cws.GameState, s cws.Side) []cws.Order
}

// GonnxModelPath is the directory containing moves.onnx. Set at startup
// from the GONNX_MODEL_PATH env var; empty means heuristic play only.
var GonnxModelPath string

// StrategyForDifficulty returns the strategy for a difficulty level 1..5.
// Levels 1-2 play a timid hand, 3 is the standard heuristic, 4-5 press
// every advantage. When an ONNX move model is available it replaces the
// move evaluator at levels 4-5.
func StrategyForDifficulty(difficulty int) Strategy {
	switch {
	case difficulty <= 2:
		return &HeuristicStrategy{Bold: 1, Temper: 0.5}
	case difficulty >= 4:
		if GonnxModelPath != "" {
			return newGonnxOrFallback()
		}
		return &HeuristicStrategy{Bold: 3, Temper: 1.5}
	default:
		return &HeuristicStrategy{Bold: 2, Temper: 1}
	}
}

// --- HoldStrategy ---

// HoldStrategy issues no orders at all. Useful as a baseline opponent
// and for exercising the resolver with one passive side.
type HoldStrategy struct{}

func (HoldStrategy) Name() string { return "hold" }

func (HoldStrategy) PlayTurn(_ *cws.GameState, _ cws.Side) []cws.Order {
	return nil
}

// --- RandomStrategy ---

// RandomStrategy gives each army a random valid order for testing:
// roughly a third hold, the rest march to a random neighbor.
type RandomStrategy struct{}

func (RandomStrategy) Name() string { return "random" }

func (RandomStrategy) PlayTurn(g *cws.GameState, s cws.Side) []cws.Order {
	var orders []cws.Order
	for _, id := range g.ArmiesOf(s) {
		if botFloat64() < 0.3 {
			continue
		}
		a := g.Army(id)
		if a.Move != 0 {
			continue
		}
		adj := g.City(a.Location).Neighbors()
		if len(adj) == 0 {
			continue
		}
		for _, idx := range botPerm(len(adj)) {
			if err := g.OrderMove(s, id, adj[idx]); err == nil {
				orders = append(orders, cws.Order{
					Type: cws.OrderMove, Side: s, Army: id, Dest: adj[idx],
				})
				break
			}
		}
	}
	return orders
}
