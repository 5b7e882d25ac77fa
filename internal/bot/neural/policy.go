package neural

import (
	"sort"

	"github.com/sachio222/civil-war-strategy-online-sub000/pkg/cws"
)

// The policy head emits one logit per (from, to) city pair, row-major
// over 1-indexed ids collapsed to 0-indexed rows. The diagonal entry is
// the hold logit for an army standing at that city.
const LogitLen = NumCities * NumCities

// ScoredMove is one decoded candidate for an army.
type ScoredMove struct {
	ArmyID int
	Dest   int // 0 = hold
	Score  float32
}

func logitAt(logits []float32, from, to int) float32 {
	return logits[(from-1)*NumCities+(to-1)]
}

// BestMove picks the highest-logit legal option for one army: a move to
// an adjacent city, or 0 to hold when the hold logit beats them all.
// Returns -1 when the logit vector is unusable.
func BestMove(logits []float32, g *cws.GameState, armyID int) int {
	if len(logits) < LogitLen {
		return -1
	}
	a := g.Army(armyID)
	if a == nil || !a.Alive() {
		return -1
	}
	from := a.Location

	best, bestScore := 0, logitAt(logits, from, from)
	for _, n := range g.City(from).Neighbors() {
		if sc := logitAt(logits, from, n); sc > bestScore {
			best, bestScore = n, sc
		}
	}
	return best
}

// DecodeMoveLogits ranks every legal option for every fielded army of a
// side, best first per army.
func DecodeMoveLogits(logits []float32, g *cws.GameState, s cws.Side) map[int][]ScoredMove {
	if len(logits) < LogitLen {
		return nil
	}
	out := make(map[int][]ScoredMove)
	for _, id := range g.ArmiesOf(s) {
		from := g.Army(id).Location
		moves := []ScoredMove{{ArmyID: id, Dest: 0, Score: logitAt(logits, from, from)}}
		for _, n := range g.City(from).Neighbors() {
			moves = append(moves, ScoredMove{ArmyID: id, Dest: n, Score: logitAt(logits, from, n)})
		}
		sort.Slice(moves, func(i, j int) bool { return moves[i].Score > moves[j].Score })
		out[id] = moves
	}
	return out
}
