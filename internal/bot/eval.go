package bot

import (
	"github.com/sachio222/civil-war-strategy-online-sub000/pkg/cws"
)

// moveScorer picks a destination city for an army, or 0 to stay put.
// The heuristic evaluator below is the default; the neural strategy
// substitutes its own.
type moveScorer func(g *cws.GameState, s cws.Side, armyID int) int

// aggressThreshold maps the strength ratio onto the stay-home penalty
// applied per fortification level of the army's current city. An army
// that feels outmatched clings to its walls; a dominant one ignores them.
func aggressThreshold(aggress float64) int {
	switch {
	case aggress > 3:
		return 5
	case aggress > 2:
		return 20
	case aggress > 1.5:
		return 80
	}
	return 200
}

// evaluateMove scores every adjacent city for one army and returns the
// best destination, or 0 when no move beats standing fast. Scores below
// zero are vetoes; an army facing more enemy strength in its theater than
// it has men only marches for a score of 50 or better.
func evaluateMove(g *cws.GameState, s cws.Side, bold int, aggress float64, armyID int) int {
	a := g.Army(armyID)
	from := a.Location
	fromCity := g.City(from)
	enemy := s.Enemy()

	thresh := aggressThreshold(aggress)
	pressure := g.TheaterStrength(enemy, from)
	if pressure == 0 {
		thresh = 0
	}
	if bold > 1 {
		thresh /= 2
	}

	// Base strength: own size less every adjacent occupant, friend or foe.
	base := a.Size
	for _, n := range fromCity.Neighbors() {
		if occ := g.City(n).Occupied; occ > 0 {
			base -= g.Army(occ).Size
		}
	}
	base /= 100
	if bold > 0 {
		base += 20 * bold
	}

	best, bestScore := 0, 0
	for _, nb := range fromCity.Neighbors() {
		nbCity := g.City(nb)
		c := nbCity.Occupied

		// Don't pile onto an empty city a friendly army is already bound for.
		if c == 0 && friendlyMoveBoundFor(g, s, nb) {
			continue
		}

		y := base - thresh*fromCity.Fort - fromCity.Value + botIntn(30)
		if fromCity.Fort > 0 && armyID == fromCity.Occupied {
			y -= 25
			if g.Settings.Realism > 0 {
				y -= 50
			}
		}
		if nb == g.Side(enemy).Capital && g.VicFlags[cws.VicCapital] > 0 {
			y += 200
		}
		if nbCity.Owner != s {
			y += 5*nbCity.Value + 10*nbCity.Fort
		}

		if nbCity.Owner == enemy {
			y = scoreAttack(g, s, bold, armyID, nb, y)
			if y <= -9999 {
				continue
			}
		}

		// A stationary friend already holds the city; joining him just stacks.
		if nbCity.Owner == s && c > 0 && g.Army(c).Move == 0 {
			y -= g.Army(c).Size
		}

		// Push toward the enemy heartland.
		if s == cws.Union && nbCity.Y > fromCity.Y {
			y += 2
		}
		if s == cws.Confederate && nbCity.Y < fromCity.Y {
			y += 2
		}

		y += lookahead(g, s, armyID, nb, c)

		if y > bestScore {
			best, bestScore = nb, y
		}
	}

	if pressure > a.Size && best > 0 && bestScore < 50 {
		return 0
	}
	return best
}

// scoreAttack adjusts a move score for marching into an enemy-held city.
// The odds table vetoes hopeless assaults outright and rewards the
// lopsided ones in proportion to the size difference.
func scoreAttack(g *cws.GameState, s cws.Side, bold, armyID, target, y int) int {
	a := g.Army(armyID)
	c := g.City(target).Occupied
	if c == 0 {
		return y + 10*g.City(target).Value
	}
	d := g.Army(c)

	mult := 1
	if g.City(target).Fort == 1 {
		mult = 2
	}

	odds := 5.0
	if d.Size > 0 {
		odds = float64(a.Size) / float64(mult*d.Size)
		if g.Settings.Realism > 1 {
			odds *= 0.8
		}
	}

	if a.Size < 15 {
		y -= 300
		odds = 0.1
	}
	if bold < 3 && a.Size < 40 && odds < 0.8 {
		y = 0
	}
	if g.Settings.Realism > 0 {
		y -= 15
	}
	if odds < 0.5 {
		y -= 200
	}
	if bold == 0 && botFloat64() > 0.9 {
		y += 10 * (a.Leader - d.Leader + a.Experience - a.Leader)
	}
	if a.Supply < 1 {
		y -= 100
	}

	switch val := odds + 0.5*float64(bold); {
	case val < 0.3:
		return -9999
	case val < 0.5:
		y -= 300
	case val <= 0.8:
		y -= 20
	case val <= 1.2:
		y -= 5
	case val <= 1.5:
		y += 10
	default:
		y += int(0.5*float64(a.Size-d.Size)) + botIntn(50)
	}
	return y
}

// lookahead scores the ring beyond a candidate destination: neutral and
// enemy cities two hops out pull the army forward, and standing next to
// the enemy capital is worth holding.
func lookahead(g *cws.GameState, s cws.Side, armyID, nb, occupant int) int {
	enemy := s.Enemy()
	y := 0
	for _, m := range g.City(nb).Neighbors() {
		mc := g.City(m)
		if mc.Owner == cws.SideNone || mc.Owner == enemy {
			y += 3*mc.Value + 4*mc.Fort
		}
		if mc.Owner == enemy && occupant > 0 {
			d := g.Army(occupant)
			odds := 5.0
			if d.Size > 0 {
				odds = float64(g.Army(armyID).Size) / float64(d.Size)
			}
			if odds < 1 {
				y -= 2
			}
		}
		if m == g.Side(enemy).Capital {
			y += 50
		}
	}
	return y
}

// friendlyMoveBoundFor reports whether any friendly army already has a
// pending move into city id.
func friendlyMoveBoundFor(g *cws.GameState, s cws.Side, id int) bool {
	first, last := cws.ArmyIDs(s)
	for k := first; k <= last; k++ {
		a := g.Army(k)
		if a.Location > 0 && a.Move == id {
			return true
		}
	}
	return false
}
