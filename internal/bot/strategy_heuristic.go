package bot

import (
	"github.com/sachio222/civil-war-strategy-online-sub000/pkg/cws"
)

const fortCost = 200

// HeuristicStrategy plays the classic rule set: resupply starving armies,
// wall up threatened cities, recruit while the treasury allows, run the
// navy and the railroad, then march every army where the move evaluator
// points it. Bold is the risk appetite (1 timid .. 3 reckless); Temper
// scales the strength-ratio reading the passes key off.
type HeuristicStrategy struct {
	Bold   int
	Temper float64

	// pick overrides the move evaluator; nil means the heuristic one.
	pick moveScorer
}

func (h *HeuristicStrategy) Name() string { return "heuristic" }

func (h *HeuristicStrategy) PlayTurn(g *cws.GameState, s cws.Side) []cws.Order {
	temper := h.Temper
	if temper == 0 {
		temper = 1
	}
	t := &turn{
		g: g, s: s, bold: h.Bold,
		aggress: g.Side(s).Aggression * temper,
		pick:    h.pick,
	}
	if t.pick == nil {
		t.pick = func(g *cws.GameState, s cws.Side, armyID int) int {
			return evaluateMove(g, s, t.bold, t.aggress, armyID)
		}
	}

	t.resupplyPass()
	t.fortifyPass()
	t.recruitPass()
	t.navalPass()
	t.combinePass()
	t.railroadPass()
	t.movePass()
	t.drillPass()

	t.orders = append(t.orders, cws.Order{Type: cws.OrderEndTurn, Side: s})
	return t.orders
}

// turn carries one side's decision state through the passes.
type turn struct {
	g       *cws.GameState
	s       cws.Side
	bold    int
	aggress float64
	pick    moveScorer
	orders  []cws.Order
}

// apply runs an order through the engine, recording it when accepted.
func (t *turn) apply(o cws.Order) bool {
	o.Side = t.s
	if err := t.g.Apply(o); err != nil {
		return false
	}
	t.orders = append(t.orders, o)
	return true
}

// pressure is the enemy theater strength around a city.
func (t *turn) pressure(city int) int {
	return t.g.TheaterStrength(t.s.Enemy(), city)
}

// resupplyPass feeds every army that has run out of supply.
func (t *turn) resupplyPass() {
	for _, id := range t.g.ArmiesOf(t.s) {
		if t.g.Army(id).Supply < 1 {
			t.apply(cws.Order{Type: cws.OrderSupply, Army: id})
		}
	}
}

// fortifyPass walls up the capital first, then any garrisoned city whose
// surrounding enemy strength exceeds its garrison, while cash and nerve
// hold out.
func (t *turn) fortifyPass() {
	g, s := t.g, t.s
	st := g.Side(s)
	if st.Cash < fortCost {
		return
	}

	target := 0
	skipSearch := false
	if cap := st.Capital; cap > 0 {
		c := g.City(cap)
		if c.Occupied != 0 && c.Fort <= 1 {
			if c.Owner == s {
				target = cap
				skipSearch = true
			}
		}
	}

	for {
		if !skipSearch {
			if 1+botFloat64() < float64(t.bold)+t.aggress {
				return
			}
			target = 0
			for _, i := range g.ArmiesOf(s) {
				a := g.Army(i)
				x := a.Location
				if occ := g.City(x).Occupied; occ > 0 && g.Army(occ).Move < 0 {
					continue
				}
				if a.Move < 0 {
					continue
				}
				if g.City(x).Fort > 1 {
					continue
				}
				if t.pressure(x) > a.Size {
					target = x
					break
				}
			}
		}
		skipSearch = false

		if target == 0 || g.City(target).Fort > 1 {
			return
		}
		if !t.apply(cws.Order{Type: cws.OrderFortify, City: target}) {
			return
		}

		// A Union side with no navy afloat and a thin purse stops digging
		// and saves for hulls.
		if s == cws.Union && g.Fleet(s).Size() < 1 && botFloat64() > 0.5 && st.Cash < 222 {
			return
		}
		if 3*botFloat64() > 1+t.aggress && st.Cash >= fortCost {
			continue
		}
		return
	}
}

// enoughArmies counts fielded armies, discounted when the enemy's total
// strength outweighs ours. Zero means the side is badly outmatched.
func (t *turn) enoughArmies() int {
	g, s := t.g, t.s
	enemyTenth := 0
	for _, id := range g.ArmiesOf(s.Enemy()) {
		enemyTenth += g.Army(id).Size / 10
	}
	count, ownTenth := 0, 0
	for _, id := range g.ArmiesOf(s) {
		count++
		ownTenth += g.Army(id).Size / 10
	}
	if enemyTenth > ownTenth {
		count -= 2
	}
	if enemyTenth > 2*ownTenth {
		count = 0
	}
	return count
}

// recruitPass raises and reinforces armies. A Union side with no fleet
// lays a hull first; a side that already fields plenty of armies skims
// cash toward the shipyard instead of the muster rolls.
func (t *turn) recruitPass() {
	g, s := t.g, t.s
	st := g.Side(s)

	if s == cws.Union && g.Fleet(s).Size() < 1 && st.Cash > 100 {
		t.buildShip()
		if st.Cash < 100 {
			return
		}
	}

	if float64(t.enoughArmies()) > 2+3*float64(s)+3*botFloat64() {
		return
	}

	slush := 0
	f := g.Fleet(s)
	if f.Size() < 5 && st.Cash > 100 && f.Location != cws.FleetRaiding &&
		f.Location > 0 && g.City(f.Location).Owner == s {
		slush = 100
		st.Cash -= 100
	}
	defer func() { st.Cash += slush }()
	if st.Cash < 100 {
		return
	}

	cities := g.RecruitCandidates(s)
	if len(cities) == 0 {
		return
	}
	for tries := 0; st.Cash >= 100 && tries < 8; tries++ {
		city := cities[t.pickRecruitCity(cities)]
		if !t.apply(cws.Order{Type: cws.OrderRecruit, City: city}) {
			return
		}
	}
}

// pickRecruitCity chooses from the eligible-city lottery: prefer cities
// whose garrison can still grow, and under realism weigh city value and
// supply-line integrity.
func (t *turn) pickRecruitCity(cities []int) int {
	g, s := t.g, t.s
	choose := -1
	for i, id := range cities {
		if occ := g.City(id).Occupied; occ > 0 && g.Army(occ).Size < 155 {
			choose = i
		}
	}
	if choose < 0 {
		choose = botIntn(len(cities))
	}

	if g.Settings.Realism > 0 {
		best := 0
		for i, id := range cities {
			var y int
			if g.City(id).Occupied == 0 {
				y = 3*g.City(id).Value + 33
			} else {
				y = 2*g.City(id).Value + 20
			}
			if g.CutOff(s, id) {
				y /= 3
			}
			if y > best && botFloat64() > 0.5 {
				best = y
				choose = i
			}
		}
	}

	if g.Side(s).Cash < 100 {
		choose = len(cities) - 1
	}
	return choose
}

// combinePass merges stationary armies sharing a city into one column.
func (t *turn) combinePass() {
	g, s := t.g, t.s
	first, last := cws.ArmyIDs(s)

	var cities []int
	for c := 1; c <= cws.NumCities; c++ {
		city := g.City(c)
		if city.Owner != s || city.Occupied == 0 {
			continue
		}
		for j := first; j <= last; j++ {
			a := g.Army(j)
			if a.Location == c && city.Occupied != j && a.Move == 0 {
				cities = append(cities, c)
				break
			}
		}
	}
	if len(cities) == 0 {
		return
	}

	target := cities[botIntn(len(cities))]
	keep := g.City(target).Occupied
	for j := first; j <= last; j++ {
		if j == keep {
			continue
		}
		a := g.Army(j)
		if a.Location != target || a.Move != 0 {
			continue
		}
		if t.apply(cws.Order{Type: cws.OrderCombine, Army: keep, Other: j}) {
			// The merged column rests; one merge per city per month.
			return
		}
	}
}

// movePass runs the evaluator over every free army and records the
// marches. The capital garrison holds when enemies press the district.
func (t *turn) movePass() {
	g, s := t.g, t.s
	st := g.Side(s)

	for _, i := range g.ArmiesOf(s) {
		a := g.Army(i)
		if a.Move < 0 {
			continue
		}
		if a.Supply < 1 && botFloat64() > 0.1 {
			continue
		}

		loc := a.Location
		if t.pressure(loc) > 0 && loc == st.Capital && g.City(loc).Occupied == i {
			continue
		}
		if loc == st.Capital && g.VicFlags[cws.VicCapital] != 0 && t.capitalDistrictThreatened() {
			continue
		}

		dest := t.pick(g, s, i)
		if dest == 0 {
			continue
		}

		// Two friendly armies swapping cities accomplish nothing.
		if g.City(dest).Owner == s {
			if y := g.City(dest).Occupied; y > 0 && g.Army(y).Move == loc {
				continue
			}
		}

		t.apply(cws.Order{Type: cws.OrderMove, Army: i, Dest: dest})
	}
}

// capitalDistrictThreatened reports enemy strength in any city adjacent
// to the capital.
func (t *turn) capitalDistrictThreatened() bool {
	cap := t.g.Side(t.s).Capital
	if cap == 0 {
		return false
	}
	for _, k := range t.g.City(cap).Neighbors() {
		if t.pressure(k) > 0 {
			return true
		}
	}
	return false
}

// drillPass trains every army left idle this month.
func (t *turn) drillPass() {
	for _, i := range t.g.ArmiesOf(t.s) {
		a := t.g.Army(i)
		if a.Move == 0 && a.Experience < 6 && a.Experience < a.Leader {
			t.apply(cws.Order{Type: cws.OrderDrill, Army: i})
		}
	}
}
