package bot

import (
	"github.com/sachio222/civil-war-strategy-online-sub000/pkg/cws"
)

// railroadPass loads the quietest reserve army onto the train and hauls
// it toward a threatened rear city, a bare fortress, or the capital when
// it stands undefended. One train per side per month.
func (t *turn) railroadPass() {
	g, s := t.g, t.s
	st := g.Side(s)
	if st.Rail != 0 {
		return
	}

	capital := st.Capital
	capitalGarrisoned := capital > 0 && g.City(capital).Occupied > 0

	// Pick the army least needed where it stands.
	minPressure := 1 << 15
	index := 0
	for _, i := range g.ArmiesOf(s) {
		a := g.Army(i)
		if a.Move != 0 {
			continue
		}
		if capitalGarrisoned && t.frontierNeighbors(a.Location) > 1 {
			continue
		}
		p := t.pressure(a.Location)
		if g.VicFlags[cws.VicCapital] > 0 && capital > 0 && !capitalGarrisoned {
			// An empty capital overrides the quiet-sector rule; any army
			// will do for the rescue run.
			if p >= minPressure {
				p = minPressure - 1
			}
		}
		if p < minPressure {
			minPressure = p
			index = i
		}
	}
	if index == 0 || minPressure > int(0.3*float64(g.Army(index).Size)) {
		return
	}

	from := g.Army(index).Location
	fromY := g.City(from).Y

	dest := 0
	for i := 1; i <= cws.NumCities; i++ {
		c := g.City(i)
		if c.Owner != s || c.Occupied > 0 {
			continue
		}
		p := t.pressure(i)
		if p == 0 || p > 3*g.Army(index).Size {
			continue
		}
		if s == cws.Union && c.Y > fromY {
			dest = i
		}
		if s == cws.Confederate && c.Y < fromY {
			dest = i
		}
		if c.Fort > 0 {
			dest = i
			break
		}
	}

	if g.VicFlags[cws.VicCapital] > 0 && capital > 0 && !capitalGarrisoned &&
		t.pressure(capital) > 0 {
		dest = capital
	}

	if dest < 1 || dest == from {
		return
	}
	t.apply(cws.Order{Type: cws.OrderRailroad, Army: index, Dest: dest})
}

// frontierNeighbors counts cities adjacent to id not held by this side.
func (t *turn) frontierNeighbors(id int) int {
	n := 0
	for _, x := range t.g.City(id).Neighbors() {
		if t.g.City(x).Owner != t.s {
			n++
		}
	}
	return n
}
