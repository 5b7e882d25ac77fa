package bot

import (
	"github.com/sachio222/civil-war-strategy-online-sub000/pkg/cws"
)

// navalPass runs the fleet for one month. Standing obligations come
// first: a grudge sends the fleet hunting the enemy's, and an enemy
// raider bleeding the treasury pulls ours out to sea in answer. After
// that the fleet builds where it lies, lands marines on undefended
// neutral ports, and shells or avoids enemy harbors by temperament.
func (t *turn) navalPass() {
	g, s := t.g, t.s
	f := g.Fleet(s)

	if f.Size() < 1 {
		t.buildShip()
		if f.Size() < 1 {
			return
		}
	}

	if g.Grudge == s {
		if e := g.Fleet(s.Enemy()); e.Size() > 0 && e.Location != f.Location {
			g.SailFleet(s, e.Location)
			return
		}
	}
	if g.Commerce == s.Enemy() && g.Raider > 0 && f.Location != cws.FleetRaiding {
		if g.RaidCommerce(s) == nil {
			return
		}
	}

	if f.Location == cws.FleetRaiding {
		// Raiders mostly put back to port before the hunting squadrons
		// find them.
		if botFloat64() < 0.9 {
			t.sailTo(t.chooseSailDest())
		}
		return
	}

	c := g.City(f.Location)
	if c == nil {
		return
	}

	if c.Owner == cws.SideNone && c.Occupied == 0 && f.Size() > 1 &&
		(s == cws.Union || g.Settings.Realism == 0) &&
		t.pressure(f.Location) < 100 {
		if g.Invade(s) == nil {
			return
		}
	}

	if c.Owner == s {
		t.buildShip()
	}

	if c.Owner == s || c.Owner == cws.SideNone {
		t.sailTo(t.chooseSailDest())
		return
	}

	// Anchored off an enemy port.
	if c.Occupied == 0 || botFloat64() > 0.3 {
		g.Bombard(s)
		return
	}
	t.sailTo(t.chooseSailDest())
}

// buildShip lays one hull, founding the fleet at a random friendly port
// when none is afloat. Ironclads are preferred whenever the treasury
// covers them; a big fleet increasingly declines new construction.
func (t *turn) buildShip() {
	g, s := t.g, t.s
	f := g.Fleet(s)
	st := g.Side(s)

	if st.Cash < 100 || f.Size() > 9 {
		return
	}
	if botFloat64() < 0.07*float64(f.Size()) {
		return
	}

	port := f.Location
	if f.Size() < 1 {
		ports := t.friendlyPorts()
		if len(ports) == 0 {
			return
		}
		port = ports[botIntn(len(ports))]
	}

	ironclad := st.Cash >= 200
	if err := g.BuildShip(s, port, ironclad); err != nil && ironclad {
		g.BuildShip(s, port, false)
	}
}

// friendlyPorts lists owned ports the enemy fleet is not sitting on.
func (t *turn) friendlyPorts() []int {
	g, s := t.g, t.s
	e := g.Fleet(s.Enemy())
	var out []int
	for i := 1; i <= cws.NumCities; i++ {
		c := g.City(i)
		if !c.Port || c.Owner != s {
			continue
		}
		if e.Size() > 0 && e.Location == i {
			continue
		}
		out = append(out, i)
	}
	return out
}

// chooseSailDest picks where the fleet goes next: close with a weaker
// enemy fleet, press enemy harbors, otherwise cruise at random.
func (t *turn) chooseSailDest() int {
	g, s := t.g, t.s
	f := g.Fleet(s)
	e := g.Fleet(s.Enemy())

	var ports []int
	for i := 1; i <= cws.NumCities; i++ {
		if g.City(i).Port && i != f.Location {
			ports = append(ports, i)
		}
	}
	if len(ports) == 0 {
		return 0
	}

	best := 0
	for _, p := range ports {
		c := g.City(p)
		if c.Owner == cws.SideNone {
			continue
		}
		if e.Size() > 0 && e.Location == p && f.Size() >= e.Size() && botFloat64() > 0.1 {
			return p
		}
		if c.Owner != s {
			best = p
			if botFloat64() > 0.8 {
				return p
			}
		}
	}
	if best == 0 {
		return ports[botIntn(len(ports))]
	}
	return best
}

func (t *turn) sailTo(dest int) {
	if dest < 1 || dest == t.g.Fleet(t.s).Location {
		return
	}
	t.g.SailFleet(t.s, dest)
}
