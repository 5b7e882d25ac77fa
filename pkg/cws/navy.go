package cws

import "strconv"

// Ship build costs.
const (
	shipCost     = 100
	ironcladCost = 200
)

// loseShip strikes one ship from a side's fleet. Wooden ships join at the
// tail and sink first; ironclads are prepended and go down last. An empty
// fleet leaves the map entirely.
func (g *GameState) loseShip(s Side) {
	f := g.Fleet(s)
	if f.Size() < 1 {
		return
	}
	f.Ships = f.Ships[:len(f.Ships)-1]
	if f.Size() < 1 {
		f.Ships = ""
		f.Location = 0
	}
}

// refreshCommerce recomputes which side, if any, has its fleet out raiding.
func (g *GameState) refreshCommerce() {
	g.Commerce = SideNone
	for _, s := range []Side{Union, Confederate} {
		if g.Fleet(s).Size() > 0 && g.Fleet(s).Location == FleetRaiding {
			g.Commerce = s
		}
	}
}

// ironcladsBlocked reports whether ironclad construction is still ahead of
// its time. Realism holds them back until March 1862.
func (g *GameState) ironcladsBlocked() bool {
	if g.Settings.Realism == 0 {
		return false
	}
	return g.Year < 1862 || (g.Year == 1862 && g.Month < 3)
}

// BuildShip lays down one hull. A side with no fleet afloat must name a
// friendly port to found it in; an existing fleet builds where it lies.
// The fleet roster caps at ten ships.
func (g *GameState) BuildShip(s Side, port int, ironclad bool) error {
	o := Order{Type: OrderRecruit, Side: s, City: port}
	f := g.Fleet(s)
	st := g.Side(s)
	if f == nil {
		return reject(o, ErrWrongSide)
	}
	if f.Location == FleetRaiding {
		return reject(o, ErrFleetAtSea)
	}
	if f.Size() > 9 {
		return reject(o, ErrOverCapacity)
	}
	cost := shipCost
	if ironclad {
		if g.ironcladsBlocked() {
			return reject(o, ErrIroncladTooSoon)
		}
		cost = ironcladCost
	}
	if st.Cash < cost {
		return reject(o, ErrNotEnoughCash)
	}

	if f.Size() > 0 {
		port = f.Location
		c := g.City(port)
		if c.Owner != s {
			return reject(o, ErrCityNotOwned)
		}
	} else {
		c := g.City(port)
		if c == nil {
			return reject(o, ErrNoSuchCity)
		}
		if !c.Port {
			return reject(o, ErrNotAPort)
		}
		if c.Owner != s {
			return reject(o, ErrCityNotOwned)
		}
		if g.Fleet(s.Enemy()).Size() > 0 && g.Fleet(s.Enemy()).Location == port {
			return reject(o, ErrBlockaded)
		}
		f.Location = port
	}

	if ironclad {
		f.Ships = string(ShipIronclad) + f.Ships
	} else {
		f.Ships += string(ShipWooden)
	}
	st.Cash -= cost
	g.Log(Event{
		Type: EventNaval, Side: s, City: port, CityName: g.City(port).Name,
		Msg: s.String() + " navy increased to " + strconv.Itoa(f.Size()),
	})
	return nil
}

// SailFleet moves the fleet to another port. Arriving where the enemy
// fleet lies brings on a sea battle at once.
func (g *GameState) SailFleet(s Side, dest int) error {
	o := Order{Type: OrderMove, Side: s, Dest: dest}
	f := g.Fleet(s)
	if f == nil {
		return reject(o, ErrWrongSide)
	}
	if f.Size() < 1 {
		return reject(o, ErrNoFleet)
	}
	d := g.City(dest)
	if d == nil {
		return reject(o, ErrNoSuchCity)
	}
	if !d.Port {
		return reject(o, ErrNotAPort)
	}
	if dest == f.Location {
		return reject(o, ErrSamePort)
	}

	from := f.Location
	f.Location = dest
	f.Move = 1
	g.Log(Event{
		Type: EventNaval, Side: s, City: from, Dest: dest, DestName: d.Name,
		Msg: s.String() + " fleet of " + strconv.Itoa(f.Size()) + " ship(s) is sailing",
	})

	if e := g.Fleet(s.Enemy()); e.Size() > 0 && e.Location == dest {
		g.fleetBattle(s)
	}
	g.refreshCommerce()
	return nil
}

// RaidCommerce sends the fleet to sea to prey on enemy shipping. The raid
// income lands each month; hunting squadrons whittle the raiders down.
func (g *GameState) RaidCommerce(s Side) error {
	o := Order{Type: OrderMove, Side: s, Dest: FleetRaiding}
	f := g.Fleet(s)
	if f == nil {
		return reject(o, ErrWrongSide)
	}
	if f.Size() < 1 {
		return reject(o, ErrNoFleet)
	}
	if g.Commerce == s {
		return reject(o, ErrFleetAtSea)
	}

	f.Location = FleetRaiding
	f.Move = 1
	g.Commerce = s
	g.Log(Event{
		Type: EventNaval, Side: s, Dest: FleetRaiding,
		Msg: s.String() + " fleet sails to raid " + s.Enemy().String() + " commerce",
	})

	if e := g.Fleet(s.Enemy()); e.Size() > 0 && e.Location == FleetRaiding {
		g.fleetBattle(s)
	}
	g.refreshCommerce()
	return nil
}

// Bombard shells the enemy port the fleet is anchored off. A garrison
// soaks up casualties and supply; an empty city may be cowed into
// neutrality, unless its forts give better than they get.
func (g *GameState) Bombard(s Side) error {
	o := Order{Type: OrderMove, Side: s}
	f := g.Fleet(s)
	if f == nil {
		return reject(o, ErrWrongSide)
	}
	if f.Size() < 1 {
		return reject(o, ErrNoFleet)
	}
	target := f.Location
	c := g.City(target)
	if c == nil || target == FleetRaiding {
		return reject(o, ErrFleetAtSea)
	}
	if c.Owner != s.Enemy() {
		return reject(o, ErrNoTarget)
	}

	g.Log(Event{
		Type: EventNaval, Side: s, City: target, CityName: c.Name,
		Msg: s.String() + " fleet bombards " + c.Name,
	})

	g.Occupy(target)
	if index := c.Occupied; index > 0 {
		a := g.Army(index)
		pct := 0.005*float64(f.Size()) + 0.02*g.Rand().Float64()
		killd := int(float64(a.Size) * pct)
		if killd < 1 {
			killd = 1
		}
		x := int(0.5*float64(f.Size()) + 1)
		if x > a.Supply {
			x = a.Supply
		}
		a.Supply -= x
		a.Size -= killd
		if a.Size < 1 {
			a.Size = 1
		}
		g.Log(Event{
			Type: EventNaval, Side: s, City: target, CityName: c.Name,
			DefenderID: index, DefenderName: a.Name, DefenderLosses: killd,
			Msg: a.Name + " suffered " + strconv.Itoa(100*killd) + " casualties",
		})
		return nil
	}

	for {
		if c.Fort == 0 {
			if g.Rand().Float64() > 0.25+0.07*float64(f.Size()) {
				g.Popup(s, "Citizens of "+c.Name+" stand firm against the attack")
				return nil
			}
			if target == g.Side(s.Enemy()).Capital {
				g.Popup(s, "The capital steadfastly stands loyal")
				return nil
			}
			c.Owner = SideNone
			g.Side(s).Victory += c.Value
			g.Popup(s, c.Name+" is now neutral")
			return nil
		}

		if g.Rand().Float64() < 0.7+0.03*float64(f.Size()-c.Fort) {
			c.Fort--
			g.Log(Event{
				Type: EventNaval, Side: s, City: target, CityName: c.Name,
				Msg: c.Name + " fortifications damaged",
			})
			return nil
		}

		// Shore batteries answer.
		g.loseShip(s)
		g.Log(Event{
			Type: EventNaval, Side: s.Enemy(), City: target, CityName: c.Name,
			Msg: "shore battery sunk an attacking ship",
		})
		if f.Size() < 1 {
			g.Side(s.Enemy()).Victory += 5
			if g.Grudge == s {
				g.Grudge = SideNone
			}
			g.refreshCommerce()
			g.Popup(s.Enemy(), s.String()+" fleet eliminated off "+c.Name)
			return nil
		}
	}
}

// Invade sacrifices a ship to land a marine column in an undefended
// neutral port and seize it.
func (g *GameState) Invade(s Side) error {
	o := Order{Type: OrderMove, Side: s}
	f := g.Fleet(s)
	if f == nil {
		return reject(o, ErrWrongSide)
	}
	if f.Size() < 2 {
		return reject(o, ErrTooSmall)
	}
	if s == Confederate && g.Settings.Realism > 0 {
		return reject(o, ErrWrongSide)
	}
	target := f.Location
	c := g.City(target)
	if c == nil || target == FleetRaiding {
		return reject(o, ErrFleetAtSea)
	}
	if c.Owner != SideNone || c.Occupied > 0 {
		return reject(o, ErrNoTarget)
	}
	empty := g.commander(s)
	if empty == 0 {
		return reject(o, ErrNoFreeSlot)
	}

	g.loseShip(s)
	g.newArmy(s, empty, target)
	g.Side(s).Cash += 100
	g.Army(empty).Size = 35
	g.Capture(empty, target, false)
	g.Log(Event{
		Type: EventNaval, Side: s, ArmyID: empty, ArmyName: g.Army(empty).Name,
		City: target, CityName: c.Name,
		Msg: s.String() + " marines storm ashore at " + c.Name,
	})
	return nil
}

// fleetBattle fights the two fleets to a decision. Each side's lead ship
// takes 10 hits (20 for an ironclad); an ironclad trading fire with a
// wooden ship gets a tenth better odds per salvo.
func (g *GameState) fleetBattle(attacker Side) {
	defender := attacker.Enemy()
	fa := g.Fleet(attacker)
	fd := g.Fleet(defender)

	hits := func(f *Fleet) int {
		if f.Size() > 0 && f.Ships[len(f.Ships)-1] == ShipIronclad {
			return 20
		}
		return 10
	}
	ha := hits(fa)
	hd := hits(fd)

	g.Log(Event{
		Type: EventNaval, Side: attacker,
		AttackerSize: fa.Size(), DefenderSize: fd.Size(),
		Msg: "naval combat",
	})

	for {
		pct := 0.0
		ach := byte(ShipWooden)
		dch := byte(ShipWooden)
		if fa.Size() > 0 {
			ach = fa.Ships[len(fa.Ships)-1]
		}
		if fd.Size() > 0 {
			dch = fd.Ships[len(fd.Ships)-1]
		}
		if ach != dch {
			if ach == ShipIronclad {
				pct = 0.1
			} else {
				pct = -0.1
			}
		}

		if g.Rand().Float64() <= 0.5+pct {
			hd--
			if hd > 0 {
				continue
			}
			g.loseShip(defender)
			g.Log(Event{Type: EventNaval, Side: attacker,
				Msg: defender.String() + " ship sunk"})
			if fd.Size() < 1 {
				g.Side(attacker).Victory += 10
				g.Grudge = defender
				g.Log(Event{Type: EventNaval, Side: attacker, Winner: attacker,
					Msg: defender.String() + " fleet defeated"})
				return
			}
			hd = hits(fd)
		} else {
			ha--
			if ha > 0 {
				continue
			}
			g.loseShip(attacker)
			g.Log(Event{Type: EventNaval, Side: defender,
				Msg: attacker.String() + " ship sunk"})
			if fa.Size() < 1 {
				g.Side(defender).Victory += 10
				g.Grudge = attacker
				g.Log(Event{Type: EventNaval, Side: defender, Winner: defender,
					Msg: attacker.String() + " fleet eliminated"})
				return
			}
			ha = hits(fa)
		}
	}
}

// navalPhase is the resolver's safety net: fleets left sharing a location
// after both order phases fight it out, and the raiding flag is
// recomputed from where the fleets actually are.
func (g *GameState) navalPhase() {
	fu := g.Fleet(Union)
	fc := g.Fleet(Confederate)
	if fu.Size() > 0 && fc.Size() > 0 && fu.Location > 0 && fu.Location == fc.Location {
		attacker := Union
		if fc.Move != 0 && fu.Move == 0 {
			attacker = Confederate
		}
		g.fleetBattle(attacker)
	}
	g.refreshCommerce()
}
