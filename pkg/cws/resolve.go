package cws

// ResolveMonth runs one full turn update: railroad arrivals, scheduled
// movement and combat, commerce raiding, the naval phase, the economy step
// and random events, then the victory check. Both sides' orders must
// already be applied.
func (g *GameState) ResolveMonth() {
	g.ClearEvents()
	g.randomEvents()

	for _, s := range []Side{Union, Confederate} {
		if g.Side(s).Rail > 0 {
			g.railroadArrive(s)
		}
	}

	for _, active := range g.ScheduleMoves() {
		g.resolveMove(active)
	}

	g.resolveCommerce()
	g.navalPhase()
	g.iterate()
	g.decayVictory()
	g.tallyIncome()
	g.CheckVictory()
}

// resolveMove executes one army's pending move, including any chain of
// battles at the destination.
func (g *GameState) resolveMove(active int) {
	a := g.Army(active)
	if a.Move < 1 || a.Location < 1 {
		return
	}
	target := a.Move
	s := a.Side

	a.Supply--
	if a.Supply < 0 {
		a.Supply = 0
		g.Log(Event{Type: EventNoSupply, Side: s, ArmyID: active, ArmyName: a.Name})
	}
	g.Log(Event{
		Type: EventMove, Side: s, ArmyID: active, ArmyName: a.Name,
		City: a.Location, CityName: g.City(a.Location).Name,
		Dest: target, DestName: g.City(target).Name,
	})

	fought := false
	for {
		occ := g.City(target).Occupied
		if occ == 0 {
			break
		}
		d := g.Army(occ)
		if d.Side == s {
			// Friendly column already there; stack with it.
			g.Log(Event{
				Type: EventMeeting, Side: s, ArmyID: active, ArmyName: a.Name,
				DefenderID: occ, DefenderName: d.Name,
				City: target, CityName: g.City(target).Name,
			})
			break
		}

		g.Log(Event{
			Type: EventAttack, Side: s, ArmyID: active, ArmyName: a.Name,
			DefenderID: occ, DefenderName: d.Name,
			City: target, CityName: g.City(target).Name,
		})
		res := g.Battle(active, occ)
		fought = true
		if w := g.Army(res.Winner); w.Experience < 10 {
			w.Experience++
		}

		if lose := g.Army(res.Loser); lose.Size < 2 {
			g.crushArmy(res.Loser, res.Winner)
			if a.Location == 0 {
				return
			}
			g.Occupy(target)
			continue
		}

		if res.Winner != active {
			g.attackerWithdraws(active, target, occ)
			return
		}
		if !g.defenderRetreats(occ, target) {
			g.crushArmy(occ, active)
		}
		g.Occupy(target)
	}

	g.enterCity(active, target, fought)

	// Foraging at the new camp recovers a little supply.
	for a.Supply < 10 {
		a.Supply++
		if g.Rand().Float64() <= 0.8 {
			break
		}
	}
}

// attackerWithdraws sends a beaten attacker back where it came from. The
// defender's own pending move may be abandoned in the confusion of pursuit.
func (g *GameState) attackerWithdraws(active, target, defend int) {
	a := g.Army(active)
	from := a.Location
	g.Log(Event{
		Type: EventWithdraw, Side: a.Side, ArmyID: active, ArmyName: a.Name,
		City: target, CityName: g.City(target).Name,
		Dest: from, DestName: g.City(from).Name,
	})
	a.Move = MoveResolved
	g.Occupy(from)

	d := g.Army(defend)
	if 11*g.Rand().Float64() > float64(d.Leader) && d.Move > 0 {
		d.Move = MoveResolved
	}
}

// defenderRetreats moves a beaten defender to the best adjacent friendly
// city: highest value, preferring an empty one. Returns false when there is
// nowhere to go.
func (g *GameState) defenderRetreats(defend, target int) bool {
	d := g.Army(defend)
	best := 0
	flee := 0
	for _, xx := range g.City(target).Neighbors() {
		c := g.City(xx)
		if c.Owner != d.Side || c.Value <= best {
			continue
		}
		if best == 0 || c.Occupied == 0 {
			flee = xx
			best = c.Value
		}
	}
	if flee == 0 {
		return false
	}
	g.Log(Event{
		Type: EventRetreat, Side: d.Side, ArmyID: defend, ArmyName: d.Name,
		City: target, CityName: g.City(target).Name,
		Dest: flee, DestName: g.City(flee).Name,
	})
	d.Location = flee
	d.Move = MoveResolved
	g.Occupy(flee)
	return true
}

// crushArmy removes a destroyed or surrendering army from the board and
// credits the victor.
func (g *GameState) crushArmy(index, victor int) {
	a := g.Army(index)
	v := g.Army(victor)
	g.Log(Event{
		Type: EventSurrender, Side: a.Side, ArmyID: index, ArmyName: a.Name,
		DefenderID: victor, DefenderName: v.Name,
		City: a.Location, CityName: g.City(a.Location).Name,
	})
	g.Side(v.Side).Victory += 25

	// The victor picks over the abandoned wagon train.
	v.Supply += a.Supply / 2
	if v.Supply > 10 {
		v.Supply = 10
	}

	loc := a.Location
	*a = Army{}
	g.LeaderNames[index] = ""
	g.Occupy(loc)
}

// enterCity completes a move into an empty or friendly city, capturing it
// when it belongs to the enemy or nobody. Razing: under realism an army
// taking an unfought fortified city deep in the south burns the works
// rather than garrisoning them.
func (g *GameState) enterCity(active, target int, fought bool) {
	a := g.Army(active)
	a.Location = target
	a.Move = MoveResolved
	g.Occupy(target)

	city := g.City(target)
	if city.Owner == a.Side {
		return
	}
	if city.Fort > 0 && !fought && g.Settings.Realism > 0 && city.Y > 150 {
		city.Fort = 0
		g.Popup(a.Side, a.Name+" has destroyed the forts at "+city.Name)
	}
	g.Capture(active, target, fought)
}

// resolveCommerce runs the monthly commerce-raid check for a fleet at sea.
func (g *GameState) resolveCommerce() {
	for g.Commerce != SideNone {
		f := g.Fleet(g.Commerce)
		if f.Size() < 1 {
			g.Commerce = SideNone
			return
		}
		enemy := g.Commerce.Enemy()
		if g.Rand().Float64() < 0.8+0.02*float64(f.Size()) {
			raid := int(0.05 * float64(f.Size()) * (1 + g.Rand().Float64()) *
				float64(g.Side(enemy).Income))
			if raid < 1 {
				raid = 1
			}
			if income := g.Side(enemy).Income; income > 0 &&
				float64(raid)/float64(income) > 0.3 {
				raid = int(0.3 * float64(income))
			}
			g.Raider = raid
			g.Log(Event{Type: EventRaid, Side: g.Commerce, Msg: "commerce raid"})
			return
		}
		// Raider hunted down; a ship goes under.
		g.Raider = 0
		g.loseShip(g.Commerce)
		g.Log(Event{Type: EventNaval, Side: g.Commerce, Msg: "raider lost a ship"})
		if f.Location == 0 {
			g.Commerce = SideNone
			return
		}
	}
}

// decayVictory applies the end-of-month VP decay and dominance bonuses.
func (g *GameState) decayVictory() {
	for _, s := range []Side{Union, Confederate} {
		st := g.Side(s)
		st.Victory = int(0.8*float64(st.Victory) + 0.3*float64(st.Income+st.Control))
		if st.Control > 29 {
			st.Victory += 50
			if st.Control > 34 {
				st.Victory += 100
			}
		}
		if st.Control < 11 {
			st.Aggression += 0.7
		}
		if st.Victory < 1 {
			st.Victory = 0
		}
	}
}
