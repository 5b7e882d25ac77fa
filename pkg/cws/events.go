package cws

// eventWeight scales how much a random event helps its beneficiary. High
// difficulty settings weight toward the Union, low toward the Confederacy.
func (g *GameState) eventWeight(s Side) int {
	if s == Union {
		return g.Settings.Difficulty
	}
	return 6 - g.Settings.Difficulty
}

// randomEvents rolls the month's special event, if any. At most one event
// fires per month.
func (g *GameState) randomEvents() {
	if g.Settings.Realism > 0 && g.Year == 1862 && g.Month < 3 {
		g.Popup(SideNone, "SPECIAL DEVELOPMENT : IRONCLAD ships now available")
		return
	}
	if g.Settings.RandBalance == 0 {
		return
	}

	// RandBalance weights which side benefits this month.
	who := Confederate
	if g.Rand().Float64() > 0.1*float64(g.Settings.RandBalance) {
		who = Union
	}

	plus := g.eventWeight(who)
	pct := 0.005 * float64(g.Year-1860) * float64(plus*plus)
	if pct > 0.9 {
		pct = 0.9
	}
	if g.Rand().Float64() > pct {
		return
	}

	if who == Confederate {
		g.confederateEvent(plus)
	} else {
		g.unionEvent(plus)
	}
}

// riot flips a random garrison-free captured city of the victim side back
// to neutral. Realism only.
func (g *GameState) riot(victim Side) bool {
	if g.Settings.Realism == 0 {
		return false
	}
	if g.Side(victim).Control == 1 {
		return false
	}
	for k := 0; k < 99; k++ {
		x := 1 + g.Rand().Intn(NumCities)
		c := g.City(x)
		if c.OriginalOwner != victim && c.Owner == victim && c.Occupied == 0 {
			c.Owner = SideNone
			g.Popup(victim, "Riots have broken out in "+c.Name+
				", the city is now neutral")
			return true
		}
	}
	return false
}

func (g *GameState) confederateEvent(plus int) {
	st := g.Side(Confederate)

	if g.Year == 1864 && g.Month == 1 {
		st.Victory += 50
	}
	if g.Year == 1865 && g.Month == 1 {
		st.Victory += 100
	}

	if g.Rand().Float64() > 0.9 && g.riot(Union) {
		return
	}

	f := g.Fleet(Confederate)
	if g.Rand().Float64() <= 0.2 && f.Size() <= 9 {
		port := 0
		if f.Size() > 0 && f.Location != FleetRaiding {
			port = f.Location
		} else {
			for i := 1; i <= NumCities; i++ {
				c := g.City(i)
				if c.Owner == Confederate && c.Port &&
					g.Fleet(Union).Location != i {
					port = i
					break
				}
			}
		}
		if port > 0 {
			g.Popup(Confederate, "England has given ships to the South")
			want := f.Size() + 2*plus
			if want > 10 {
				want = 10
			}
			for f.Size() < want {
				f.Ships += string(ShipWooden)
			}
			f.Location = port
			return
		}
	}

	if g.Rand().Float64() <= 0.1 && st.Control >= 30 {
		name := "French"
		if g.Rand().Float64() > 0.5 {
			name = "British"
		}
		for _, id := range g.ArmiesOf(Confederate) {
			a := g.Army(id)
			g.Popup(Confederate, name+" mercenaries join "+a.Name+"'s army")
			a.Size += 100 * plus
			a.Experience = 10
			a.Supply = 10
			return
		}
	}

	if g.Rand().Float64() <= 0.3 && st.Control >= 12 {
		g.Popup(Confederate, "The South has obtained a loan from Europe")
		st.Cash += 100 * plus
		return
	}
	if g.Rand().Float64() <= 0.5 && st.Control >= 12 {
		g.Popup(Confederate, "Cash from cotton sales fill the Rebel Treasury")
		st.Cash += 100 * plus
		return
	}

	pct := 0.9
	msg := "Union troops diverted to fight Western Indian uprisings"
	if g.Rand().Float64() > 0.5 {
		msg = "Union 90-day enlistees return home"
	}
	if g.Year == 1864 && g.Month > 5 {
		msg = "20% of Union forces take furloughs to vote in 1864 elections"
		pct = 0.8
	}
	g.Popup(Confederate, msg)
	for _, id := range g.ArmiesOf(Union) {
		a := g.Army(id)
		a.Size = int(pct * float64(a.Size))
	}
}

func (g *GameState) unionEvent(plus int) {
	st := g.Side(Union)
	f := g.Fleet(Union)

	if g.Rand().Float64() <= 0.1 && f.Location != 0 && f.Size() <= 9 {
		if g.Rand().Float64() > 0.95 && g.riot(Confederate) {
			return
		}
		g.Popup(Union, "Union shipworks have produced extra ships")
		want := f.Size() + plus
		if want > 10 {
			want = 10
		}
		for f.Size() < want {
			f.Ships += string(ShipWooden)
		}
		return
	}

	if g.Rand().Float64() >= 0.7 {
		g.Popup(Union, "Volunteer troops swell the Union ranks")
		count := 0
		for _, id := range g.ArmiesOf(Union) {
			count++
			if count > 5 {
				break
			}
			if g.Rand().Float64() > 0.5 {
				a := g.Army(id)
				a.Size = int(float64(a.Size)*1.1) + plus
			}
		}
		return
	}

	if !g.Emancipated && g.Year > 1862 {
		g.Emancipated = true
		g.Popup(Union, "Abraham Lincoln announces the Emancipation Proclamation")
		st.Victory += 100
		g.Side(Confederate).Victory -= 100
		return
	}

	if g.Year == 1864 && g.Month == 11 {
		g.Popup(Union, "Lincoln has been reelected")
		g.Side(Confederate).Victory = g.Side(Confederate).Victory / 2
		return
	}

	if g.Rand().Float64() > 0.5 {
		g.Popup(Union, "Wealthy Unionists give generously to the Federal Cause")
		st.Cash += 100 * plus
		return
	}

	if g.Rand().Float64() > 0.5 && g.Year > 1861 {
		g.Popup(Union, "Rebel deserters leave the battlefield to go home")
		for _, id := range g.ArmiesOf(Confederate) {
			a := g.Army(id)
			a.Size = int(0.92 * float64(a.Size))
		}
		return
	}

	if g.Rand().Float64() > 0.5 && g.Year > 1861 {
		g.Popup(Union, "Union soldiers now have repeating rifles")
		for _, id := range g.ArmiesOf(Union) {
			if a := g.Army(id); a.Experience < 9 {
				a.Experience += 2
			}
		}
	}

	g.Popup(Union, "Secretary of War Stanton predicts the end of the Rebellion")
	st.Victory += 10
}
