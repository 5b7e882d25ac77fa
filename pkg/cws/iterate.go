package cws

// iterate advances the calendar two months and runs supply maintenance and
// attrition for every fielded army.
func (g *GameState) iterate() {
	g.Month += 2
	if g.Month > 12 {
		g.Month = 1
		g.Year++
	}

	winter := g.Month < 7 || g.Month > 10

	for i := 1; i <= NumArmies; i++ {
		a := g.Army(i)
		if a.Location < 1 {
			continue
		}
		st := g.Side(a.Side)
		loc := g.City(a.Location)

		// Quartermasters draw on the treasury when it can bear the cost.
		if float64(st.Cash) >= 0.2*float64(a.Size) {
			supplied := true
			if g.Settings.Realism > 0 {
				supplied = !g.CutOff(a.Side, a.Location)
			}
			if supplied {
				a.Supply++
				st.Cash -= int(0.2 * float64(a.Size))
			}
		}

		if winter && !loc.Port {
			a.Supply--
		}
		if loc.Port && g.Fleet(a.Side.Enemy()).Location == a.Location {
			a.Supply--
			g.Popup(a.Side, a.Name+" is blockaded")
		}

		if a.Supply < 1 {
			a.Supply = 0
			g.Log(Event{Type: EventNoSupply, Side: a.Side, ArmyID: i, ArmyName: a.Name})
			if g.Rand().Float64() > 0.8 && a.Size > 50 {
				a.Size = int(0.9 * float64(a.Size))
			}
		}
	}

	// Each side's appetite for risk tracks how badly it is outnumbered.
	u := float64(g.TotalStrength(Union))
	c := float64(g.TotalStrength(Confederate))
	g.Sides[Union].Aggression = ratioOr1(c, u)
	g.Sides[Confederate].Aggression = ratioOr1(u, c)
}

func ratioOr1(enemy, own float64) float64 {
	if own <= 0 {
		return 1
	}
	return enemy / own
}

// tallyIncome recomputes control and income from the map, collects the
// month's revenue, settles commerce-raid losses and clears pending moves.
func (g *GameState) tallyIncome() {
	for _, s := range []Side{Union, Confederate} {
		st := g.Side(s)
		st.Control = 0
		st.Income = 0
		if st.Cash > 19999 {
			st.Cash = 19999
		}
		if st.Cash < 0 {
			st.Cash = 0
		}
	}

	g.Sides[Union].Income += g.Settings.UnionAdvantage

	for i := 1; i <= NumCities; i++ {
		if owner := g.Cities[i].Owner; owner != SideNone {
			g.Side(owner).Control++
			g.Side(owner).Income += g.Cities[i].Value
		}
		g.Occupy(i)
	}
	for i := 1; i <= NumArmies; i++ {
		g.Armies[i].Move = 0
	}

	for _, s := range []Side{Union, Confederate} {
		st := g.Side(s)
		g.Fleet(s).Move = 0
		if st.Capital > 0 {
			st.Income += 100
		}
		st.Cash += st.Income
		if g.Commerce != SideNone && s != g.Commerce {
			st.Cash -= g.Raider
		}
	}
}
