package cws

// CheckVictory evaluates the end-of-game conditions for each side in
// priority order and finishes the game when one is met. Near-threshold
// positions surface as warning popups instead.
func (g *GameState) CheckVictory() {
	if g.Status == StatusFinished {
		return
	}

	strength := map[Side]int{
		Union:       g.TotalStrength(Union),
		Confederate: g.TotalStrength(Confederate),
	}

	if g.VicFlags[VicExpiryYear] > 0 && g.Year >= g.VicFlags[VicExpiryYear] &&
		g.Month < g.VicFlags[VicExpiryMonth] {
		g.Popup(SideNone, "Time almost expired")
	}

	for _, i := range []Side{Union, Confederate} {
		cond := g.victoryCondition(i, strength[i], strength[i.Enemy()])
		if cond == WinNone {
			g.victoryWarnings(i, strength[i], strength[i.Enemy()])
			continue
		}

		winner := i
		switch cond {
		case WinAnnihilation:
			// The original awards the sweep bonus in two steps.
			g.Side(i).Victory += 300
			g.Side(i).Victory += 100
		case WinTimeExpiry:
			// Survival to the deadline is a technical win for the defender.
			winner = Confederate
			for _, k := range []Side{Union, Confederate} {
				st := g.Side(k)
				st.Victory = int(0.7 * float64(st.Victory))
			}
		}

		g.Status = StatusFinished
		g.Winner = winner
		g.WinCondition = cond
		g.Popup(winner, winner.String()+" victory: "+cond.String())
		return
	}
}

func (g *GameState) victoryCondition(i Side, own, enemy int) VictoryCondition {
	st := g.Side(i)
	incomes := g.Sides[Union].Income + g.Sides[Confederate].Income

	switch {
	case enemy == 0:
		return WinAnnihilation
	case g.VicFlags[VicExpiryYear] > 0 && g.Year >= g.VicFlags[VicExpiryYear] &&
		g.Month >= g.VicFlags[VicExpiryMonth]:
		return WinTimeExpiry
	case g.VicFlags[VicControl] > 0 && st.Control >= g.VicFlags[VicControl]:
		return WinControl
	case g.VicFlags[VicIncomeShare] > 0 && incomes > 0 &&
		float64(st.Income)/float64(incomes) >= 0.01*float64(g.VicFlags[VicIncomeShare]):
		return WinIncomeShare
	case g.VicFlags[VicCapital] > 0 && g.Side(i.Enemy()).Capital == 0 &&
		st.Capital > 0:
		return WinCapital
	case g.VicFlags[VicForceRatio] > 0 && enemy > 0 &&
		float64(own)/float64(enemy) > float64(g.VicFlags[VicForceRatio]):
		return WinForceRatio
	}
	return WinNone
}

// victoryWarnings emits the 90%-of-threshold notices for one side.
func (g *GameState) victoryWarnings(i Side, own, enemy int) {
	st := g.Side(i)
	if g.VicFlags[VicControl] > 0 &&
		float64(st.Control) >= 0.9*float64(g.VicFlags[VicControl]) {
		g.Popup(i, i.String()+" side close to the city-control threshold")
	}
	incomes := g.Sides[Union].Income + g.Sides[Confederate].Income
	if g.VicFlags[VicIncomeShare] > 0 && incomes > 0 &&
		float64(st.Income)/float64(incomes) >= 0.009*float64(g.VicFlags[VicIncomeShare]) {
		g.Popup(i, i.String()+" side close to the income-share threshold")
	}
	if g.VicFlags[VicForceRatio] > 0 && own > 0 && enemy > 0 &&
		float64(own)/float64(enemy) > 0.9*float64(g.VicFlags[VicForceRatio]) {
		g.Popup(i, i.String()+" side close to the strength-ratio threshold")
	}
}
