package cws

// roman renders an army slot number for generated commander names.
func roman(n int) string {
	vals := []int{40, 10, 9, 5, 4, 1}
	syms := []string{"XL", "X", "IX", "V", "IV", "I"}
	out := ""
	for i, v := range vals {
		for n >= v {
			out += syms[i]
			n -= v
		}
	}
	return out
}

// commander finds a free army slot with a commander for it: a named leader
// still in the pool, or a fresh brigadier with a generated rating. Returns
// 0 when the side's whole arena is fielded.
func (g *GameState) commander(s Side) int {
	first, last := ArmyIDs(s)
	for i := first; i <= last; i++ {
		if g.Armies[i].Location == 0 && g.Armies[i].Size == 0 && g.LeaderNames[i] != "" {
			return i
		}
	}
	for i := first; i <= last; i++ {
		if g.Armies[i].Location == 0 && g.Armies[i].Size == 0 {
			g.LeaderNames[i] = "General " + roman(i)
			g.LeaderRatings[i] = 1 + g.Rand().Intn(8)
			return i
		}
	}
	return 0
}

// recruitBonus is the handicap adjustment to a newly raised or reinforced
// army: easy settings favor the Union, hard settings the Confederacy.
func (g *GameState) recruitBonus(s Side) int {
	d := g.Settings.Difficulty
	if s == Union && d < 3 {
		return 15 - 5*d
	}
	if s == Confederate && d > 3 {
		return 5*d - 15
	}
	return 0
}

// newArmy fields the commander waiting in slot empty at the target city.
// Base size is 70; under realism it scales with the city, and an isolated
// city can only raise a third of that.
func (g *GameState) newArmy(s Side, empty, target int) {
	a := g.Army(empty)
	a.Side = s
	a.Supply = 3 + g.Rand().Intn(5)
	if s == Union {
		a.Supply += 2
	}
	a.Experience = 1
	if s == Confederate {
		a.Experience = 2
	}
	a.Leader = g.LeaderRatings[empty]
	a.Name = g.LeaderNames[empty]
	g.LeaderNames[empty] = ""

	x := 70
	if g.Settings.Realism > 0 {
		x = 3*g.City(target).Value + 33
	}
	if g.CutOff(s, target) {
		x /= 3
	}
	a.Size = x
	a.Location = target
	a.Move = MoveResting
	g.City(target).Occupied = empty
	g.Side(s).Cash -= 100
}

// RecruitCandidates runs the monthly recruitment lottery: a short list of
// friendly cities willing to raise troops this month. Control-rich sides
// see proportionally fewer of their cities volunteer. Under realism,
// cities originally settled by the enemy never enlist.
func (g *GameState) RecruitCandidates(s Side) []int {
	max := 4
	if g.Rand().Float64() > 0.8 {
		max--
	}
	if g.Settings.Difficulty < 3 {
		max++
	}

	st := g.Side(s)
	var out []int
	for i := 1; i <= NumCities; i++ {
		pct := 0.3
		if st.Control > 0 {
			pct = 0.6 * float64(max) / float64(st.Control)
		}
		if len(out) == 0 && i > 20 {
			pct = 0.3
		}
		if len(out) < 2 && i > 30 {
			pct = 0.3
		}
		c := g.City(i)
		if c.Occupied > 0 && c.Owner == s {
			pct = 0.4
		}
		if g.Rand().Float64() < pct && c.Owner == s {
			if g.Settings.Realism > 0 && c.OriginalOwner == s.Enemy() {
				continue
			}
			out = append(out, i)
			if len(out) > max-1 {
				break
			}
		}
	}
	return out
}

// RecruitAt spends 100 at a friendly city: reinforce the garrison if one
// is there, otherwise raise a new army under a pooled commander.
func (g *GameState) RecruitAt(s Side, cityID int) error {
	o := Order{Type: OrderRecruit, Side: s, City: cityID}
	st := g.Side(s)
	if st == nil {
		return reject(o, ErrWrongSide)
	}
	if st.Cash < 100 {
		return reject(o, ErrNotEnoughCash)
	}
	c := g.City(cityID)
	if c == nil {
		return reject(o, ErrNoSuchCity)
	}
	if c.Owner != s {
		return reject(o, ErrCityNotOwned)
	}
	if g.Settings.Realism > 0 && c.OriginalOwner == s.Enemy() {
		return reject(o, ErrHostilePopulace)
	}

	g.Occupy(cityID)
	if c.Occupied > 0 {
		a := g.Army(c.Occupied)
		add := 45
		if g.Settings.Realism > 0 {
			add = 2*c.Value + 20
		}
		if g.CutOff(s, cityID) {
			add /= 3
		}
		a.Size += add + g.recruitBonus(s)
		st.Cash -= 100
		return nil
	}

	empty := g.commander(s)
	if empty == 0 {
		return reject(o, ErrNoFreeSlot)
	}
	g.newArmy(s, empty, cityID)
	g.Army(empty).Size += g.recruitBonus(s)
	return nil
}

// Combine merges two armies stacked in the same friendly city. The higher
// rated commander takes charge in his own slot; the other returns to the
// pool. Experience blends by size, supplies pool up to the wagon limit.
func (g *GameState) Combine(s Side, armyID, otherID int) error {
	o := Order{Type: OrderCombine, Side: s, Army: armyID, Other: otherID}
	a := g.Army(armyID)
	b := g.Army(otherID)
	if a == nil || b == nil || !a.Alive() || !b.Alive() || armyID == otherID {
		return reject(o, ErrNoSuchArmy)
	}
	if a.Side != s || b.Side != s {
		return reject(o, ErrWrongSide)
	}
	if a.Location != b.Location {
		return reject(o, ErrNotStacked)
	}
	if a.Move != 0 || b.Move != 0 {
		return reject(o, ErrArmyBusy)
	}
	if a.Size+b.Size > 1250 {
		return reject(o, ErrOverCapacity)
	}

	keep, gone := armyID, otherID
	if b.Leader > a.Leader {
		keep, gone = otherID, armyID
	}
	k := g.Army(keep)
	x := g.Army(gone)

	total := k.Size + x.Size
	pct := float64(x.Size) / float64(total)
	k.Experience = int((1-pct)*float64(k.Experience) + pct*float64(x.Experience))
	k.Size = total
	k.Supply += x.Supply
	if k.Supply > 10 {
		k.Supply = 10
	}
	k.Move = MoveResting

	target := k.Location
	g.LeaderNames[gone] = x.Name
	*x = Army{}
	g.City(target).Occupied = keep
	return nil
}

// Resupply buys supplies from the treasury, up to the field limit of 5.
// Under realism an army cut off from friendly territory cannot be reached.
func (g *GameState) Resupply(s Side, armyID int) error {
	o := Order{Type: OrderSupply, Side: s, Army: armyID}
	a := g.Army(armyID)
	if a == nil || !a.Alive() {
		return reject(o, ErrNoSuchArmy)
	}
	if a.Side != s {
		return reject(o, ErrWrongSide)
	}
	if g.Settings.Realism > 0 && g.CutOff(s, a.Location) {
		return reject(o, ErrCutOff)
	}
	if a.Supply >= 5 {
		return reject(o, ErrSupplyFull)
	}

	st := g.Side(s)
	x := 0
	if a.Size > 0 {
		x = int(float64(st.Cash) / float64(a.Size) * 10)
	}
	if x+a.Supply > 5 {
		x = 5 - a.Supply
	}
	if x < 1 {
		return reject(o, ErrNotEnoughCash)
	}
	a.Supply += x
	st.Cash -= int(0.1 * float64(x) * float64(a.Size))
	if st.Cash < 0 {
		st.Cash = 0
	}
	return nil
}

// MoveCapital relocates the seat of government to another held city for
// 500, handing the enemy a propaganda windfall.
func (g *GameState) MoveCapital(s Side, cityID int) error {
	o := Order{Type: OrderCapital, Side: s, City: cityID}
	st := g.Side(s)
	if st == nil {
		return reject(o, ErrWrongSide)
	}
	if st.Capital == 0 {
		return reject(o, ErrNoCapital)
	}
	if st.Cash < 500 {
		return reject(o, ErrNotEnoughCash)
	}
	c := g.City(cityID)
	if c == nil {
		return reject(o, ErrNoSuchCity)
	}
	if cityID == st.Capital {
		return reject(o, ErrCapitalHere)
	}
	if c.Owner != s {
		return reject(o, ErrCityNotOwned)
	}

	old := g.City(st.Capital).Name
	st.Cash -= 500
	g.Side(s.Enemy()).Victory += 50
	st.Capital = cityID
	g.Popup(s, s.String()+" capital moved from "+old+" to "+c.Name)
	return nil
}

// Detach splits off a 30% column under a fresh commander. A Confederate
// tactic only; a too-small army cannot spare the men.
func (g *GameState) Detach(s Side, armyID int) error {
	o := Order{Type: OrderDetach, Side: s, Army: armyID}
	if s != Confederate {
		return reject(o, ErrWrongSide)
	}
	a := g.Army(armyID)
	if a == nil || !a.Alive() {
		return reject(o, ErrNoSuchArmy)
	}
	if a.Side != s {
		return reject(o, ErrWrongSide)
	}
	if a.Move != 0 {
		return reject(o, ErrArmyBusy)
	}
	if a.Size < 65 {
		return reject(o, ErrTooSmall)
	}
	empty := g.commander(s)
	if empty == 0 {
		return reject(o, ErrNoFreeSlot)
	}

	d := g.Army(empty)
	d.Side = s
	d.Supply = int(0.3 * float64(a.Supply))
	a.Supply -= d.Supply
	if a.Supply < 0 {
		a.Supply = 0
	}
	d.Size = int(0.3 * float64(a.Size))
	a.Size -= d.Size
	d.Location = a.Location
	d.Experience = a.Experience
	d.Move = 0
	d.Leader = g.LeaderRatings[empty]
	d.Name = g.LeaderNames[empty]
	g.LeaderNames[empty] = ""
	return nil
}

// Drill raises a green army's experience by one. Training stops at level
// 5, and no commander can drill troops past his own rating.
func (g *GameState) Drill(s Side, armyID int) error {
	o := Order{Type: OrderDrill, Side: s, Army: armyID}
	a := g.Army(armyID)
	if a == nil || !a.Alive() {
		return reject(o, ErrNoSuchArmy)
	}
	if a.Side != s {
		return reject(o, ErrWrongSide)
	}
	if a.Move != 0 {
		return reject(o, ErrArmyBusy)
	}
	if a.Experience > 5 || a.Experience >= a.Leader {
		return reject(o, ErrDrillLimit)
	}
	a.Experience++
	a.Move = MoveResting
	return nil
}

// Relieve replaces an army's commander with the best leader left in the
// pool. The change of command costs the army a point of experience, and
// the new man starts a point below his own rating while he settles in.
func (g *GameState) Relieve(s Side, armyID int) error {
	o := Order{Type: OrderRelieve, Side: s, Army: armyID}
	a := g.Army(armyID)
	if a == nil || !a.Alive() {
		return reject(o, ErrNoSuchArmy)
	}
	if a.Side != s {
		return reject(o, ErrWrongSide)
	}
	if a.Move != 0 {
		return reject(o, ErrArmyBusy)
	}

	first, last := ArmyIDs(s)
	pick := 0
	for i := first; i <= last; i++ {
		if i == armyID || g.LeaderNames[i] == "" {
			continue
		}
		if pick == 0 || g.LeaderRatings[i] > g.LeaderRatings[pick] {
			pick = i
		}
	}
	if pick == 0 {
		return reject(o, ErrNoFreeSlot)
	}

	g.LeaderNames[armyID] = a.Name
	a.Name = g.LeaderNames[pick]
	g.LeaderNames[pick] = ""
	a.Leader = g.LeaderRatings[pick]
	if a.Leader > 0 {
		a.Leader--
	}
	if a.Experience > 0 {
		a.Experience--
	}
	a.Move = MoveResting
	return nil
}
