package cws

// TrainCapacity returns the troop limit for one rail move. Outside realism
// it is the side's fixed rolling stock; under realism the limit flexes with
// how much of the side's home rail network is still held, clamped to
// between a quarter and double the base capacity.
func (g *GameState) TrainCapacity(s Side) int {
	st := g.Side(s)
	if g.Settings.Realism == 0 {
		return st.TrainCap
	}
	base := 11
	if s == Confederate {
		base = 23
	}
	limit := st.TrainCap + 5*(st.Control-base)
	x2 := 2 * st.TrainCap
	if limit > x2 {
		limit = x2
	}
	if limit < x2/4 {
		limit = x2 / 4
	}
	return limit
}

// railRoute measures friendly rail connectivity at a city: one point per
// friendly neighbor plus one per friendly city two hops out. A city with a
// score of 1 or less is a dead end the trains cannot serve.
func (g *GameState) railRoute(s Side, target int) int {
	x := 0
	for _, y := range g.City(target).Neighbors() {
		if g.Cities[y].Owner != s {
			continue
		}
		x++
		for _, z := range g.Cities[y].Neighbors() {
			if z != target && g.Cities[z].Owner == s {
				x++
			}
		}
	}
	return x
}

// Railroad loads an army onto the side's train. The army leaves the map
// this month and arrives at dest at the start of the next; one train per
// side may run at a time.
func (g *GameState) Railroad(s Side, armyID, dest int) error {
	o := Order{Type: OrderRailroad, Side: s, Army: armyID, Dest: dest}
	st := g.Side(s)
	if st == nil {
		return reject(o, ErrWrongSide)
	}
	if st.Rail != 0 {
		return reject(o, ErrTrainInUse)
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
	if a.Size > g.TrainCapacity(s) {
		return reject(o, ErrOverCapacity)
	}
	d := g.City(dest)
	if d == nil || dest == a.Location {
		return reject(o, ErrNoSuchCity)
	}
	if g.railRoute(s, a.Location) <= 1 || g.railRoute(s, dest) <= 1 {
		return reject(o, ErrNoRailRoute)
	}

	from := a.Location
	st.RailMarker = from
	st.RailFrom = from
	st.Rail = armyID
	a.Location = 0
	a.Move = dest
	g.Occupy(from)

	g.Log(Event{
		Type: EventRailDepart, Side: s, ArmyID: armyID, ArmyName: a.Name,
		City: from, CityName: g.City(from).Name,
		Dest: dest, DestName: d.Name,
	})
	return nil
}

// railroadArrive unloads the side's train at the start of the month. An
// arrival into an enemy or neutral city captures it without a fight.
func (g *GameState) railroadArrive(s Side) {
	st := g.Side(s)
	index := st.Rail
	a := g.Army(index)
	if a == nil || a.Move < 1 {
		st.Rail = 0
		return
	}

	st.Rail = 0
	st.RailMarker = a.Move
	a.Location = a.Move
	a.Move = MoveResting
	g.Occupy(st.RailFrom)

	g.Log(Event{
		Type: EventRailArrive, Side: s, ArmyID: index, ArmyName: a.Name,
		City: a.Location, CityName: g.City(a.Location).Name,
	})

	if g.City(a.Location).Owner != s {
		g.Capture(index, a.Location, false)
	}
	g.Occupy(a.Location)
}
