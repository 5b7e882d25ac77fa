package cws

import "fmt"

// OrderType enumerates the verbs a side may issue during its order phase.
type OrderType int

const (
	OrderRecruit OrderType = iota
	OrderMove
	OrderRailroad
	OrderFortify
	OrderCombine
	OrderSupply
	OrderCapital
	OrderDetach
	OrderDrill
	OrderRelieve
	OrderEndTurn
)

func (o OrderType) String() string {
	switch o {
	case OrderRecruit:
		return "recruit"
	case OrderMove:
		return "move"
	case OrderRailroad:
		return "railroad"
	case OrderFortify:
		return "fortify"
	case OrderCombine:
		return "combine"
	case OrderSupply:
		return "supply"
	case OrderCapital:
		return "capital"
	case OrderDetach:
		return "detach"
	case OrderDrill:
		return "drill"
	case OrderRelieve:
		return "relieve"
	case OrderEndTurn:
		return "end_turn"
	default:
		return "unknown"
	}
}

// ParseOrderType maps the wire verb back to its type.
func ParseOrderType(s string) (OrderType, error) {
	for t := OrderRecruit; t <= OrderEndTurn; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown order type %q", s)
}

func (o OrderType) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *OrderType) UnmarshalText(b []byte) error {
	t, err := ParseOrderType(string(b))
	if err != nil {
		return err
	}
	*o = t
	return nil
}

// Order is one instruction in a side's monthly batch. Field use depends on
// the verb: Army/Dest for move and railroad, City for recruit, fortify and
// capital relocation, Other for the absorbed army in a combine.
type Order struct {
	Type  OrderType `json:"type"`
	Side  Side      `json:"side"`
	Army  int       `json:"army,omitempty"`
	City  int       `json:"city,omitempty"`
	Dest  int       `json:"dest,omitempty"`
	Other int       `json:"other,omitempty"`
}

// Describe returns a short human-readable rendering for logs and errors.
func (o Order) Describe() string {
	switch o.Type {
	case OrderMove, OrderRailroad:
		return fmt.Sprintf("%s %s army %d -> city %d", o.Side, o.Type, o.Army, o.Dest)
	case OrderRecruit, OrderFortify, OrderCapital:
		return fmt.Sprintf("%s %s at city %d", o.Side, o.Type, o.City)
	case OrderCombine:
		return fmt.Sprintf("%s combine army %d into %d", o.Side, o.Other, o.Army)
	case OrderSupply, OrderDetach, OrderDrill, OrderRelieve:
		return fmt.Sprintf("%s %s army %d", o.Side, o.Type, o.Army)
	default:
		return fmt.Sprintf("%s %s", o.Side, o.Type)
	}
}

// Apply executes a single order against the state. All verbs except move
// and end_turn take effect immediately; move records a pending destination
// for the resolver, and end_turn is a no-op here (the caller resolves the
// month once both sides are done).
func (g *GameState) Apply(o Order) error {
	if g.Status == StatusFinished {
		return reject(o, ErrGameOver)
	}
	switch o.Type {
	case OrderRecruit:
		return g.RecruitAt(o.Side, o.City)
	case OrderMove:
		return g.OrderMove(o.Side, o.Army, o.Dest)
	case OrderRailroad:
		return g.Railroad(o.Side, o.Army, o.Dest)
	case OrderFortify:
		return g.Fortify(o.Side, o.City)
	case OrderCombine:
		return g.Combine(o.Side, o.Army, o.Other)
	case OrderSupply:
		return g.Resupply(o.Side, o.Army)
	case OrderCapital:
		return g.MoveCapital(o.Side, o.City)
	case OrderDetach:
		return g.Detach(o.Side, o.Army)
	case OrderDrill:
		return g.Drill(o.Side, o.Army)
	case OrderRelieve:
		return g.Relieve(o.Side, o.Army)
	case OrderEndTurn:
		return nil
	default:
		return reject(o, fmt.Errorf("unknown order type %d", int(o.Type)))
	}
}

// ApplyBatch runs a side's order batch in sequence, stopping at end_turn.
// The first rejection aborts the rest of the batch.
func (g *GameState) ApplyBatch(orders []Order) error {
	for _, o := range orders {
		if o.Type == OrderEndTurn {
			return nil
		}
		if err := g.Apply(o); err != nil {
			return err
		}
	}
	return nil
}

// OrderMove records a pending destination for the resolver. January halts
// offensives unless the winter-campaign option is on: moves into enemy or
// neutral cities are refused.
func (g *GameState) OrderMove(s Side, armyID, dest int) error {
	o := Order{Type: OrderMove, Side: s, Army: armyID, Dest: dest}
	a := g.Army(armyID)
	if a == nil || !a.Alive() {
		return reject(o, ErrNoSuchArmy)
	}
	if a.Side != s {
		return reject(o, ErrWrongSide)
	}
	if a.Move == MoveResting {
		return reject(o, ErrArmyBusy)
	}
	d := g.City(dest)
	if d == nil {
		return reject(o, ErrNoSuchCity)
	}
	if !g.City(a.Location).AdjacentTo(dest) {
		return reject(o, ErrNotAdjacent)
	}
	if g.Month == 1 && !g.Settings.JanCampaign && d.Owner != s {
		return reject(o, ErrJanuaryHalt)
	}
	a.Move = dest
	return nil
}
