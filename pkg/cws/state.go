package cws

import "math/rand"

// Side identifies one of the two factions. Zero means neutral/none.
type Side int

const (
	SideNone    Side = 0
	Union       Side = 1
	Confederate Side = 2
)

// Enemy returns the opposing side.
func (s Side) Enemy() Side {
	switch s {
	case Union:
		return Confederate
	case Confederate:
		return Union
	}
	return SideNone
}

func (s Side) String() string {
	switch s {
	case Union:
		return "Union"
	case Confederate:
		return "Confederate"
	}
	return "Neutral"
}

// GameStatus represents the overall game status.
type GameStatus string

const (
	StatusWaiting  GameStatus = "waiting"
	StatusActive   GameStatus = "active"
	StatusFinished GameStatus = "finished"
)

// Pending-move sentinels. A positive Move is a destination city id.
const (
	// MoveResting marks an army that already acted this month (drill,
	// fortify garrison, fresh recruit) and may not be ordered again.
	MoveResting = -1
	// MoveResolved marks an army whose move was consumed by the resolver.
	MoveResolved = -2
)

// FleetRaiding is the sentinel fleet location for commerce raiding at sea.
const FleetRaiding = 99

// NumArmies and NumCities fix the arena sizes. Ids run 1..40; index 0 is
// the "none" sentinel throughout.
const (
	NumArmies = 40
	NumCities = 40
)

// Army is one slot in the fixed army arena. A zero Size means the slot is
// free (destroyed or never raised); the record is zeroed rather than removed.
type Army struct {
	Name       string `json:"name"`
	Side       Side   `json:"side"`
	Size       int    `json:"size"` // troop count, unit = 100 men
	Leader     int    `json:"lead"`
	Experience int    `json:"exper"` // 0..10
	Supply     int    `json:"supply"`
	Location   int    `json:"loc"`  // city id, 0 = gone or in rail transit
	Move       int    `json:"move"` // pending destination or sentinel
}

// Alive reports whether the slot holds a fielded army.
func (a *Army) Alive() bool { return a.Size > 0 && a.Location > 0 }

// City is one node of the 40-city map. Adjacent holds up to 6 neighbor ids,
// zero-terminated. Occupied is the single occupying army (0 = none);
// additional armies may be stacked at the city without occupying it.
type City struct {
	Name          string `json:"name"`
	X             int    `json:"x"`
	Y             int    `json:"y"`
	Owner         Side   `json:"owner"`
	OriginalOwner Side   `json:"original_owner"`
	Value         int    `json:"value"`
	Fort          int    `json:"fort"` // 0..2
	Adjacent      [6]int `json:"adjacent"`
	Port          bool   `json:"port"`
	Occupied      int    `json:"occupied"`
}

// Neighbors returns the populated adjacency entries.
func (c *City) Neighbors() []int {
	var out []int
	for _, n := range c.Adjacent {
		if n == 0 {
			break
		}
		out = append(out, n)
	}
	return out
}

// AdjacentTo reports whether city id n is directly adjacent.
func (c *City) AdjacentTo(n int) bool {
	for _, a := range c.Adjacent {
		if a == 0 {
			return false
		}
		if a == n {
			return true
		}
	}
	return false
}

// Ship class characters in a fleet composition string.
const (
	ShipWooden   = 'W'
	ShipIronclad = 'I'
)

// Fleet is a side's single navy. Ships is the composition string, one
// character per ship. Location 0 means destroyed/unbuilt, FleetRaiding
// means commerce raiding at sea.
type Fleet struct {
	Ships    string `json:"ships"`
	Location int    `json:"loc"`
	Move     int    `json:"move"`
}

// Size returns the number of ships.
func (f *Fleet) Size() int { return len(f.Ships) }

// Ironclads returns the number of ironclads in the fleet.
func (f *Fleet) Ironclads() int {
	n := 0
	for _, ch := range f.Ships {
		if ch == ShipIronclad {
			n++
		}
	}
	return n
}

// SideState is per-faction bookkeeping.
type SideState struct {
	Cash       int     `json:"cash"`
	Control    int     `json:"control"` // cities held
	Income     int     `json:"income"`
	Victory    int     `json:"victory"` // victory points
	Capital    int     `json:"capital"` // city id, 0 = capital lost
	Rail       int     `json:"rail"`    // army id currently on a train
	RailFrom   int     `json:"rail_from"`
	RailMarker int     `json:"rail_marker"` // city id the train icon sits at
	TrainCap   int     `json:"train_cap"`
	BattlesWon int     `json:"battles_won"`
	Casualties int     `json:"casualties"`
	Aggression float64 `json:"aggression"` // enemy/friendly strength ratio
}

// Victory-parameter slots (VicFlags index).
const (
	VicExpiryMonth = 1
	VicExpiryYear  = 2
	VicControl     = 3
	VicIncomeShare = 4
	VicCapital     = 5
	VicForceRatio  = 6
)

// Victory outcome codes reported by the evaluator.
type VictoryCondition int

const (
	WinNone         VictoryCondition = 0
	WinTimeExpiry   VictoryCondition = 2
	WinControl      VictoryCondition = 3
	WinIncomeShare  VictoryCondition = 4
	WinCapital      VictoryCondition = 5
	WinForceRatio   VictoryCondition = 6
	WinAnnihilation VictoryCondition = 7
)

func (v VictoryCondition) String() string {
	switch v {
	case WinTimeExpiry:
		return "time expiry"
	case WinControl:
		return "city control"
	case WinIncomeShare:
		return "income share"
	case WinCapital:
		return "capital captured"
	case WinForceRatio:
		return "force ratio"
	case WinAnnihilation:
		return "annihilation"
	}
	return "none"
}

// Settings are the fixed match parameters. Difficulty runs 1 (easiest for
// the Union player) to 5; 3 is balanced. Realism > 0 enables the stricter
// economy and combat rules. RandBalance weights random events toward the
// weaker side. JanCampaign allows January offensives.
type Settings struct {
	Difficulty  int  `json:"difficulty"`
	Realism     int  `json:"realism"`
	RandBalance int  `json:"rand_balance"`
	JanCampaign bool `json:"jan_campaign"`
	Bold        int  `json:"bold"` // AI risk appetite 1..3

	// Combat tuning: troop-cap rate and casualty percentages.
	TCR    int `json:"tcr"`
	AtkFac int `json:"atk_fac"`
	DefFac int `json:"def_fac"`

	// UnionAdvantage is the Union's extra monthly income against the AI.
	UnionAdvantage int `json:"union_advantage"`
}

// GameState is the whole world model. It is mutated in place by the
// resolver, which owns it exclusively for the duration of one month.
// Arrays are 1-indexed; slot 0 is unused.
type GameState struct {
	Month int `json:"month"`
	Year  int `json:"year"`

	Armies [NumArmies + 1]Army  `json:"armies"`
	Cities [NumCities + 1]City  `json:"cities"`
	Fleets [3]Fleet             `json:"fleets"`
	Sides  [3]SideState         `json:"sides"`

	// LeaderPool holds the unassigned commander roster per army slot.
	LeaderNames   [NumArmies + 1]string `json:"leader_names"`
	LeaderRatings [NumArmies + 1]int    `json:"leader_ratings"`

	VicFlags [7]int   `json:"vicflags"`
	Settings Settings `json:"settings"`

	// Commerce raiding state: which side is raiding, and the income drained
	// from the victim last month.
	Commerce Side `json:"commerce"`
	Raider   int  `json:"raider"`
	// Grudge is set when a side's fleet was destroyed in combat; the AI
	// hunts the enemy fleet next turn.
	Grudge Side `json:"grudge"`

	Emancipated bool `json:"emancipated"`

	Status       GameStatus       `json:"status"`
	Winner       Side             `json:"winner"`
	WinCondition VictoryCondition `json:"win_condition"`

	// Events is the structured log of the month in resolution order.
	// Excluded from snapshot equality.
	Events []Event `json:"events,omitempty"`

	rng *rand.Rand
}

// SetRand injects the random source used for all resolution. Resolution is
// replayable given the same seed and order sequence.
func (g *GameState) SetRand(r *rand.Rand) { g.rng = r }

// Rand returns the injected random source, seeding a default if none was set.
func (g *GameState) Rand() *rand.Rand {
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(1))
	}
	return g.rng
}

// Army returns the army record for id, or nil when out of range.
func (g *GameState) Army(id int) *Army {
	if id < 1 || id > NumArmies {
		return nil
	}
	return &g.Armies[id]
}

// City returns the city record for id, or nil when out of range.
func (g *GameState) City(id int) *City {
	if id < 1 || id > NumCities {
		return nil
	}
	return &g.Cities[id]
}

// Fleet returns the fleet belonging to side.
func (g *GameState) Fleet(s Side) *Fleet {
	if s != Union && s != Confederate {
		return nil
	}
	return &g.Fleets[s]
}

// Side returns the bookkeeping record for side.
func (g *GameState) Side(s Side) *SideState {
	if s != Union && s != Confederate {
		return nil
	}
	return &g.Sides[s]
}

// ArmyIDs returns the arena id range for a side.
func ArmyIDs(s Side) (first, last int) {
	if s == Confederate {
		return 21, 40
	}
	return 1, 20
}

// ArmiesOf returns the ids of all fielded armies of a side.
func (g *GameState) ArmiesOf(s Side) []int {
	first, last := ArmyIDs(s)
	var ids []int
	for i := first; i <= last; i++ {
		if g.Armies[i].Alive() {
			ids = append(ids, i)
		}
	}
	return ids
}

// TotalStrength returns the summed size of a side's fielded armies.
func (g *GameState) TotalStrength(s Side) int {
	total := 0
	for _, id := range g.ArmiesOf(s) {
		total += g.Armies[id].Size
	}
	return total
}

// Occupy recomputes the occupying army of city c: the first army in arena
// order located there, or 0. Arena order, not size order, decides ties.
func (g *GameState) Occupy(c int) {
	city := g.City(c)
	if city == nil {
		return
	}
	city.Occupied = 0
	for i := 1; i <= NumArmies; i++ {
		if g.Armies[i].Location == c && g.Armies[i].Size > 0 {
			city.Occupied = i
			return
		}
	}
}

// OccupyAll recomputes occupation for every city.
func (g *GameState) OccupyAll() {
	for c := 1; c <= NumCities; c++ {
		g.Occupy(c)
	}
}

// TheaterStrength returns the weighted friendly army strength around city a
// for the given side: first-ring occupants at full size, second-ring at 10%.
func (g *GameState) TheaterStrength(s Side, a int) int {
	city := g.City(a)
	if city == nil {
		return 0
	}
	y := 0
	for _, x := range city.Adjacent {
		if x == 0 {
			break
		}
		n := g.City(x)
		if n.Owner == s && n.Occupied > 0 {
			y += g.Armies[n.Occupied].Size
		}
		for _, m := range n.Adjacent {
			if m == 0 || m == a {
				continue
			}
			nn := g.City(m)
			if nn != nil && nn.Owner == s && nn.Occupied > 0 {
				y += g.Armies[nn.Occupied].Size / 10
			}
		}
	}
	return y
}

// CutOff reports whether city c has no friendly-controlled adjacent city
// for the given side, which blocks resupply under realism.
func (g *GameState) CutOff(s Side, c int) bool {
	city := g.City(c)
	if city == nil {
		return true
	}
	for _, n := range city.Neighbors() {
		if g.Cities[n].Owner == s {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the GameState. The random source is shared,
// not copied; clones used for speculation should inject their own.
func (g *GameState) Clone() *GameState {
	c := *g
	if g.Events != nil {
		c.Events = make([]Event, len(g.Events))
		copy(c.Events, g.Events)
	}
	return &c
}
