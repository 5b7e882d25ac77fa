package cws

import "math/rand"

// cityDef is one row of the static map table. Coordinates are map pixels,
// y growing southward, so the Union pushes toward larger y and the
// Confederacy toward smaller y.
type cityDef struct {
	id    int
	name  string
	x, y  int
	owner Side
	value int
	fort  int
	port  bool
}

var cityDefs = []cityDef{
	{1, "Richmond", 480, 190, Confederate, 20, 1, false},
	{2, "Norfolk", 515, 205, Confederate, 10, 0, true},
	{3, "Raleigh", 470, 235, Confederate, 8, 0, false},
	{4, "Lynchburg", 445, 205, Confederate, 6, 0, false},
	{5, "Charlotte", 445, 245, Confederate, 8, 0, false},
	{6, "Wilmington", 495, 265, Confederate, 10, 0, true},
	{7, "Charleston", 475, 300, Confederate, 12, 1, true},
	{8, "Columbia", 450, 280, Confederate, 8, 0, false},
	{9, "Savannah", 450, 325, Confederate, 10, 0, true},
	{10, "Atlanta", 400, 300, Confederate, 16, 0, false},
	{11, "Macon", 410, 330, Confederate, 6, 0, false},
	{12, "Montgomery", 360, 335, Confederate, 10, 0, false},
	{13, "Chattanooga", 370, 265, Confederate, 10, 0, false},
	{14, "Mobile", 330, 365, Confederate, 10, 0, true},
	{15, "New Orleans", 290, 385, Confederate, 18, 1, true},
	{16, "Jackson", 310, 330, Confederate, 6, 0, false},
	{17, "Vicksburg", 285, 320, Confederate, 10, 1, false},
	{18, "Shreveport", 235, 330, Confederate, 6, 0, false},
	{19, "Fredericksburg", 478, 165, Confederate, 6, 0, false},
	{20, "Knoxville", 400, 240, Confederate, 8, 0, false},
	{21, "Memphis", 300, 280, Confederate, 12, 0, false},
	{22, "Little Rock", 245, 290, Confederate, 6, 0, false},
	{23, "Nashville", 345, 240, SideNone, 10, 0, false},
	{24, "Bowling Green", 335, 210, SideNone, 4, 0, false},
	{25, "Lexington", 360, 180, SideNone, 6, 0, false},
	{26, "Springfield", 230, 250, SideNone, 4, 0, false},
	{27, "Washington", 480, 140, Union, 15, 1, true},
	{28, "Baltimore", 490, 120, Union, 12, 0, true},
	{29, "Philadelphia", 505, 100, Union, 16, 0, true},
	{30, "New York", 530, 75, Union, 20, 0, true},
	{31, "Boston", 560, 45, Union, 12, 0, true},
	{32, "Harrisburg", 480, 95, Union, 8, 0, false},
	{33, "Pittsburgh", 430, 95, Union, 12, 0, false},
	{34, "Wheeling", 420, 130, Union, 6, 0, false},
	{35, "Columbus", 375, 115, Union, 8, 0, false},
	{36, "Cincinnati", 355, 140, Union, 12, 0, false},
	{37, "Louisville", 330, 165, Union, 10, 0, false},
	{38, "Indianapolis", 320, 110, Union, 8, 0, false},
	{39, "Chicago", 285, 70, Union, 16, 0, false},
	{40, "St. Louis", 250, 160, Union, 14, 0, false},
}

// cityEdges is the symmetric road network; buildCities fills both
// directions. Each city ends up with at most 6 neighbors.
var cityEdges = [][2]int{
	{1, 2}, {1, 3}, {1, 4}, {1, 19},
	{2, 3}, {2, 6},
	{3, 4}, {3, 5}, {3, 6},
	{4, 5}, {4, 19}, {4, 20}, {4, 34},
	{5, 8},
	{6, 7},
	{7, 8}, {7, 9},
	{8, 9}, {8, 10},
	{9, 11},
	{10, 11}, {10, 12}, {10, 13},
	{11, 12},
	{12, 14}, {12, 16},
	{13, 20}, {13, 23},
	{14, 15}, {14, 16},
	{15, 16}, {15, 18},
	{16, 17},
	{17, 18}, {17, 21}, {17, 22},
	{18, 22},
	{19, 27},
	{20, 23}, {20, 25},
	{21, 22}, {21, 23}, {21, 40},
	{23, 24},
	{24, 25}, {24, 37},
	{25, 36}, {25, 37},
	{26, 22}, {26, 40},
	{27, 28},
	{28, 29}, {28, 32},
	{29, 30}, {29, 32},
	{30, 31},
	{32, 33},
	{33, 34},
	{34, 35},
	{35, 36},
	{36, 37}, {36, 38},
	{38, 39}, {38, 40},
	{39, 40},
}

// Capitals at game start.
const (
	UnionCapital       = 27 // Washington
	ConfederateCapital = 1  // Richmond
)

// leaderDef seeds the commander roster: slots 1..20 Union, 21..40
// Confederate. Armies raised later draw the next unused name.
type leaderDef struct {
	name   string
	rating int
}

var unionLeaders = []leaderDef{
	{"McDowell", 4}, {"Patterson", 2}, {"McClellan", 5}, {"Lyon", 6},
	{"Anderson", 4}, {"Butler", 3}, {"Grant", 9}, {"Sherman", 8},
	{"Thomas", 8}, {"Meade", 7}, {"Hooker", 5}, {"Burnside", 3},
	{"Rosecrans", 5}, {"Buell", 4}, {"Halleck", 3}, {"Pope", 3},
	{"Sheridan", 8}, {"Hancock", 7}, {"Sedgwick", 6}, {"Sickles", 4},
}

var confederateLeaders = []leaderDef{
	{"Beauregard", 6}, {"J. Johnston", 7}, {"Jackson", 9}, {"Polk", 4},
	{"Price", 5}, {"Magruder", 4}, {"Lee", 10}, {"Longstreet", 8},
	{"Bragg", 4}, {"Hood", 6}, {"Hardee", 6}, {"Early", 6},
	{"Ewell", 5}, {"A.S. Johnston", 7}, {"Forrest", 9}, {"Stuart", 7},
	{"Pemberton", 4}, {"Kirby Smith", 5}, {"D.H. Hill", 5}, {"Cleburne", 8},
}

// startingArmy places an initial field army commanded by the leader in the
// matching roster slot.
type startingArmy struct {
	id       int
	city     int
	size     int
	exper    int
	supply   int
}

var startingArmies = []startingArmy{
	// Union
	{1, 27, 90, 1, 5},
	{2, 32, 60, 1, 5},
	{3, 34, 70, 1, 5},
	{4, 40, 55, 1, 4},
	{5, 37, 45, 1, 4},
	{6, 28, 50, 1, 5},
	// Confederate
	{21, 19, 80, 2, 4},
	{22, 1, 70, 2, 4},
	{23, 4, 45, 2, 4},
	{24, 21, 50, 2, 3},
	{25, 22, 40, 2, 3},
	{26, 2, 35, 2, 3},
}

var monthNames = [13]string{"", "January", "February", "March", "April",
	"May", "June", "July", "August", "September", "October", "November",
	"December"}

// MonthName returns the calendar name for a 1..12 month number.
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return monthNames[m]
}

// DefaultSettings is a balanced non-realism match.
func DefaultSettings() Settings {
	return Settings{
		Difficulty:  3,
		Realism:     0,
		RandBalance: 5,
		JanCampaign: false,
		Bold:        2,
		TCR:         10,
		AtkFac:      8,
		DefFac:      8,
	}
}

// NewGame builds the July 1861 opening position with the given settings
// and random source.
func NewGame(set Settings, rng *rand.Rand) *GameState {
	g := &GameState{
		Month:    7,
		Year:     1861,
		Settings: set,
		Status:   StatusActive,
	}
	g.SetRand(rng)

	// Union economic advantage scales with difficulty; realism trims it.
	adv := 120 * set.Difficulty
	if set.Realism > 0 {
		adv = adv * 7 / 10
	}
	g.Settings.UnionAdvantage = adv

	g.VicFlags = [7]int{0, 1, 1866, 25, 75, 1, 4}

	buildCities(g)

	for i, l := range unionLeaders {
		g.LeaderNames[i+1] = l.name
		g.LeaderRatings[i+1] = l.rating
	}
	for i, l := range confederateLeaders {
		g.LeaderNames[i+21] = l.name
		g.LeaderRatings[i+21] = l.rating
	}

	for _, sa := range startingArmies {
		a := g.Army(sa.id)
		a.Name = g.LeaderNames[sa.id]
		a.Leader = g.LeaderRatings[sa.id]
		a.Side = sideForArmyID(sa.id)
		a.Size = sa.size
		a.Experience = sa.exper
		a.Supply = sa.supply
		a.Location = sa.city
		g.LeaderNames[sa.id] = ""
	}
	g.OccupyAll()

	g.Sides[Union].Cash = 400
	g.Sides[Confederate].Cash = 350
	g.Sides[Union].Capital = UnionCapital
	g.Sides[Confederate].Capital = ConfederateCapital
	g.Sides[Union].TrainCap = 120
	g.Sides[Confederate].TrainCap = 100

	// Opening tallies mirror the economy pass: control, starting victory
	// points and a city-value cash bonus per owned city.
	for c := 1; c <= NumCities; c++ {
		city := g.City(c)
		if city.Owner == SideNone {
			continue
		}
		side := g.Side(city.Owner)
		side.Control++
		side.Victory += city.Value
		side.Cash += city.Value
		side.Income += city.Value
	}
	g.RepairMap()

	g.ClearEvents()
	return g
}

// RepairMap adds any missing return edges so adjacency is symmetric, and
// reports what it fixed.
func (g *GameState) RepairMap() []string {
	var fixed []string
	for c := 1; c <= NumCities; c++ {
		for _, n := range g.Cities[c].Neighbors() {
			if !g.Cities[n].AdjacentTo(c) {
				addEdge(g, n, c)
				fixed = append(fixed,
					g.Cities[n].Name+" -> "+g.Cities[c].Name)
			}
		}
	}
	return fixed
}

// sideForArmyID gives the arena convention: slots 1..20 Union, 21..40
// Confederate. Stored on the record at creation so nothing downstream
// depends on the id range.
func sideForArmyID(id int) Side {
	if id > 20 {
		return Confederate
	}
	return Union
}

func buildCities(g *GameState) {
	for _, d := range cityDefs {
		c := g.City(d.id)
		c.Name = d.name
		c.X = d.x
		c.Y = d.y
		c.Owner = d.owner
		c.OriginalOwner = d.owner
		c.Value = d.value
		c.Fort = d.fort
		c.Port = d.port
	}
	for _, e := range cityEdges {
		addEdge(g, e[0], e[1])
		addEdge(g, e[1], e[0])
	}
}

func addEdge(g *GameState, from, to int) {
	c := g.City(from)
	for i, n := range c.Adjacent {
		if n == to {
			return
		}
		if n == 0 {
			c.Adjacent[i] = to
			return
		}
	}
}
