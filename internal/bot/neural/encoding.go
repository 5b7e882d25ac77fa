package neural

import (
	"github.com/sachio222/civil-war-strategy-online-sub000/pkg/cws"
)

// EncodeBoard flattens the map into a [NumCities x NumFeatures] float32
// tensor, row-major, city id 1 in row 0.
func EncodeBoard(g *cws.GameState) []float32 {
	out := make([]float32, NumCities*NumFeatures)
	for id := 1; id <= cws.NumCities; id++ {
		c := g.City(id)
		row := out[(id-1)*NumFeatures : id*NumFeatures]

		switch c.Owner {
		case cws.Union:
			row[featOwnerUnion] = 1
		case cws.Confederate:
			row[featOwnerConfederate] = 1
		}
		row[featValue] = float32(c.Value) / valueScale
		row[featFort] = float32(c.Fort) / fortScale
		if c.Port {
			row[featPort] = 1
		}
		if g.Side(cws.Union).Capital == id {
			row[featUnionCapital] = 1
		}
		if g.Side(cws.Confederate).Capital == id {
			row[featConfederateCapital] = 1
		}

		if c.Occupied > 0 {
			a := g.Army(c.Occupied)
			if a.Side == cws.Union {
				row[featUnionGarrison] = float32(a.Size) / sizeScale
			} else {
				row[featConfederateGarrison] = float32(a.Size) / sizeScale
			}
			row[featGarrisonSupply] = float32(a.Supply) / supplyScale
			row[featGarrisonLeader] = float32(a.Leader) / leaderScale
			row[featGarrisonExperience] = float32(a.Experience) / experScale
		}
	}
	return out
}

// BuildAdjacencyMatrix returns the symmetric [NumCities x NumCities]
// adjacency matrix with self-loops, row-major float32.
func BuildAdjacencyMatrix(g *cws.GameState) []float32 {
	adj := make([]float32, NumCities*NumCities)
	for id := 1; id <= cws.NumCities; id++ {
		adj[(id-1)*NumCities+(id-1)] = 1
		for _, n := range g.City(id).Neighbors() {
			adj[(id-1)*NumCities+(n-1)] = 1
			adj[(n-1)*NumCities+(id-1)] = 1
		}
	}
	return adj
}

// SideIndex maps a side to the model's side input: Union 0, Confederate 1.
func SideIndex(s cws.Side) int {
	if s == cws.Confederate {
		return 1
	}
	return 0
}
