// Package neural encodes game state for the ONNX move-scoring model and
// decodes its output back into engine moves.
package neural

// Board tensor dimensions. One row per city, NumFeatures planes per row.
const (
	NumCities   = 40
	NumFeatures = 12
)

// Feature plane indices within a city row.
const (
	featOwnerUnion = iota
	featOwnerConfederate
	featValue
	featFort
	featPort
	featUnionCapital
	featConfederateCapital
	featUnionGarrison
	featConfederateGarrison
	featGarrisonSupply
	featGarrisonLeader
	featGarrisonExperience
)

// Normalization divisors for the scalar planes.
const (
	valueScale  = 20
	fortScale   = 2
	sizeScale   = 1000
	supplyScale = 10
	leaderScale = 10
	experScale  = 10
)
