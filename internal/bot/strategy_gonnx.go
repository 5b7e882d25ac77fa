package bot

import (
	"log"
	"sync"

	gonnx "github.com/advancedclimatesystems/gonnx"
	"gorgonia.org/tensor"

	"github.com/sachio222/civil-war-strategy-online-sub000/internal/bot/neural"
	"github.com/sachio222/civil-war-strategy-online-sub000/pkg/cws"
)

// newGonnxOrFallback attempts to create a GonnxStrategy. If loading
// fails, it falls back to the aggressive heuristic.
func newGonnxOrFallback() Strategy {
	s, err := newGonnxStrategy()
	if err != nil {
		log.Printf("bot: neural strategy requested but model load failed: %v; falling back to heuristic", err)
		return &HeuristicStrategy{Bold: 3, Temper: 1.5}
	}
	return s
}

// GonnxStrategy substitutes an ONNX move-scoring network for the
// heuristic move evaluator. Everything else (recruiting, the navy, the
// railroad, drilling) still runs the heuristic passes; any inference
// failure falls back to the evaluator for that call.
type GonnxStrategy struct {
	model *gonnx.Model
	mu    sync.Mutex
}

// newGonnxStrategy loads moves.onnx from GonnxModelPath.
func newGonnxStrategy() (*GonnxStrategy, error) {
	path := GonnxModelPath
	if path == "" {
		path = "models"
	}
	model, err := gonnx.NewModelFromFile(path + "/moves.onnx")
	if err != nil {
		return nil, err
	}
	return &GonnxStrategy{model: model}, nil
}

func (s *GonnxStrategy) Name() string { return "neural" }

// PlayTurn runs the heuristic passes with the network behind the move
// evaluator. The policy runs once per turn; the logits serve every army.
func (s *GonnxStrategy) PlayTurn(g *cws.GameState, side cws.Side) []cws.Order {
	var logits []float32
	ran := false

	pick := func(g *cws.GameState, sd cws.Side, armyID int) int {
		if !ran {
			ran = true
			logits = s.runPolicy(g, sd)
		}
		if logits != nil {
			if dest := neural.BestMove(logits, g, armyID); dest >= 0 {
				return dest
			}
		}
		return evaluateMove(g, sd, 3, g.Side(sd).Aggression*1.5, armyID)
	}

	h := &HeuristicStrategy{Bold: 3, Temper: 1.5, pick: pick}
	return h.PlayTurn(g, side)
}

// runPolicy encodes the board and runs the model, returning flat
// (from, to) logits or nil on any failure.
func (s *GonnxStrategy) runPolicy(g *cws.GameState, side cws.Side) []float32 {
	boardTensor := tensor.New(
		tensor.WithShape(1, neural.NumCities, neural.NumFeatures),
		tensor.Of(tensor.Float32),
		tensor.WithBacking(neural.EncodeBoard(g)),
	)
	adjTensor := tensor.New(
		tensor.WithShape(neural.NumCities, neural.NumCities),
		tensor.Of(tensor.Float32),
		tensor.WithBacking(neural.BuildAdjacencyMatrix(g)),
	)
	sideTensor := tensor.New(
		tensor.WithShape(1),
		tensor.Of(tensor.Int64),
		tensor.WithBacking([]int64{int64(neural.SideIndex(side))}),
	)

	inputs := gonnx.Tensors{
		"board": boardTensor,
		"adj":   adjTensor,
		"side":  sideTensor,
	}

	s.mu.Lock()
	outputs, err := s.model.Run(inputs)
	s.mu.Unlock()
	if err != nil {
		log.Printf("bot/gonnx: policy run error: %v", err)
		return nil
	}

	out, ok := outputs["move_logits"]
	if !ok {
		for _, v := range outputs {
			out = v
			break
		}
	}
	if out == nil {
		log.Printf("bot/gonnx: no output tensor from model")
		return nil
	}

	switch d := out.Data().(type) {
	case []float32:
		return d
	case []float64:
		f32 := make([]float32, len(d))
		for i, v := range d {
			f32[i] = float32(v)
		}
		return f32
	default:
		log.Printf("bot/gonnx: unexpected output type %T", d)
		return nil
	}
}
