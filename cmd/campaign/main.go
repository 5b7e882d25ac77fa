// Command campaign runs bot-vs-bot games of the strategy engine, for
// balance tuning and strategy comparison. Results print as a summary
// table or JSON, and can optionally be archived to Postgres.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sachio222/civil-war-strategy-online-sub000/internal/bot"
	"github.com/sachio222/civil-war-strategy-online-sub000/internal/repository/postgres"
	"github.com/sachio222/civil-war-strategy-online-sub000/pkg/cws"
)

// gameResult captures one finished game for aggregation.
type gameResult struct {
	Winner           int    `json:"winner"`
	WinCondition     string `json:"win_condition"`
	Months           int    `json:"months"`
	UnionCasualties  int    `json:"union_casualties"`
	ConfedCasualties int    `json:"confed_casualties"`
	GameCode         string `json:"game_code,omitempty"`
}

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	var (
		unionDiff  int
		confedDiff int
		numGames   int
		workers    int
		seed       int64
		maxMonths  int
		dbURL      string
		jsonOut    bool
	)

	flag.IntVar(&unionDiff, "union", 3, "Union bot difficulty 1..5")
	flag.IntVar(&confedDiff, "confed", 3, "Confederate bot difficulty 1..5")
	flag.IntVar(&numGames, "n", 1, "Number of games to run")
	flag.IntVar(&workers, "workers", 1, "Concurrency (parallel games)")
	flag.Int64Var(&seed, "seed", 0, "Base seed (0 = random)")
	flag.IntVar(&maxMonths, "max-months", 60, "Months before calling the game a draw")
	flag.StringVar(&dbURL, "db", "", "Archive finished games to this database (or DATABASE_URL env)")
	flag.BoolVar(&jsonOut, "json", false, "Output results as JSON")
	flag.StringVar(&bot.GonnxModelPath, "model", os.Getenv("GONNX_MODEL_PATH"), "Directory containing moves.onnx")
	flag.Parse()

	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("Shutting down...")
		cancel()
	}()

	var gameRepo *postgres.GameRepo
	var turnRepo *postgres.TurnRepo
	if dbURL != "" {
		db, err := postgres.Connect(dbURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Database connection failed")
		}
		defer db.Close()
		gameRepo = postgres.NewGameRepo(db)
		turnRepo = postgres.NewTurnRepo(db)
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	results := make([]*gameResult, numGames)
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	errCount := 0

	for i := 0; i < numGames; i++ {
		wg.Add(1)
		sem <- struct{}{}

		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			result, err := runGame(ctx, runConfig{
				unionDiff:  unionDiff,
				confedDiff: confedDiff,
				seed:       seed + int64(idx),
				maxMonths:  maxMonths,
				gameRepo:   gameRepo,
				turnRepo:   turnRepo,
			})
			if err != nil {
				log.Error().Err(err).Int("game", idx+1).Msg("Game failed")
				mu.Lock()
				errCount++
				mu.Unlock()
				return
			}

			mu.Lock()
			results[idx] = result
			mu.Unlock()

			log.Info().Int("game", idx+1).Int("winner", result.Winner).
				Str("condition", result.WinCondition).Int("months", result.Months).
				Msg("Game completed")
		}(i)
	}

	wg.Wait()

	if jsonOut {
		printJSON(results, errCount)
	} else {
		printSummary(results, unionDiff, confedDiff, maxMonths, errCount)
	}
}

type runConfig struct {
	unionDiff  int
	confedDiff int
	seed       int64
	maxMonths  int
	gameRepo   *postgres.GameRepo
	turnRepo   *postgres.TurnRepo
}

// runGame plays one full game to completion or the month cap.
func runGame(ctx context.Context, cfg runConfig) (*gameResult, error) {
	rng := rand.New(rand.NewSource(cfg.seed))
	g := cws.NewGame(cws.DefaultSettings(), rng)

	union := bot.StrategyForDifficulty(cfg.unionDiff)
	confed := bot.StrategyForDifficulty(cfg.confedDiff)

	months := 0
	for g.Status != cws.StatusFinished && months < cfg.maxMonths {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		union.PlayTurn(g, cws.Union)
		confed.PlayTurn(g, cws.Confederate)
		g.ResolveMonth()
		months++
	}

	result := &gameResult{
		Winner:           int(g.Winner),
		WinCondition:     g.WinCondition.String(),
		Months:           months,
		UnionCasualties:  g.Side(cws.Union).Casualties,
		ConfedCasualties: g.Side(cws.Confederate).Casualties,
	}

	if cfg.gameRepo != nil {
		code, err := archiveGame(ctx, cfg, g, months)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to archive game")
		} else {
			result.GameCode = code
		}
	}
	return result, nil
}

// archiveGame records the finished game and its final snapshot, so relay
// tooling can replay bot games the same way as human ones.
func archiveGame(ctx context.Context, cfg runConfig, g *cws.GameState, months int) (string, error) {
	code := campaignCode(cfg.seed)
	if _, err := cfg.gameRepo.Create(ctx, code, int(cws.Union), ""); err != nil {
		return "", err
	}
	if _, err := cfg.gameRepo.Join(ctx, code, int(cws.Confederate), ""); err != nil {
		return "", err
	}
	snap, err := g.Marshal()
	if err != nil {
		return "", err
	}
	if err := cfg.turnRepo.Archive(ctx, code, months, int(cws.Union), snap); err != nil {
		return "", err
	}
	if err := cfg.gameRepo.SetFinished(ctx, code, int(g.Winner)); err != nil {
		return "", err
	}
	return code, nil
}

// campaignCode derives a join code from the seed, prefixed so bot games
// are recognizable in the database.
func campaignCode(seed int64) string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	r := rand.New(rand.NewSource(seed ^ 0x5ca1ab1e))
	b := make([]byte, 4)
	for i := range b {
		b[i] = alphabet[r.Intn(len(alphabet))]
	}
	return "CP" + string(b)
}

func printJSON(results []*gameResult, errCount int) {
	out := struct {
		Games  []*gameResult `json:"games"`
		Failed int           `json:"failed,omitempty"`
	}{Failed: errCount}
	for _, r := range results {
		if r != nil {
			out.Games = append(out.Games, r)
		}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(out)
}

func printSummary(results []*gameResult, unionDiff, confedDiff, maxMonths, errCount int) {
	var unionWins, confedWins, draws, completed int
	var totalMonths, totalUnionCas, totalConfedCas int
	conditions := make(map[string]int)

	for _, r := range results {
		if r == nil {
			continue
		}
		completed++
		totalMonths += r.Months
		totalUnionCas += r.UnionCasualties
		totalConfedCas += r.ConfedCasualties
		switch cws.Side(r.Winner) {
		case cws.Union:
			unionWins++
			conditions[r.WinCondition]++
		case cws.Confederate:
			confedWins++
			conditions[r.WinCondition]++
		default:
			draws++
		}
	}

	fmt.Printf("\nResults (%d games, union=%d confed=%d, max %d months):\n",
		completed, unionDiff, confedDiff, maxMonths)
	if errCount > 0 {
		fmt.Printf("  (%d games failed)\n", errCount)
	}
	if completed == 0 {
		return
	}

	fmt.Printf("  Union wins:       %3d (%.0f%%)\n", unionWins, pct(unionWins, completed))
	fmt.Printf("  Confederate wins: %3d (%.0f%%)\n", confedWins, pct(confedWins, completed))
	fmt.Printf("  Draws:            %3d (%.0f%%)\n", draws, pct(draws, completed))
	fmt.Printf("  Avg length:       %.1f months\n", float64(totalMonths)/float64(completed))
	fmt.Printf("  Avg casualties:   union %d, confederate %d\n",
		totalUnionCas/completed, totalConfedCas/completed)

	if len(conditions) > 0 {
		var parts []string
		for cond, n := range conditions {
			parts = append(parts, fmt.Sprintf("%s %d", cond, n))
		}
		fmt.Printf("  Win conditions:   %s\n", strings.Join(parts, ", "))
	}
}

func pct(n, total int) float64 {
	return 100 * float64(n) / float64(total)
}
