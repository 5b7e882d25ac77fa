package bot

import (
	"math/rand"
	"testing"

	"github.com/sachio222/civil-war-strategy-online-sub000/pkg/cws"
)

func testGame(seed int64) *cws.GameState {
	set := cws.DefaultSettings()
	set.RandBalance = 0
	return cws.NewGame(set, rand.New(rand.NewSource(seed)))
}

func TestEvaluateMove_AdjacentOrZero(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		SeedBotRng(seed)
		g := testGame(seed)
		for _, s := range []cws.Side{cws.Union, cws.Confederate} {
			for _, id := range g.ArmiesOf(s) {
				dest := evaluateMove(g, s, 2, 1, id)
				if dest == 0 {
					continue
				}
				if !g.City(g.Army(id).Location).AdjacentTo(dest) {
					t.Fatalf("seed %d army %d: destination %d not adjacent to %d",
						seed, id, dest, g.Army(id).Location)
				}
			}
		}
	}
	ResetBotRng()
}

func TestEvaluateMove_MarchesOnNeutralGround(t *testing.T) {
	// Army 5 sits at Louisville with two neutral cities next door and no
	// enemy in the theater. The evaluator should send it to one of them.
	for seed := int64(1); seed <= 20; seed++ {
		SeedBotRng(seed)
		g := testGame(seed)
		dest := evaluateMove(g, cws.Union, 2, 1, 5)
		if dest != 24 && dest != 25 {
			t.Fatalf("seed %d: army 5 went to %d, want Bowling Green or Lexington", seed, dest)
		}
	}
	ResetBotRng()
}

func TestEvaluateMove_StrikesAtEnemyCapital(t *testing.T) {
	// The Fredericksburg army stands one march from Washington. The
	// capital bonus dominates every alternative from that city.
	for seed := int64(1); seed <= 20; seed++ {
		SeedBotRng(seed)
		g := testGame(seed)
		dest := evaluateMove(g, cws.Confederate, 2, 1, 21)
		if dest != 27 {
			t.Fatalf("seed %d: army 21 went to %d, want Washington", seed, dest)
		}
	}
	ResetBotRng()
}

func TestEvaluateMove_SkipsCityAFriendIsBoundFor(t *testing.T) {
	SeedBotRng(1)
	defer ResetBotRng()
	g := testGame(1)

	// Send army 26 toward Raleigh, then ask again for another army whose
	// only worthwhile prize is the same empty city.
	if err := g.OrderMove(cws.Confederate, 26, 3); err != nil {
		t.Fatalf("setup move: %v", err)
	}
	for seed := int64(1); seed <= 20; seed++ {
		SeedBotRng(seed)
		a := g.Army(23)
		a.Location = 5 // Charlotte: neighbors are Raleigh, Lynchburg, Columbia
		g.OccupyAll()
		if dest := evaluateMove(g, cws.Confederate, 2, 1, 23); dest == 3 {
			t.Fatalf("seed %d: army 23 piled onto Raleigh behind army 26", seed)
		}
	}
}

func TestEvaluateMove_RefusesHopelessAssault(t *testing.T) {
	// A 50-man column at Lynchburg stares across at 500 men dug in behind
	// second-line works at Wheeling. At ten-to-one against, no boldness
	// setting should ever pick that fight.
	for seed := int64(1); seed <= 20; seed++ {
		for bold := 0; bold <= 3; bold++ {
			SeedBotRng(seed)
			g := testGame(seed)

			a := g.Army(23)
			a.Location = 4
			a.Size = 50
			d := g.Army(3) // Wheeling's garrison
			d.Size = 500
			g.City(34).Fort = 2
			g.OccupyAll()

			if dest := evaluateMove(g, cws.Confederate, bold, 1, 23); dest == 34 {
				t.Fatalf("seed %d bold %d: army 23 assaulted Wheeling at 10:1 against",
					seed, bold)
			}
		}
	}
	ResetBotRng()
}

func TestScoreAttack_VetoSentinel(t *testing.T) {
	// At odds below the veto line a timid commander gets the sentinel
	// score, so the caller drops the city from consideration outright.
	SeedBotRng(1)
	defer ResetBotRng()
	g := testGame(1)

	a := g.Army(23)
	a.Location = 4
	a.Size = 50
	g.Army(3).Size = 500
	g.City(34).Fort = 2
	g.OccupyAll()

	if got := scoreAttack(g, cws.Confederate, 0, 23, 34, 0); got != -9999 {
		t.Fatalf("scoreAttack = %d, want the veto sentinel", got)
	}
}

func TestAggressThreshold(t *testing.T) {
	cases := []struct {
		aggress float64
		want    int
	}{
		{0.5, 200}, {1.5, 200}, {1.6, 80}, {2.5, 20}, {3.5, 5},
	}
	for _, c := range cases {
		if got := aggressThreshold(c.aggress); got != c.want {
			t.Errorf("aggressThreshold(%v) = %d, want %d", c.aggress, got, c.want)
		}
	}
}
