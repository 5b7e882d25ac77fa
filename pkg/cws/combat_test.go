package cws

import (
	"errors"
	"testing"
)

func TestBattle_CasualtyBounds(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		g := testGame(seed)
		// McDowell (90) assaults Beauregard at Fredericksburg (80).
		res := g.Battle(1, 21)

		ka, kd := res.AttackerLosses, res.DefenderLosses
		if ka < 1 || kd < 1 {
			t.Fatalf("seed %d: losses %d/%d, both sides must bleed", seed, ka, kd)
		}
		if ka > 9*kd {
			t.Fatalf("seed %d: attacker losses %d exceed 9x defender %d", seed, ka, kd)
		}
		if kd > 5*ka {
			t.Fatalf("seed %d: defender losses %d exceed 5x attacker %d", seed, kd, ka)
		}
		if got := g.Army(1).Size; got != 90-ka || got < 1 {
			t.Fatalf("seed %d: attacker size %d after %d losses", seed, got, ka)
		}
		if got := g.Army(21).Size; got != 80-kd || got < 1 {
			t.Fatalf("seed %d: defender size %d after %d losses", seed, got, kd)
		}
		if res.Winner != 1 && res.Winner != 21 {
			t.Fatalf("seed %d: winner = army %d", seed, res.Winner)
		}
		if res.WinnerSide != g.Army(res.Winner).Side {
			t.Fatalf("seed %d: winner side %v for army %d", seed, res.WinnerSide, res.Winner)
		}
		if res.Odds <= 0 || res.Odds >= 1 {
			t.Fatalf("seed %d: odds = %v", seed, res.Odds)
		}
	}
}

func TestBattle_Bookkeeping(t *testing.T) {
	g := testGame(3)
	res := g.Battle(1, 21)

	if got := g.Side(Union).Casualties; got != res.AttackerLosses {
		t.Errorf("Union casualties = %d, want %d", got, res.AttackerLosses)
	}
	if got := g.Side(Confederate).Casualties; got != res.DefenderLosses {
		t.Errorf("Confederate casualties = %d, want %d", got, res.DefenderLosses)
	}
	if got := g.Side(res.WinnerSide).BattlesWon; got != 1 {
		t.Errorf("winner battles won = %d", got)
	}
	if got := g.Side(res.WinnerSide.Enemy()).BattlesWon; got != 0 {
		t.Errorf("loser battles won = %d", got)
	}

	battles := g.EventsOfType(EventBattle)
	if len(battles) != 1 {
		t.Fatalf("logged %d battle events", len(battles))
	}
	if battles[0].Winner != res.WinnerSide {
		t.Errorf("logged winner %v, result %v", battles[0].Winner, res.WinnerSide)
	}
}

func TestBattle_ConsumesSupply(t *testing.T) {
	g := testGame(1)
	g.Battle(1, 21)
	if got := g.Army(1).Supply; got != 4 {
		t.Errorf("attacker supply = %d, want 4", got)
	}
	if got := g.Army(21).Supply; got != 3 {
		t.Errorf("defender supply = %d, want 3", got)
	}
}

func TestCapture_NeutralCity(t *testing.T) {
	g := testGame(1)
	before := g.Side(Union).Victory
	value := g.City(24).Value

	g.Capture(5, 24, false)

	if g.City(24).Owner != Union {
		t.Fatalf("Bowling Green owner = %v", g.City(24).Owner)
	}
	if got := g.Side(Union).Victory; got != before+value {
		t.Errorf("victory = %d, want %d", got, before+value)
	}
	if len(g.EventsOfType(EventCapture)) != 1 {
		t.Error("capture not logged")
	}
	if g.Side(Union).Casualties != 0 {
		t.Error("walkover capture caused casualties")
	}
}

func TestCapture_CapitalFalls(t *testing.T) {
	g := testGame(1)
	uBefore := g.Side(Union).Victory
	cBefore := g.Side(Confederate).Victory
	value := g.City(UnionCapital).Value

	// Beauregard takes Washington.
	g.Capture(21, UnionCapital, false)

	if g.Side(Union).Capital != 0 {
		t.Fatal("fallen capital still standing")
	}
	if got := g.Side(Confederate).Victory; got != cBefore+value+100 {
		t.Errorf("captor victory = %d, want %d", got, cBefore+value+100)
	}
	if got := g.Side(Union).Victory; got != uBefore-100 {
		t.Errorf("victim victory = %d, want %d", got, uBefore-100)
	}
	if len(g.EventsOfType(EventPopup)) == 0 {
		t.Error("no capital-fallen notice")
	}
}

func TestCapture_AssaultDamagesFort(t *testing.T) {
	g := testGame(1)
	if g.City(7).Fort != 1 {
		t.Fatalf("Charleston fort = %d at start", g.City(7).Fort)
	}
	g.Capture(1, 7, true)
	if g.City(7).Fort != 0 {
		t.Errorf("fort after assault = %d", g.City(7).Fort)
	}
	if g.City(7).Owner != Union {
		t.Errorf("owner after assault = %v", g.City(7).Owner)
	}
}

func TestFortify(t *testing.T) {
	g := testGame(1)
	cash := g.Side(Union).Cash

	if err := g.Fortify(Union, UnionCapital); err != nil {
		t.Fatalf("Fortify: %v", err)
	}
	if g.City(UnionCapital).Fort != 2 {
		t.Errorf("fort = %d, want 2", g.City(UnionCapital).Fort)
	}
	if got := g.Side(Union).Cash; got != cash-200 {
		t.Errorf("cash = %d, want %d", got, cash-200)
	}
	if g.Army(1).Move != MoveResting {
		t.Error("garrison free to move after digging in")
	}

	if err := g.Fortify(Union, UnionCapital); !errors.Is(err, ErrFortMax) {
		t.Errorf("second fortify: %v", err)
	}
}

func TestFortify_Validation(t *testing.T) {
	g := testGame(1)
	if err := g.Fortify(Union, 1); !errors.Is(err, ErrCityNotOwned) {
		t.Errorf("enemy city: %v", err)
	}
	// Philadelphia is friendly but has no garrison.
	if err := g.Fortify(Union, 29); !errors.Is(err, ErrNoSuchArmy) {
		t.Errorf("empty city: %v", err)
	}
	g.Side(Union).Cash = 100
	if err := g.Fortify(Union, UnionCapital); !errors.Is(err, ErrNotEnoughCash) {
		t.Errorf("broke treasury: %v", err)
	}
}

func TestRetreatCity(t *testing.T) {
	g := testGame(1)
	// Beauregard at Fredericksburg falls back through Confederate ground.
	flee := g.RetreatCity(21)
	if flee == 0 {
		t.Fatal("no retreat route from Fredericksburg")
	}
	if g.City(flee).Owner != Confederate {
		t.Fatalf("retreat into %v territory", g.City(flee).Owner)
	}
	// Strip every friendly neighbor and the army is surrounded.
	for _, n := range g.City(19).Neighbors() {
		g.Cities[n].Owner = Union
	}
	if flee := g.RetreatCity(21); flee != 0 {
		t.Fatalf("surrounded army retreats to %d", flee)
	}
}
