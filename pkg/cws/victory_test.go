package cws

import (
	"strings"
	"testing"
)

func TestCheckVictory_Annihilation(t *testing.T) {
	g := quietGame(1)
	for i := 21; i <= 40; i++ {
		g.Armies[i] = Army{}
	}
	vp := g.Side(Union).Victory

	g.CheckVictory()

	if g.Status != StatusFinished || g.Winner != Union {
		t.Fatalf("status %q winner %v", g.Status, g.Winner)
	}
	if g.WinCondition != WinAnnihilation {
		t.Fatalf("condition = %v", g.WinCondition)
	}
	if got := g.Side(Union).Victory; got != vp+400 {
		t.Fatalf("victory = %d, want %d", got, vp+400)
	}
}

func TestCheckVictory_TimeExpiry(t *testing.T) {
	g := quietGame(1)
	g.Year = 1866
	g.Month = 7
	g.Side(Union).Victory = 100
	g.Side(Confederate).Victory = 200

	g.CheckVictory()

	if g.WinCondition != WinTimeExpiry {
		t.Fatalf("condition = %v", g.WinCondition)
	}
	if g.Winner != Confederate {
		t.Fatalf("winner = %v, survival favors the defender", g.Winner)
	}
	if g.Side(Union).Victory != 70 || g.Side(Confederate).Victory != 140 {
		t.Fatalf("scaled victory = %d/%d, want 70/140",
			g.Side(Union).Victory, g.Side(Confederate).Victory)
	}
}

func TestCheckVictory_ControlThreshold(t *testing.T) {
	g := quietGame(1)
	g.Side(Union).Control = 25

	g.CheckVictory()

	if g.WinCondition != WinControl || g.Winner != Union {
		t.Fatalf("condition %v winner %v", g.WinCondition, g.Winner)
	}
}

func TestCheckVictory_IncomeShare(t *testing.T) {
	g := quietGame(1)
	g.Side(Union).Income = 80
	g.Side(Confederate).Income = 20

	g.CheckVictory()

	if g.WinCondition != WinIncomeShare || g.Winner != Union {
		t.Fatalf("condition %v winner %v", g.WinCondition, g.Winner)
	}
}

func TestCheckVictory_CapitalFallen(t *testing.T) {
	g := quietGame(1)
	g.Side(Confederate).Capital = 0

	g.CheckVictory()

	if g.WinCondition != WinCapital || g.Winner != Union {
		t.Fatalf("condition %v winner %v", g.WinCondition, g.Winner)
	}
}

func TestCheckVictory_ForceRatio(t *testing.T) {
	g := quietGame(1)
	for i := 22; i <= 40; i++ {
		g.Armies[i] = Army{}
	}
	g.Armies[21].Size = 10

	g.CheckVictory()

	if g.WinCondition != WinForceRatio || g.Winner != Union {
		t.Fatalf("condition %v winner %v", g.WinCondition, g.Winner)
	}
}

func TestCheckVictory_WarnsNearThreshold(t *testing.T) {
	g := quietGame(1)
	g.Side(Union).Control = 23

	g.CheckVictory()

	if g.Status != StatusActive {
		t.Fatalf("status = %q, the game is not over", g.Status)
	}
	found := false
	for _, e := range g.EventsOfType(EventPopup) {
		if strings.Contains(e.Msg, "city-control") {
			found = true
		}
	}
	if !found {
		t.Error("no near-threshold warning")
	}
}

func TestCheckVictory_FinishedGameUntouched(t *testing.T) {
	g := quietGame(1)
	g.Status = StatusFinished
	g.Winner = Confederate
	g.WinCondition = WinCapital

	g.Side(Union).Control = 40
	g.CheckVictory()

	if g.Winner != Confederate || g.WinCondition != WinCapital {
		t.Fatal("decided game re-decided")
	}
}

func TestVictoryCondition_String(t *testing.T) {
	if WinAnnihilation.String() != "annihilation" {
		t.Errorf("got %q", WinAnnihilation.String())
	}
	if WinNone.String() != "none" {
		t.Errorf("got %q", WinNone.String())
	}
}
