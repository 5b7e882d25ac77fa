package cws

import (
	"errors"
	"strings"
	"testing"
)

func TestParseOrderType_RoundTrip(t *testing.T) {
	for o := OrderRecruit; o <= OrderEndTurn; o++ {
		got, err := ParseOrderType(o.String())
		if err != nil {
			t.Fatalf("%v: %v", o, err)
		}
		if got != o {
			t.Fatalf("%v round-trips to %v", o, got)
		}
	}
	if _, err := ParseOrderType("charge"); err == nil {
		t.Fatal("unknown verb accepted")
	}
}

func TestOrderType_UnmarshalText(t *testing.T) {
	var o OrderType
	if err := o.UnmarshalText([]byte("railroad")); err != nil {
		t.Fatal(err)
	}
	if o != OrderRailroad {
		t.Fatalf("got %v", o)
	}
	if err := o.UnmarshalText([]byte("bogus")); err == nil {
		t.Fatal("bogus verb accepted")
	}
}

func TestApply_RejectionLeavesStateUnchanged(t *testing.T) {
	cases := []struct {
		name  string
		order Order
		want  error
	}{
		{"move not adjacent", Order{Type: OrderMove, Side: Union, Army: 1, Dest: 40}, ErrNotAdjacent},
		{"move enemy army", Order{Type: OrderMove, Side: Union, Army: 21, Dest: 1}, ErrWrongSide},
		{"move empty slot", Order{Type: OrderMove, Side: Union, Army: 7, Dest: 28}, ErrNoSuchArmy},
		{"recruit enemy city", Order{Type: OrderRecruit, Side: Union, City: 1}, ErrCityNotOwned},
		{"fortify enemy city", Order{Type: OrderFortify, Side: Union, City: 1}, ErrCityNotOwned},
		{"combine apart", Order{Type: OrderCombine, Side: Union, Army: 1, Other: 2}, ErrNotStacked},
		{"supply full army", Order{Type: OrderSupply, Side: Union, Army: 1}, ErrSupplyFull},
		{"capital in place", Order{Type: OrderCapital, Side: Union, City: UnionCapital}, ErrCapitalHere},
		{"union detachment", Order{Type: OrderDetach, Side: Union, Army: 1}, ErrWrongSide},
		{"drill enemy army", Order{Type: OrderDrill, Side: Union, Army: 21}, ErrWrongSide},
	}
	for _, tc := range cases {
		g := testGame(1)
		before := g.Clone()
		err := g.Apply(tc.order)
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
		if !g.Equal(before) {
			t.Errorf("%s: rejected order mutated the state", tc.name)
		}
	}
}

func TestApply_FinishedGame(t *testing.T) {
	g := testGame(1)
	g.Status = StatusFinished
	err := g.Apply(Order{Type: OrderMove, Side: Union, Army: 1, Dest: 28})
	if !errors.Is(err, ErrGameOver) {
		t.Fatalf("err = %v", err)
	}
}

func TestApplyBatch_StopsAtEndTurn(t *testing.T) {
	g := testGame(1)
	batch := []Order{
		{Type: OrderEndTurn, Side: Union},
		{Type: OrderMove, Side: Union, Army: 1, Dest: 28},
	}
	if err := g.ApplyBatch(batch); err != nil {
		t.Fatal(err)
	}
	if g.Army(1).Move != 0 {
		t.Fatal("order after end_turn was applied")
	}
}

func TestApplyBatch_AbortsOnRejection(t *testing.T) {
	g := testGame(1)
	batch := []Order{
		{Type: OrderMove, Side: Union, Army: 1, Dest: 40},
		{Type: OrderMove, Side: Union, Army: 6, Dest: 29},
	}
	if err := g.ApplyBatch(batch); err == nil {
		t.Fatal("bad batch accepted")
	}
	if g.Army(6).Move != 0 {
		t.Fatal("order after the rejection was applied")
	}
}

func TestOrderMove_RecordsPendingDestination(t *testing.T) {
	g := testGame(1)
	if err := g.OrderMove(Union, 1, 19); err != nil {
		t.Fatal(err)
	}
	if g.Army(1).Move != 19 {
		t.Fatalf("pending move = %d", g.Army(1).Move)
	}
	// Re-ordering before resolution just changes the destination.
	if err := g.OrderMove(Union, 1, 28); err != nil {
		t.Fatal(err)
	}
	if g.Army(1).Move != 28 {
		t.Fatalf("pending move = %d", g.Army(1).Move)
	}
}

func TestOrderMove_JanuaryHalt(t *testing.T) {
	g := testGame(1)
	g.Month = 1
	err := g.OrderMove(Union, 1, 19)
	if !errors.Is(err, ErrJanuaryHalt) {
		t.Fatalf("offensive in January: %v", err)
	}
	// Marching inside friendly territory is still allowed.
	if err := g.OrderMove(Union, 1, 28); err != nil {
		t.Fatalf("friendly january move: %v", err)
	}

	g2 := testGame(1)
	g2.Month = 1
	g2.Settings.JanCampaign = true
	if err := g2.OrderMove(Union, 1, 19); err != nil {
		t.Fatalf("winter campaign enabled: %v", err)
	}
}

func TestOrderError_Reporting(t *testing.T) {
	g := testGame(1)
	err := g.OrderMove(Union, 1, 40)
	var oe *OrderError
	if !errors.As(err, &oe) {
		t.Fatalf("err type %T", err)
	}
	if oe.Order.Army != 1 || oe.Order.Dest != 40 {
		t.Errorf("wrapped order = %+v", oe.Order)
	}
	if !strings.Contains(err.Error(), "move") {
		t.Errorf("message %q does not name the verb", err.Error())
	}
}
