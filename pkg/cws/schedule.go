package cws

import "sort"

// scheduleCode computes an army's time-of-action bucket for the month.
// Lower acts first. The army id is folded in so codes are unique and ties
// resolve in arena order. 999 means the army is not moving.
const notMoving = 999

func (g *GameState) scheduleCode(id int) int {
	a := g.Army(id)
	code := notMoving
	if a.Move < 0 {
		a.Move = 0
	}
	if a.Location > 0 && a.Move > 0 {
		code = int(4+4*g.Rand().Float64())*100 + id
	}
	if a.Supply < 1 && a.Move > 0 {
		code = 900 + id
	}
	// Ponderous armies slip a bucket.
	if a.Size > 400 && code < 900 {
		code += 100
	}
	// A sharp commander steals a march.
	if code != notMoving && float64(a.Leader) > 10*g.Rand().Float64() {
		code -= 100 * (a.Leader / 2)
		if code < 100 {
			code = 100 + id
		}
	}
	return code
}

// ScheduleMoves assigns every moving army a time of action and returns
// army ids in resolution order.
func (g *GameState) ScheduleMoves() []int {
	codes := make([]int, 0, NumArmies)
	for i := 1; i <= NumArmies; i++ {
		c := g.scheduleCode(i)
		if c != notMoving {
			codes = append(codes, c)
		}
	}
	sort.Ints(codes)
	order := make([]int, len(codes))
	for i, c := range codes {
		order[i] = c - 100*(c/100)
	}
	return order
}
