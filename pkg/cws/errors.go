package cws

import (
	"errors"
	"fmt"
)

// Order rejection reasons. Validation never mutates state; a rejected
// order leaves the month exactly as it was.
var (
	ErrGameOver        = errors.New("game is already decided")
	ErrWrongSide       = errors.New("piece does not belong to this side")
	ErrNoSuchArmy      = errors.New("no army in that slot")
	ErrNoSuchCity      = errors.New("no such city")
	ErrArmyBusy        = errors.New("army has already acted this month")
	ErrNotAdjacent     = errors.New("destination is not adjacent")
	ErrNotEnoughCash   = errors.New("not enough cash")
	ErrNoFreeSlot      = errors.New("no free army slot")
	ErrCityNotOwned    = errors.New("city is not controlled by this side")
	ErrNotAPort        = errors.New("city is not a port")
	ErrNoFleet         = errors.New("no fleet afloat")
	ErrTrainInUse      = errors.New("railroad already used this turn")
	ErrNoRailRoute     = errors.New("no friendly rail route")
	ErrOverCapacity    = errors.New("exceeds railroad capacity")
	ErrFortMax         = errors.New("city is already fully fortified")
	ErrTooSmall        = errors.New("army is too small")
	ErrNotStacked      = errors.New("armies are not in the same city")
	ErrSupplyFull      = errors.New("army is already fully supplied")
	ErrDrillLimit      = errors.New("army cannot drill further")
	ErrCapitalHere     = errors.New("capital is already at that city")
	ErrIroncladTooSoon = errors.New("ironclads are not yet available")
	ErrJanuaryHalt     = errors.New("no campaigning in January")
	ErrHostilePopulace = errors.New("populace will not enlist")
	ErrCutOff          = errors.New("army is cut off from friendly territory")
	ErrNoCapital       = errors.New("capital has already fallen")
	ErrFleetAtSea      = errors.New("fleet is raiding at sea")
	ErrBlockaded       = errors.New("enemy fleet blockades that port")
	ErrNoTarget        = errors.New("no hostile port under the fleet's guns")
	ErrSamePort        = errors.New("fleet is already at that port")
)

// OrderError wraps a rejection with the offending order for reporting.
type OrderError struct {
	Order Order
	Err   error
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("invalid order %s: %v", e.Order.Describe(), e.Err)
}

func (e *OrderError) Unwrap() error { return e.Err }

func reject(o Order, err error) error {
	return &OrderError{Order: o, Err: err}
}
