package cws

// EventType tags one record in the structured turn log.
type EventType string

const (
	EventMonth      EventType = "month"
	EventMove       EventType = "move"
	EventNoSupply   EventType = "no_supply"
	EventMeeting    EventType = "meeting"
	EventAttack     EventType = "attack"
	EventBattle     EventType = "battle"
	EventWithdraw   EventType = "withdraw"
	EventRetreat    EventType = "retreat"
	EventSurrender  EventType = "surrender"
	EventCapture    EventType = "capture"
	EventNaval      EventType = "naval"
	EventRaid       EventType = "raid"
	EventRailDepart EventType = "railroad_depart"
	EventRailArrive EventType = "railroad_arrive"
	EventPopup      EventType = "popup"
)

// Event is one replayable record: everything a client needs to animate the
// step without re-running the simulation.
type Event struct {
	Type     EventType `json:"type"`
	Side     Side      `json:"side,omitempty"`
	ArmyID   int       `json:"army_id,omitempty"`
	ArmyName string    `json:"army_name,omitempty"`
	City     int       `json:"city,omitempty"`
	CityName string    `json:"city_name,omitempty"`
	Dest     int       `json:"dest,omitempty"`
	DestName string    `json:"dest_name,omitempty"`

	// Battle details.
	DefenderID     int     `json:"defender_id,omitempty"`
	DefenderName   string  `json:"defender_name,omitempty"`
	AttackerSize   int     `json:"attacker_size,omitempty"`
	DefenderSize   int     `json:"defender_size,omitempty"`
	AttackerLosses int     `json:"attacker_losses,omitempty"`
	DefenderLosses int     `json:"defender_losses,omitempty"`
	Odds           float64 `json:"odds,omitempty"`
	Winner         Side    `json:"winner,omitempty"`

	// Calendar header.
	Month int `json:"month,omitempty"`
	Year  int `json:"year,omitempty"`

	Msg string `json:"msg,omitempty"`
}

// Log appends an event to the month's log.
func (g *GameState) Log(e Event) {
	g.Events = append(g.Events, e)
}

// Popup records a free-text notice (random events, warnings).
func (g *GameState) Popup(s Side, msg string) {
	g.Log(Event{Type: EventPopup, Side: s, Msg: msg})
}

// ClearEvents resets the log at the start of a month.
func (g *GameState) ClearEvents() {
	g.Events = g.Events[:0]
	g.Log(Event{Type: EventMonth, Month: g.Month, Year: g.Year})
}

// EventsOfType filters the log by tag, mostly a test helper.
func (g *GameState) EventsOfType(t EventType) []Event {
	var out []Event
	for _, e := range g.Events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
