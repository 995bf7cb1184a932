package game

import "time"

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeRoundStart        EventType = "round_start"
	EventTypeBid               EventType = "bid"
	EventTypeChallengeResolved EventType = "challenge_resolved"
	EventTypeExactResolved     EventType = "exact_resolved"
	EventTypePlayerEliminated  EventType = "player_eliminated"
	EventTypeGameEnd           EventType = "game_end"
	EventTypeDecisionTimeout   EventType = "decision_timeout"
)

func (et EventType) String() string {
	return string(et)
}

// Event represents any event that occurs during a game
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// PlayerDiceCount pairs a player with their remaining dice for event payloads.
type PlayerDiceCount struct {
	Name          string
	DiceRemaining int
}

// RoundStartEvent is published when dice have been rolled for a new round
type RoundStartEvent struct {
	RoundNumber int
	TotalDice   int
	PerPlayer   []PlayerDiceCount
	timestamp   time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundStartEvent creates a new round start event
func NewRoundStartEvent(roundNumber, totalDice int, perPlayer []PlayerDiceCount) RoundStartEvent {
	return RoundStartEvent{
		RoundNumber: roundNumber,
		TotalDice:   totalDice,
		PerPlayer:   perPlayer,
		timestamp:   time.Now(),
	}
}

// BidEvent is published when a bid is recorded
type BidEvent struct {
	Player    string
	Quantity  int
	Face      int
	timestamp time.Time
}

func (e BidEvent) EventType() EventType { return EventTypeBid }
func (e BidEvent) Timestamp() time.Time { return e.timestamp }

// NewBidEvent creates a new bid event
func NewBidEvent(player string, bid Bid) BidEvent {
	return BidEvent{Player: player, Quantity: bid.Quantity, Face: bid.Face, timestamp: time.Now()}
}

// ResolutionEvent is published when a challenge or exact call resolves the
// round. Its event type distinguishes the two.
type ResolutionEvent struct {
	Kind      ResolutionKind
	Winner    string
	Loser     string
	Bid       Bid
	Actual    int
	timestamp time.Time
}

func (e ResolutionEvent) EventType() EventType {
	if e.Kind == ResolvedExact {
		return EventTypeExactResolved
	}
	return EventTypeChallengeResolved
}
func (e ResolutionEvent) Timestamp() time.Time { return e.timestamp }

// NewResolutionEvent creates a new resolution event
func NewResolutionEvent(kind ResolutionKind, winner, loser string, bid Bid, actual int) ResolutionEvent {
	return ResolutionEvent{
		Kind:      kind,
		Winner:    winner,
		Loser:     loser,
		Bid:       bid,
		Actual:    actual,
		timestamp: time.Now(),
	}
}

// PlayerEliminatedEvent is published when a player loses their last die
type PlayerEliminatedEvent struct {
	Player    string
	timestamp time.Time
}

func (e PlayerEliminatedEvent) EventType() EventType { return EventTypePlayerEliminated }
func (e PlayerEliminatedEvent) Timestamp() time.Time { return e.timestamp }

// NewPlayerEliminatedEvent creates a new player eliminated event
func NewPlayerEliminatedEvent(player string) PlayerEliminatedEvent {
	return PlayerEliminatedEvent{Player: player, timestamp: time.Now()}
}

// GameEndEvent is published when exactly one player remains
type GameEndEvent struct {
	Winner    string
	Rounds    int
	timestamp time.Time
}

func (e GameEndEvent) EventType() EventType { return EventTypeGameEnd }
func (e GameEndEvent) Timestamp() time.Time { return e.timestamp }

// NewGameEndEvent creates a new game end event
func NewGameEndEvent(winner string, rounds int) GameEndEvent {
	return GameEndEvent{Winner: winner, Rounds: rounds, timestamp: time.Now()}
}

// DecisionTimeoutEvent is published when the decision gate substitutes a
// fallback for a late, failed, or illegal strategy response
type DecisionTimeoutEvent struct {
	Player    string
	Reason    string
	Fallback  Action
	timestamp time.Time
}

func (e DecisionTimeoutEvent) EventType() EventType { return EventTypeDecisionTimeout }
func (e DecisionTimeoutEvent) Timestamp() time.Time { return e.timestamp }

// NewDecisionTimeoutEvent creates a new decision timeout event
func NewDecisionTimeoutEvent(player, reason string, fallback Action) DecisionTimeoutEvent {
	return DecisionTimeoutEvent{Player: player, Reason: reason, Fallback: fallback, timestamp: time.Now()}
}

// Listener receives game events. Listeners run inside their own error
// boundary; a panicking listener never affects the engine or other listeners.
type Listener func(event Event)

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(listener Listener)
	Publish(event Event)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	listeners []Listener
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{listeners: make([]Listener, 0)}
}

// Subscribe adds a listener to receive events
func (bus *SimpleEventBus) Subscribe(listener Listener) {
	bus.listeners = append(bus.listeners, listener)
}

// Publish sends an event to all listeners, isolating each one's failures
func (bus *SimpleEventBus) Publish(event Event) {
	for _, l := range bus.listeners {
		func() {
			defer func() {
				_ = recover()
			}()
			l(event)
		}()
	}
}
