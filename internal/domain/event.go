package domain

type EventType byte

const (
	GameStarted = EventType(iota)
	AttackResolved
	TurnChanged
	GameOver
	PlacementRejected
)

func (t EventType) String() string {
	switch t {
	case GameStarted:
		return "gameStarted"
	case AttackResolved:
		return "attackResolved"
	case TurnChanged:
		return "turnChanged"
	case GameOver:
		return "gameOver"
	case PlacementRejected:
		return "placementRejected"
	default:
		return "unknown"
	}
}

func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

type Event struct {
	Type    EventType `json:"type"`
	GameID  string    `json:"game_id"`
	Payload any       `json:"payload"`
}

type GameStartedPayload struct {
	StartingPlayer PlayerID `json:"starting_player"`
}

type AttackResolvedPayload struct {
	Attacker  PlayerID     `json:"attacker"`
	Defender  PlayerID     `json:"defender"`
	Row       int          `json:"row"`
	Col       int          `json:"col"`
	Result    AttackResult `json:"result"`
	SunkShip  string       `json:"sunk_ship,omitempty"`
	FleetSunk bool         `json:"fleet_sunk"`
}

type TurnChangedPayload struct {
	CurrentPlayer PlayerID `json:"current_player"`
}

type GameOverPayload struct {
	Winner PlayerID `json:"winner"`
}

type PlacementRejectedPayload struct {
	Player   PlayerID `json:"player"`
	ShipType string   `json:"ship_type"`
	Reason   string   `json:"reason"`
}

// Listener receives game notifications once the coordinator has released
// its lock, so it may query the game but should not block.
type Listener interface {
	Notify(e Event)
}

type ListenerFunc func(e Event)

func (f ListenerFunc) Notify(e Event) {
	f(e)
}

type Listeners []Listener

func (l Listeners) Notify(e Event) {
	for _, listener := range l {
		listener.Notify(e)
	}
}
