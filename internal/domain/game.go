package domain

type Status byte

const (
	ReadyToStart = Status(iota)
	InProgress
	Finished
)

func (s Status) String() string {
	switch s {
	case ReadyToStart:
		return "ready to start"
	case InProgress:
		return "in progress"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

type GameState struct {
	CurrentTurn PlayerID
	IsFirstTurn bool
	IsGameOver  bool
	Winner      PlayerID
	Status      Status
}

// AttackOutcome is the structured result of one attack attempt. Reason is
// set when Success is false.
type AttackOutcome struct {
	Success   bool
	Result    AttackResult
	Target    Coord
	SunkShip  string
	FleetSunk bool
	Reason    error
}

type GameUseCase interface {
	ID() string
	RequestPlaceShip(id PlayerID, shipType string, row, col int, orientation Orientation) error
	RequestRotateShip(id PlayerID, shipType string) error
	RequestAutoPlace(id PlayerID) error
	RequestAttack(id PlayerID, row, col int) AttackOutcome
	RequestReset() error
	Start() error
	State() GameState
	Players() []*Player
	Snapshot(id PlayerID) (BoardSnapshot, error)
	IsOver() bool
	Close()
}
