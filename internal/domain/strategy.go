package domain

import (
	"time"
)

// TargetBoard is what an attacker may know about the defender's board.
type TargetBoard interface {
	Size() int
	IsAttacked(c Coord) bool
	RemainingShipLengths() []int
}

type StrategyUseCase interface {
	NextTarget(board TargetBoard) (Coord, bool)
	Observe(board TargetBoard, target Coord, result AttackResult, sunk bool)
	Delay() time.Duration
	Reset()
}

type PlacementUseCase interface {
	AutoPlace(player *Player, specs []ShipSpec) error
}
