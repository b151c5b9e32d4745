package domain

import (
	"github.com/pkg/errors"
)

var (
	ErrOutOfBounds        = errors.New("position is outside the board")
	ErrInvalidOrientation = errors.New("orientation must be horizontal or vertical")
	ErrBoundaryExceeded   = errors.New("ship placement exceeds board boundaries")
	ErrOverlapOrAdjacent  = errors.New("ship overlaps or touches another ship")
	ErrAlreadyAttacked    = errors.New("cell has already been attacked")
	ErrNoShipsPlaced      = errors.New("no ships have been placed on the board")
	ErrInvalidShip        = errors.New("invalid ship")
	ErrUnknownShip        = errors.New("unknown ship type")
	ErrShipNotPlaced      = errors.New("ship is not placed on the board")
	ErrInvalidFleet       = errors.New("invalid fleet configuration")
)

var (
	ErrUnknownPlayer      = errors.New("unknown player")
	ErrNotYourTurn        = errors.New("it is not this player's turn")
	ErrGameOver           = errors.New("game is over")
	ErrGameNotStarted     = errors.New("game has not started yet")
	ErrGameInProgress     = errors.New("game is already in progress")
	ErrPlacementClosed    = errors.New("ships can only be placed before the game starts")
	ErrFleetNotPlaced     = errors.New("all ships must be placed before the game starts")
	ErrPlacementExhausted = errors.New("could not place the fleet within the attempt limit")
	ErrGameNotFound       = errors.New("game not found")
)

// IsRejectedMove reports whether err is a board-level rejection of a single
// attack (the cell is not a legal target), as opposed to a turn or phase error.
func IsRejectedMove(err error) bool {
	return errors.Is(err, ErrAlreadyAttacked) || errors.Is(err, ErrOutOfBounds)
}
