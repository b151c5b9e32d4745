package domain

import (
	"github.com/pkg/errors"
)

const BoardSize = 10

type AttackResult string

const (
	Hit  = AttackResult("hit")
	Miss = AttackResult("miss")
)

// Board is one player's grid. Ships may not overlap nor touch each other,
// diagonals included, which is what lets hits reveal their surroundings.
type Board struct {
	size     int
	grid     [][]*Ship
	hits     cellSet
	misses   cellSet
	occupied cellSet
	fleet    *Fleet
}

func NewBoard() *Board {
	b := &Board{size: BoardSize}
	b.Reset()
	return b
}

func (b *Board) Reset() {
	b.grid = make([][]*Ship, b.size)
	for i := range b.grid {
		b.grid[i] = make([]*Ship, b.size)
	}
	b.hits = newCellSet(b.size)
	b.misses = newCellSet(b.size)
	b.occupied = newCellSet(b.size)
	b.fleet = NewFleet()
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) Fleet() *Fleet {
	return b.fleet
}

// SetFleet replaces the fleet. Ships of the previous fleet are taken off the grid.
func (b *Board) SetFleet(fleet *Fleet) {
	for _, ship := range b.fleet.Ships() {
		b.lift(ship)
	}
	b.fleet = fleet
}

func (b *Board) PlaceShip(row, col int, ship *Ship, orientation Orientation) error {
	if ship == nil || ship.Type == "" || ship.Length < 1 {
		return ErrInvalidShip
	}
	anchor := NewCoord(row, col)
	if !anchor.In(b.size) {
		return errors.WithMessagef(ErrOutOfBounds, "row %d, col %d", row, col)
	}
	if !orientation.Valid() {
		return errors.WithMessagef(ErrInvalidOrientation, "got '%s'", orientation)
	}
	dr, dc := orientation.step()
	if ship.Length > b.size || !anchor.Add(dr*(ship.Length-1), dc*(ship.Length-1)).In(b.size) {
		return errors.WithMessagef(ErrBoundaryExceeded, "%s of length %d at row %d, col %d %s",
			ship.Type, ship.Length, row, col, orientation)
	}
	cells := segments(anchor, orientation, ship.Length)
	if err := b.checkBuffer(ship.Type, cells); err != nil {
		return err
	}
	if prev, ok := b.fleet.Get(ship.Type); ok {
		b.lift(prev)
	}
	b.lift(ship)
	ship.place(anchor, orientation)
	for _, c := range cells {
		b.grid[c.Row][c.Col] = ship
		b.occupied.add(c)
	}
	b.fleet.put(ship)
	return nil
}

// checkBuffer fails if any cell within one step of cells, diagonals included,
// belongs to a ship of another type.
func (b *Board) checkBuffer(shipType string, cells []Coord) error {
	for _, c := range cells {
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				n := c.Add(dr, dc)
				if !n.In(b.size) {
					continue
				}
				if other := b.grid[n.Row][n.Col]; other != nil && other.Type != shipType {
					return errors.WithMessagef(ErrOverlapOrAdjacent, "%s is too close to %s at row %d, col %d",
						shipType, other.Type, n.Row, n.Col)
				}
			}
		}
	}
	return nil
}

// lift removes ship from the cells it owns on this board.
func (b *Board) lift(ship *Ship) {
	for _, c := range ship.Cells() {
		if c.In(b.size) && b.grid[c.Row][c.Col] == ship {
			b.grid[c.Row][c.Col] = nil
			b.occupied.remove(c)
		}
	}
}

// RotateShip flips a placed ship around its middle segment. The previous
// placement stays untouched if the rotated one is not allowed.
func (b *Board) RotateShip(shipType string) error {
	ship, ok := b.fleet.Get(shipType)
	if !ok {
		return errors.WithMessagef(ErrUnknownShip, "'%s'", shipType)
	}
	if !b.onBoard(ship) {
		return errors.WithMessagef(ErrShipNotPlaced, "'%s'", shipType)
	}
	pivotIndex := ship.Length / 2
	pivot := ship.Cells()[pivotIndex]
	orientation := ship.Orientation().Flip()
	anchor := pivot
	if orientation == Horizontal {
		anchor.Col -= pivotIndex
	} else {
		anchor.Row -= pivotIndex
	}
	return errors.WithMessage(b.PlaceShip(anchor.Row, anchor.Col, ship, orientation), "rotate ship")
}

func (b *Board) onBoard(ship *Ship) bool {
	if !ship.IsPlaced() {
		return false
	}
	anchor := ship.Anchor()
	return anchor.In(b.size) && b.grid[anchor.Row][anchor.Col] == ship
}

func (b *Board) ReceiveAttack(row, col int) (AttackResult, error) {
	c := NewCoord(row, col)
	if !c.In(b.size) {
		return "", errors.WithMessagef(ErrOutOfBounds, "row %d, col %d", row, col)
	}
	if b.IsAttacked(c) {
		return "", errors.WithMessagef(ErrAlreadyAttacked, "row %d, col %d", row, col)
	}
	ship := b.grid[row][col]
	if ship == nil {
		b.misses.add(c)
		return Miss, nil
	}
	ship.Hit()
	b.hits.add(c)
	for _, d := range c.Diagonal() {
		b.markMiss(d)
	}
	if ship.IsSunk() {
		for _, segment := range ship.Cells() {
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					b.markMiss(segment.Add(dr, dc))
				}
			}
		}
	}
	return Hit, nil
}

// markMiss records c as a known-empty cell if nothing is known about it yet.
func (b *Board) markMiss(c Coord) {
	if !c.In(b.size) || b.occupied.has(c) || b.IsAttacked(c) {
		return
	}
	b.misses.add(c)
}

func (b *Board) AllShipsSunk() (bool, error) {
	if b.fleet.Len() == 0 {
		return false, ErrNoShipsPlaced
	}
	for _, ship := range b.fleet.Ships() {
		if !ship.IsSunk() {
			return false, nil
		}
	}
	return true, nil
}

// ShipAt returns the ship occupying c, or nil.
func (b *Board) ShipAt(c Coord) *Ship {
	if !c.In(b.size) {
		return nil
	}
	return b.grid[c.Row][c.Col]
}

func (b *Board) IsAttacked(c Coord) bool {
	return b.hits.has(c) || b.misses.has(c)
}

func (b *Board) IsHit(c Coord) bool {
	return b.hits.has(c)
}

func (b *Board) IsMiss(c Coord) bool {
	return b.misses.has(c)
}

func (b *Board) IsOccupied(c Coord) bool {
	return b.occupied.has(c)
}

func (b *Board) Hits() []Coord {
	return b.hits.coords()
}

func (b *Board) Misses() []Coord {
	return b.misses.coords()
}

func (b *Board) Occupied() []Coord {
	return b.occupied.coords()
}

// RemainingShipLengths lists the lengths of the ships that are still afloat.
func (b *Board) RemainingShipLengths() []int {
	lengths := make([]int, 0, b.fleet.Len())
	for _, ship := range b.fleet.Ships() {
		if !ship.IsSunk() {
			lengths = append(lengths, ship.Length)
		}
	}
	return lengths
}
