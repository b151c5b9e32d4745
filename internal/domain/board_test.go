package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBoardDimensions(t *testing.T) {
	board := NewBoard()
	require.Equal(t, 10, board.Size())
	require.Len(t, board.grid, 10)
	for _, row := range board.grid {
		require.Len(t, row, 10)
	}
	_, err := board.AllShipsSunk()
	require.ErrorIs(t, err, ErrNoShipsPlaced)
}

func TestPlaceShipValid(t *testing.T) {
	tests := []struct {
		name        string
		row, col    int
		length      int
		orientation Orientation
		want        []Coord
	}{
		{"horizontal", 1, 2, 2, Horizontal, []Coord{{1, 2}, {1, 3}}},
		{"vertical", 5, 7, 2, Vertical, []Coord{{5, 7}, {6, 7}}},
		{"single cell", 9, 9, 1, Vertical, []Coord{{9, 9}}},
		{"touching right edge", 0, 5, 5, Horizontal, []Coord{{0, 5}, {0, 6}, {0, 7}, {0, 8}, {0, 9}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := NewBoard()
			ship := NewShip("boat", tt.length)
			require.NoError(t, board.PlaceShip(tt.row, tt.col, ship, tt.orientation))
			require.Equal(t, tt.want, ship.Cells())
			require.Equal(t, tt.orientation, ship.Orientation())
			require.Equal(t, NewCoord(tt.row, tt.col), ship.Anchor())
			for _, c := range tt.want {
				require.Same(t, ship, board.ShipAt(c))
				require.True(t, board.IsOccupied(c))
			}
			require.Equal(t, tt.want, board.Occupied())
			got, ok := board.Fleet().Get("boat")
			require.True(t, ok)
			require.Same(t, ship, got)
			require.Empty(t, board.Hits())
			require.Empty(t, board.Misses())
		})
	}
}

func TestPlaceShipInvalid(t *testing.T) {
	tests := []struct {
		name        string
		row, col    int
		length      int
		orientation Orientation
		want        error
	}{
		{"negative row", -1, 5, 3, Horizontal, ErrOutOfBounds},
		{"negative col", 5, -2, 3, Horizontal, ErrOutOfBounds},
		{"row past edge", 10, 0, 3, Horizontal, ErrOutOfBounds},
		{"col past edge", 0, 10, 3, Vertical, ErrOutOfBounds},
		{"unknown orientation", 9, 1, 3, Orientation("up"), ErrInvalidOrientation},
		{"horizontal overflow", 1, 9, 3, Horizontal, ErrBoundaryExceeded},
		{"vertical overflow", 9, 1, 3, Vertical, ErrBoundaryExceeded},
		{"longer than board", 0, 0, 11, Vertical, ErrBoundaryExceeded},
		{"huge ship", 0, 0, int(^uint(0) >> 2), Horizontal, ErrBoundaryExceeded},
		{"huge ship off the last column", 0, 9, int(^uint(0) >> 1), Horizontal, ErrBoundaryExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := NewBoard()
			ship := NewShip("destroyer", tt.length)
			require.ErrorIs(t, board.PlaceShip(tt.row, tt.col, ship, tt.orientation), tt.want)
			require.False(t, ship.IsPlaced())
			require.Empty(t, board.Occupied())
			require.Zero(t, board.Fleet().Len())
		})
	}
}

func TestPlaceShipRejectsNilShip(t *testing.T) {
	require.ErrorIs(t, NewBoard().PlaceShip(0, 0, nil, Horizontal), ErrInvalidShip)
	require.ErrorIs(t, NewBoard().PlaceShip(0, 0, NewShip("ghost", 0), Horizontal), ErrInvalidShip)
}

func TestPlaceShipRejectsOverlapAndAdjacency(t *testing.T) {
	tests := []struct {
		name        string
		row, col    int
		orientation Orientation
	}{
		{"overlap", 3, 5, Horizontal},
		{"touching end", 3, 7, Horizontal},
		{"touching start", 3, 2, Horizontal},
		{"above", 2, 4, Horizontal},
		{"below", 4, 4, Vertical},
		{"diagonal top left", 1, 3, Vertical},
		{"diagonal bottom right", 4, 7, Horizontal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := NewBoard()
			require.NoError(t, board.PlaceShip(3, 4, NewShip("destroyer", 3), Horizontal))
			before := board.Snapshot()

			other := NewShip("submarine", 2)
			require.ErrorIs(t, board.PlaceShip(tt.row, tt.col, other, tt.orientation), ErrOverlapOrAdjacent)
			require.False(t, other.IsPlaced())
			require.Equal(t, before, board.Snapshot())
		})
	}
}

func TestPlaceShipWithOneCellGap(t *testing.T) {
	board := NewBoard()
	require.NoError(t, board.PlaceShip(3, 4, NewShip("destroyer", 3), Horizontal))
	require.NoError(t, board.PlaceShip(5, 4, NewShip("submarine", 2), Horizontal))
	require.NoError(t, board.PlaceShip(3, 8, NewShip("patrolBoat", 1), Horizontal))
	require.Len(t, board.Occupied(), 6)
}

func TestReplacingShipMovesIt(t *testing.T) {
	board := NewBoard()
	ship := NewShip("destroyer", 3)
	require.NoError(t, board.PlaceShip(0, 0, ship, Horizontal))
	require.NoError(t, board.PlaceShip(0, 1, ship, Vertical))

	require.Nil(t, board.ShipAt(NewCoord(0, 0)))
	require.Nil(t, board.ShipAt(NewCoord(0, 2)))
	require.Equal(t, []Coord{{0, 1}, {1, 1}, {2, 1}}, board.Occupied())
	require.Equal(t, 1, board.Fleet().Len())
}

func TestRotateShip(t *testing.T) {
	board := NewBoard()
	ship := NewShip("destroyer", 3)
	require.NoError(t, board.PlaceShip(4, 3, ship, Horizontal))

	require.NoError(t, board.RotateShip("destroyer"))
	require.Equal(t, Vertical, ship.Orientation())
	require.Equal(t, []Coord{{3, 4}, {4, 4}, {5, 4}}, ship.Cells())
	require.Equal(t, []Coord{{3, 4}, {4, 4}, {5, 4}}, board.Occupied())

	require.NoError(t, board.RotateShip("destroyer"))
	require.Equal(t, []Coord{{4, 3}, {4, 4}, {4, 5}}, board.Occupied())
}

func TestRotateShipRollsBackOnFailure(t *testing.T) {
	t.Run("off the board", func(t *testing.T) {
		board := NewBoard()
		ship := NewShip("carrier", 5)
		require.NoError(t, board.PlaceShip(0, 0, ship, Horizontal))
		before := board.Snapshot()

		require.ErrorIs(t, board.RotateShip("carrier"), ErrOutOfBounds)
		require.Equal(t, Horizontal, ship.Orientation())
		require.Equal(t, NewCoord(0, 0), ship.Anchor())
		require.Equal(t, before, board.Snapshot())
	})
	t.Run("next to another ship", func(t *testing.T) {
		board := NewBoard()
		ship := NewShip("destroyer", 3)
		require.NoError(t, board.PlaceShip(4, 3, ship, Horizontal))
		require.NoError(t, board.PlaceShip(2, 4, NewShip("patrolBoat", 1), Horizontal))
		before := board.Snapshot()

		require.ErrorIs(t, board.RotateShip("destroyer"), ErrOverlapOrAdjacent)
		require.Equal(t, before, board.Snapshot())
	})
	t.Run("unknown or unplaced", func(t *testing.T) {
		board := NewBoard()
		require.ErrorIs(t, board.RotateShip("carrier"), ErrUnknownShip)

		fleet, err := CreateFleet(StandardFleet)
		require.NoError(t, err)
		board.SetFleet(fleet)
		require.ErrorIs(t, board.RotateShip("carrier"), ErrShipNotPlaced)
	})
}

func TestReceiveAttack(t *testing.T) {
	board := NewBoard()
	ship := NewShip("battleship", 4)
	require.NoError(t, board.PlaceShip(3, 4, ship, Vertical))

	result, err := board.ReceiveAttack(6, 4)
	require.NoError(t, err)
	require.Equal(t, Hit, result)
	require.Equal(t, 1, ship.Hits())
	require.True(t, board.IsHit(NewCoord(6, 4)))

	result, err = board.ReceiveAttack(0, 0)
	require.NoError(t, err)
	require.Equal(t, Miss, result)
	require.True(t, board.IsMiss(NewCoord(0, 0)))

	_, err = board.ReceiveAttack(6, 4)
	require.ErrorIs(t, err, ErrAlreadyAttacked)
	_, err = board.ReceiveAttack(0, 0)
	require.ErrorIs(t, err, ErrAlreadyAttacked)
	require.Equal(t, 1, ship.Hits())

	_, err = board.ReceiveAttack(10, 0)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestHitMarksOnlyDiagonals(t *testing.T) {
	board := NewBoard()
	require.NoError(t, board.PlaceShip(4, 3, NewShip("destroyer", 3), Horizontal))

	_, err := board.ReceiveAttack(4, 4)
	require.NoError(t, err)
	require.Equal(t, []Coord{{3, 3}, {3, 5}, {5, 3}, {5, 5}}, board.Misses())
	for _, c := range NewCoord(4, 4).Orthogonal() {
		require.False(t, board.IsAttacked(c))
	}
}

func TestHitDiagonalsSkipEdgesAndKnownCells(t *testing.T) {
	board := NewBoard()
	require.NoError(t, board.PlaceShip(0, 0, NewShip("submarine", 2), Vertical))
	_, err := board.ReceiveAttack(1, 1)
	require.NoError(t, err)

	_, err = board.ReceiveAttack(0, 0)
	require.NoError(t, err)
	// (1,1) was already a plain miss and the other diagonals are off the board.
	require.Equal(t, []Coord{{1, 1}}, board.Misses())
}

func TestSinkingRevealsPerimeter(t *testing.T) {
	board := NewBoard()
	ship := NewShip("destroyer", 3)
	require.NoError(t, board.PlaceShip(2, 2, ship, Horizontal))

	for _, col := range []int{2, 3, 4} {
		result, err := board.ReceiveAttack(2, col)
		require.NoError(t, err)
		require.Equal(t, Hit, result)
	}
	require.True(t, ship.IsSunk())

	want := []Coord{
		{1, 1}, {1, 2}, {1, 3}, {1, 4}, {1, 5},
		{2, 1}, {2, 5},
		{3, 1}, {3, 2}, {3, 3}, {3, 4}, {3, 5},
	}
	require.Equal(t, want, board.Misses())
	require.Equal(t, []Coord{{2, 2}, {2, 3}, {2, 4}}, board.Hits())
}

func TestSinkingAtCornerStaysInBounds(t *testing.T) {
	board := NewBoard()
	require.NoError(t, board.PlaceShip(9, 9, NewShip("patrolBoat", 1), Horizontal))
	_, err := board.ReceiveAttack(9, 9)
	require.NoError(t, err)
	require.Equal(t, []Coord{{8, 8}, {8, 9}, {9, 8}}, board.Misses())
}

func TestAllShipsSunk(t *testing.T) {
	board := NewBoard()
	require.NoError(t, board.PlaceShip(8, 0, NewShip("submarine", 2), Vertical))
	require.NoError(t, board.PlaceShip(5, 5, NewShip("patrolBoat", 1), Horizontal))

	sunk, err := board.AllShipsSunk()
	require.NoError(t, err)
	require.False(t, sunk)

	for _, c := range []Coord{{8, 0}, {5, 5}} {
		_, err := board.ReceiveAttack(c.Row, c.Col)
		require.NoError(t, err)
		sunk, err = board.AllShipsSunk()
		require.NoError(t, err)
		require.False(t, sunk)
	}

	_, err = board.ReceiveAttack(9, 0)
	require.NoError(t, err)
	sunk, err = board.AllShipsSunk()
	require.NoError(t, err)
	require.True(t, sunk)

	_, err = board.ReceiveAttack(0, 9)
	require.NoError(t, err)
	sunk, err = board.AllShipsSunk()
	require.NoError(t, err)
	require.True(t, sunk)
}

func TestAllShipsSunkCountsUnplacedFleetShips(t *testing.T) {
	board := NewBoard()
	fleet, err := CreateFleet([]ShipSpec{{Type: "submarine", Length: 2}, {Type: "patrolBoat", Length: 1}})
	require.NoError(t, err)
	board.SetFleet(fleet)
	boat, _ := fleet.Get("patrolBoat")
	require.NoError(t, board.PlaceShip(0, 0, boat, Horizontal))

	_, err = board.ReceiveAttack(0, 0)
	require.NoError(t, err)
	sunk, err := board.AllShipsSunk()
	require.NoError(t, err)
	require.False(t, sunk)
	require.Equal(t, []int{2}, board.RemainingShipLengths())
}

func TestResetThenReplaceMatchesFreshBoard(t *testing.T) {
	place := func(board *Board) {
		fleet, err := CreateFleet(StandardFleet)
		require.NoError(t, err)
		board.SetFleet(fleet)
		layout := []struct {
			row, col    int
			orientation Orientation
		}{
			{0, 0, Horizontal},
			{2, 0, Vertical},
			{2, 2, Horizontal},
			{9, 8, Horizontal},
			{6, 6, Vertical},
		}
		for i, ship := range fleet.Ships() {
			l := layout[i]
			require.NoError(t, board.PlaceShip(l.row, l.col, ship, l.orientation))
		}
	}

	used := NewBoard()
	place(used)
	_, err := used.ReceiveAttack(0, 0)
	require.NoError(t, err)
	_, err = used.ReceiveAttack(5, 5)
	require.NoError(t, err)

	used.Reset()
	require.Empty(t, used.Occupied())
	require.Empty(t, used.Hits())
	require.Empty(t, used.Misses())
	require.Zero(t, used.Fleet().Len())
	place(used)

	fresh := NewBoard()
	place(fresh)
	require.Equal(t, fresh.Snapshot(), used.Snapshot())
	require.Equal(t, fresh.Occupied(), used.Occupied())
}

func TestSnapshotIsACopy(t *testing.T) {
	board := NewBoard()
	require.NoError(t, board.PlaceShip(0, 0, NewShip("patrolBoat", 1), Horizontal))
	snap := board.Snapshot()
	require.Equal(t, "patrolBoat", snap.Grid[0][0])

	snap.Grid[0][0] = ""
	require.Same(t, board.ShipAt(NewCoord(0, 0)), board.Fleet().Ships()[0])
	require.Equal(t, "patrolBoat", board.Snapshot().Grid[0][0])

	_, err := board.ReceiveAttack(0, 0)
	require.NoError(t, err)
	snap = board.Snapshot()
	require.True(t, snap.IsHit(NewCoord(0, 0)))
	require.True(t, snap.IsMiss(NewCoord(1, 1)))
	require.Equal(t, []string{"patrolBoat"}, snap.Sunk)
}

func TestMaskedSnapshotShowsOnlyHitShips(t *testing.T) {
	board := NewBoard()
	require.NoError(t, board.PlaceShip(0, 0, NewShip("destroyer", 2), Horizontal))
	require.NoError(t, board.PlaceShip(5, 5, NewShip("patrolBoat", 1), Horizontal))
	_, err := board.ReceiveAttack(0, 1)
	require.NoError(t, err)

	snap := board.Snapshot()
	masked := snap.Masked()
	require.Equal(t, "", masked.Grid[0][0])
	require.Equal(t, "destroyer", masked.Grid[0][1])
	require.Equal(t, "", masked.Grid[5][5])
	require.Equal(t, "patrolBoat", snap.Grid[5][5])
	require.Equal(t, snap.Hits, masked.Hits)
	require.False(t, masked.IsSunk("destroyer"))
}

func TestOffBoardCellsAreNeverMarked(t *testing.T) {
	board := NewBoard()
	require.NoError(t, board.PlaceShip(0, 9, NewShip("patrolBoat", 1), Horizontal))
	_, err := board.ReceiveAttack(0, 9)
	require.NoError(t, err)

	for _, c := range []Coord{{Row: 1, Col: -1}, {Row: -1, Col: 9}, {Row: 0, Col: 10}, {Row: 10, Col: 0}} {
		require.False(t, board.IsHit(c), c)
		require.False(t, board.IsMiss(c), c)
		require.False(t, board.IsAttacked(c), c)
		require.False(t, board.IsOccupied(c), c)
		require.Nil(t, board.ShipAt(c), c)
	}
	require.True(t, board.IsHit(NewCoord(0, 9)))
}

func TestCellSetIgnoresOffBoardCells(t *testing.T) {
	set := newCellSet(BoardSize)
	set.add(NewCoord(1, -1))
	set.add(NewCoord(-1, 0))
	require.Zero(t, set.len())

	set.add(NewCoord(0, 9))
	set.remove(NewCoord(1, -1))
	require.True(t, set.has(NewCoord(0, 9)))
	require.False(t, set.has(NewCoord(1, -1)))
	require.Equal(t, []Coord{{Row: 0, Col: 9}}, set.coords())
}
