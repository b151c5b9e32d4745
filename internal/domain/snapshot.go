package domain

// BoardSnapshot is a read-only copy of a board for renderers. Grid cells hold
// the type of the occupying ship or an empty string.
type BoardSnapshot struct {
	Size   int        `json:"size"`
	Grid   [][]string `json:"grid"`
	Hits   []Coord    `json:"hits"`
	Misses []Coord    `json:"misses"`
	Sunk   []string   `json:"sunk"`
}

func (b *Board) Snapshot() BoardSnapshot {
	grid := make([][]string, b.size)
	for r := range grid {
		grid[r] = make([]string, b.size)
		for c, ship := range b.grid[r] {
			if ship != nil {
				grid[r][c] = ship.Type
			}
		}
	}
	var sunk []string
	for _, ship := range b.fleet.Ships() {
		if ship.IsSunk() {
			sunk = append(sunk, ship.Type)
		}
	}
	return BoardSnapshot{
		Size:   b.size,
		Grid:   grid,
		Hits:   b.hits.coords(),
		Misses: b.misses.coords(),
		Sunk:   sunk,
	}
}

func (s BoardSnapshot) IsHit(c Coord) bool {
	return containsCoord(s.Hits, c)
}

func (s BoardSnapshot) IsMiss(c Coord) bool {
	return containsCoord(s.Misses, c)
}

func containsCoord(coords []Coord, c Coord) bool {
	for _, v := range coords {
		if v == c {
			return true
		}
	}
	return false
}

// Masked returns the snapshot as the opponent sees it: ship cells are only
// kept where they have been hit.
func (s BoardSnapshot) Masked() BoardSnapshot {
	grid := make([][]string, len(s.Grid))
	for r, row := range s.Grid {
		grid[r] = make([]string, len(row))
		for c, shipType := range row {
			if shipType != "" && s.IsHit(NewCoord(r, c)) {
				grid[r][c] = shipType
			}
		}
	}
	s.Grid = grid
	return s
}

func (s BoardSnapshot) IsSunk(shipType string) bool {
	for _, v := range s.Sunk {
		if v == shipType {
			return true
		}
	}
	return false
}
