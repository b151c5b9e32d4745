package domain

type Ship struct {
	Type        string
	Length      int
	hits        int
	orientation Orientation
	anchor      Coord
	placed      bool
}

func NewShip(shipType string, length int) *Ship {
	return &Ship{
		Type:   shipType,
		Length: length,
	}
}

// Hit registers one more hit. Over-calling keeps counting.
func (s *Ship) Hit() {
	s.hits++
}

func (s *Ship) Hits() int {
	return s.hits
}

func (s *Ship) IsSunk() bool {
	return s.hits >= s.Length
}

func (s *Ship) Orientation() Orientation {
	return s.orientation
}

func (s *Ship) Anchor() Coord {
	return s.anchor
}

func (s *Ship) IsPlaced() bool {
	return s.placed
}

// Cells returns the segments of the ship in order from its anchor, or nil if
// it has not been placed.
func (s *Ship) Cells() []Coord {
	if !s.placed {
		return nil
	}
	return segments(s.anchor, s.orientation, s.Length)
}

func (s *Ship) place(anchor Coord, orientation Orientation) {
	s.anchor = anchor
	s.orientation = orientation
	s.placed = true
}

func segments(anchor Coord, orientation Orientation, length int) []Coord {
	dr, dc := orientation.step()
	cells := make([]Coord, length)
	for i := range cells {
		cells[i] = anchor.Add(dr*i, dc*i)
	}
	return cells
}
