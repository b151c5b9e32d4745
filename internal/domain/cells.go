package domain

import (
	"sort"

	"github.com/dolthub/swiss"
)

type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewCoord(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

func (c Coord) Add(dr, dc int) Coord {
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

func (c Coord) In(size int) bool {
	return c.Row >= 0 && c.Row < size && c.Col >= 0 && c.Col < size
}

// Orthogonal returns the left, right, up and down neighbours in that order.
func (c Coord) Orthogonal() [4]Coord {
	return [4]Coord{c.Add(0, -1), c.Add(0, 1), c.Add(-1, 0), c.Add(1, 0)}
}

func (c Coord) Diagonal() [4]Coord {
	return [4]Coord{c.Add(-1, -1), c.Add(-1, 1), c.Add(1, -1), c.Add(1, 1)}
}

type Orientation string

const (
	Horizontal = Orientation("horizontal")
	Vertical   = Orientation("vertical")
)

func (o Orientation) Valid() bool {
	return o == Horizontal || o == Vertical
}

func (o Orientation) Flip() Orientation {
	if o == Horizontal {
		return Vertical
	}
	return Horizontal
}

// step is the unit offset between consecutive segments: horizontal ships
// extend along columns, vertical ones along rows.
func (o Orientation) step() (dr, dc int) {
	if o == Vertical {
		return 1, 0
	}
	return 0, 1
}

// cellSet is a set of board cells keyed by the linearized index row*size+col.
// Cells off the board are never members.
type cellSet struct {
	size int
	m    *swiss.Map[int, struct{}]
}

func newCellSet(size int) cellSet {
	return cellSet{
		size: size,
		m:    swiss.NewMap[int, struct{}](uint32(size * size / 4)),
	}
}

func (s cellSet) key(c Coord) int {
	return c.Row*s.size + c.Col
}

func (s cellSet) has(c Coord) bool {
	return c.In(s.size) && s.m.Has(s.key(c))
}

func (s cellSet) add(c Coord) {
	if !c.In(s.size) {
		return
	}
	s.m.Put(s.key(c), struct{}{})
}

func (s cellSet) remove(c Coord) {
	if !c.In(s.size) {
		return
	}
	s.m.Delete(s.key(c))
}

func (s cellSet) len() int {
	return s.m.Count()
}

// coords returns the members in row-major order.
func (s cellSet) coords() []Coord {
	keys := make([]int, 0, s.m.Count())
	s.m.Iter(func(k int, _ struct{}) bool {
		keys = append(keys, k)
		return false
	})
	sort.Ints(keys)
	result := make([]Coord, len(keys))
	for i, k := range keys {
		result[i] = Coord{Row: k / s.size, Col: k % s.size}
	}
	return result
}
