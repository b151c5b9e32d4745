package domain

import (
	"github.com/pkg/errors"
)

type ShipSpec struct {
	Type   string `yaml:"type" json:"type"`
	Length int    `yaml:"length" json:"length"`
}

// StandardFleet is the classic five ship line-up, largest first.
var StandardFleet = []ShipSpec{
	{Type: "carrier", Length: 5},
	{Type: "battleship", Length: 4},
	{Type: "destroyer", Length: 3},
	{Type: "submarine", Length: 2},
	{Type: "patrolBoat", Length: 1},
}

// Fleet maps ship types to ships and remembers the order they were added in.
type Fleet struct {
	order []string
	ships map[string]*Ship
}

func NewFleet() *Fleet {
	return &Fleet{ships: make(map[string]*Ship)}
}

// CreateFleet builds fresh, unplaced ships from an ordered configuration.
func CreateFleet(specs []ShipSpec) (*Fleet, error) {
	fleet := NewFleet()
	for _, spec := range specs {
		if spec.Type == "" || spec.Length < 1 {
			return nil, errors.WithMessagef(ErrInvalidFleet, "ship '%s' with length %d", spec.Type, spec.Length)
		}
		if _, ok := fleet.ships[spec.Type]; ok {
			return nil, errors.WithMessagef(ErrInvalidFleet, "duplicate ship type '%s'", spec.Type)
		}
		fleet.put(NewShip(spec.Type, spec.Length))
	}
	return fleet, nil
}

func (f *Fleet) Get(shipType string) (*Ship, bool) {
	ship, ok := f.ships[shipType]
	return ship, ok
}

// Ships returns the ships in fleet order.
func (f *Fleet) Ships() []*Ship {
	ships := make([]*Ship, 0, len(f.order))
	for _, shipType := range f.order {
		ships = append(ships, f.ships[shipType])
	}
	return ships
}

func (f *Fleet) Len() int {
	return len(f.order)
}

func (f *Fleet) AllPlaced() bool {
	for _, ship := range f.ships {
		if !ship.IsPlaced() {
			return false
		}
	}
	return true
}

// put registers ship in its type slot, replacing a previous occupant.
func (f *Fleet) put(ship *Ship) {
	if _, ok := f.ships[ship.Type]; !ok {
		f.order = append(f.order, ship.Type)
	}
	f.ships[ship.Type] = ship
}
