package placement

import (
	"math/rand/v2"

	"github.com/kiryu-dev/battleship/internal/config"
	"github.com/kiryu-dev/battleship/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var orientations = [2]domain.Orientation{domain.Horizontal, domain.Vertical}

type useCase struct {
	rng             *rand.Rand
	attemptsPerShip int
	layoutAttempts  int
	logger          *zap.Logger
}

func New(cfg config.PlacementConfig, rng *rand.Rand, logger *zap.Logger) *useCase {
	return &useCase{
		rng:             rng,
		attemptsPerShip: cfg.AttemptsPerShip,
		layoutAttempts:  cfg.LayoutAttempts,
		logger:          logger,
	}
}

// AutoPlace resets the player's board, gives it a fresh fleet built from
// specs and scatters the ships randomly. A layout whose ship runs out of
// attempts is thrown away and started over, up to the layout limit.
func (u *useCase) AutoPlace(player *domain.Player, specs []domain.ShipSpec) error {
	board := player.Board()
	for layout := 1; layout <= u.layoutAttempts; layout++ {
		board.Reset()
		fleet, err := domain.CreateFleet(specs)
		if err != nil {
			return errors.WithMessage(err, "create fleet")
		}
		board.SetFleet(fleet)
		if ship, ok := u.placeFleet(board, fleet); !ok {
			u.logger.Warn("ship placement exhausted, retrying layout",
				zap.String("player", string(player.ID())),
				zap.String("ship", ship.Type),
				zap.Int("layout", layout))
			continue
		}
		u.logger.Debug("fleet placed",
			zap.String("player", string(player.ID())),
			zap.Int("layout", layout))
		return nil
	}
	return errors.WithMessagef(domain.ErrPlacementExhausted, "player '%s' after %d layouts",
		player.ID(), u.layoutAttempts)
}

// placeFleet returns the first ship that could not be placed.
func (u *useCase) placeFleet(board *domain.Board, fleet *domain.Fleet) (*domain.Ship, bool) {
	for _, ship := range fleet.Ships() {
		if !u.placeShip(board, ship) {
			return ship, false
		}
	}
	return nil, true
}

func (u *useCase) placeShip(board *domain.Board, ship *domain.Ship) bool {
	for attempt := 0; attempt < u.attemptsPerShip; attempt++ {
		row := u.rng.IntN(board.Size())
		col := u.rng.IntN(board.Size())
		orientation := orientations[u.rng.IntN(len(orientations))]
		if err := board.PlaceShip(row, col, ship, orientation); err == nil {
			return true
		}
	}
	return false
}
