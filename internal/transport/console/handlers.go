package console

import (
	"github.com/kiryu-dev/battleship/internal/domain"
	"github.com/kiryu-dev/battleship/pkg/utils"
	"github.com/pkg/errors"
)

func (s *server) handle(cmd Command) (quit bool, err error) {
	switch cmd.Type {
	case PlaceCommand:
		return false, s.handlePlace(cmd)
	case RotateCommand:
		return false, s.handleRotate(cmd)
	case AutoCommand:
		if err := s.game.RequestAutoPlace(s.actor(cmd)); err != nil {
			return false, err
		}
		return false, s.render.Boards(s.game)
	case StartCommand:
		return false, s.game.Start()
	case AttackCommand:
		return false, s.handleAttack(cmd)
	case ResetCommand:
		if err := s.game.RequestReset(); err != nil {
			return false, err
		}
		s.render.Message("Placement started over.")
		return false, s.render.Boards(s.game)
	case NewCommand:
		if err := s.newGame(); err != nil {
			return false, err
		}
		s.render.Message("New game %s.", s.game.ID())
		return false, s.render.Boards(s.game)
	case ShowCommand:
		return false, s.render.Boards(s.game)
	case SeatCommand:
		return false, s.handleSeat(cmd)
	case HelpCommand:
		s.render.Message(helpText)
		return false, nil
	case QuitCommand:
		return true, nil
	default:
		return false, errors.WithMessagef(errUnknownCommand, "'%s'", cmd.Type)
	}
}

func (s *server) handlePlace(cmd Command) error {
	v, err := utils.UnmarshalJson[PlacePayload](cmd.Payload)
	if err != nil {
		return errors.WithMessage(err, "unmarshal json to 'PlacePayload' type")
	}
	if err := s.game.RequestPlaceShip(s.actor(cmd), v.Ship, v.Row, v.Col, v.Orientation); err != nil {
		return err
	}
	return s.render.Boards(s.game)
}

func (s *server) handleRotate(cmd Command) error {
	v, err := utils.UnmarshalJson[RotatePayload](cmd.Payload)
	if err != nil {
		return errors.WithMessage(err, "unmarshal json to 'RotatePayload' type")
	}
	if err := s.game.RequestRotateShip(s.actor(cmd), v.Ship); err != nil {
		return err
	}
	return s.render.Boards(s.game)
}

func (s *server) handleAttack(cmd Command) error {
	v, err := utils.UnmarshalJson[AttackPayload](cmd.Payload)
	if err != nil {
		return errors.WithMessage(err, "unmarshal json to 'AttackPayload' type")
	}
	outcome := s.game.RequestAttack(s.actor(cmd), v.Row, v.Col)
	if !outcome.Success {
		return outcome.Reason
	}
	return nil
}

func (s *server) handleSeat(cmd Command) error {
	for _, player := range s.game.Players() {
		if player.ID() != cmd.Player {
			continue
		}
		if player.IsComputer() {
			return errors.WithMessagef(errBadArguments, "'%s' is computer controlled", cmd.Player)
		}
		s.placing = cmd.Player
		s.render.Message("Placing ships as %s.", player.Name())
		return nil
	}
	return errors.WithMessagef(domain.ErrUnknownPlayer, "'%s'", cmd.Player)
}

// actor picks the seat a command acts for: the one named in the command, the
// fixed seat, the seat holding the turn, the seat chosen with 'as', then the
// first human seat.
func (s *server) actor(cmd Command) domain.PlayerID {
	if cmd.Player != "" {
		return cmd.Player
	}
	if s.seat != "" {
		return s.seat
	}
	if state := s.game.State(); state.Status == domain.InProgress {
		return state.CurrentTurn
	}
	if s.placing != "" {
		return s.placing
	}
	for _, player := range s.game.Players() {
		if !player.IsComputer() {
			return player.ID()
		}
	}
	return domain.Player1
}
