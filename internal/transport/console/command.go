package console

import (
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/battleship/internal/domain"
	"github.com/pkg/errors"
)

type CommandType string

const (
	PlaceCommand  = CommandType("place")
	RotateCommand = CommandType("rotate")
	AutoCommand   = CommandType("auto")
	StartCommand  = CommandType("start")
	AttackCommand = CommandType("attack")
	ResetCommand  = CommandType("reset")
	NewCommand    = CommandType("new")
	ShowCommand   = CommandType("show")
	SeatCommand   = CommandType("as")
	HelpCommand   = CommandType("help")
	QuitCommand   = CommandType("quit")
)

// Command is one UI intent. Payload is left loosely typed so that JSON input
// and parsed text share the same decoding path.
type Command struct {
	Type    CommandType     `json:"type"`
	Player  domain.PlayerID `json:"player,omitempty"`
	Payload any             `json:"payload,omitempty"`
}

// jsonCommand is the wire form of Command; the payload stays raw until a
// handler knows its type.
type jsonCommand struct {
	Type    CommandType         `json:"type"`
	Player  domain.PlayerID     `json:"player,omitempty"`
	Payload jsoniter.RawMessage `json:"payload,omitempty"`
}

type PlacePayload struct {
	Ship        string             `json:"ship"`
	Row         int                `json:"row"`
	Col         int                `json:"col"`
	Orientation domain.Orientation `json:"orientation"`
}

type RotatePayload struct {
	Ship string `json:"ship"`
}

type AttackPayload struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

const helpText = `Commands:
  place <ship> <row> <col> <h|v>   put a ship on your board
  rotate <ship>                    turn a placed ship around its middle
  auto                             place your whole fleet randomly
  start                            begin the battle
  fire <row> <col>                 shoot at the enemy board
  show                             draw the boards
  as <player>                      place ships for another seat (hot seat)
  reset                            start the placement over
  new                              open a new game
  quit                             leave
JSON lines like {"type":"attack","payload":{"row":1,"col":2}} work too.`

var aliases = map[string]CommandType{
	"fire":      AttackCommand,
	"shoot":     AttackCommand,
	"randomize": AutoCommand,
	"board":     ShowCommand,
	"exit":      QuitCommand,
	"?":         HelpCommand,
}

func parseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "{") {
		var msg jsonCommand
		if err := jsoniter.UnmarshalFromString(line, &msg); err != nil {
			return Command{}, errors.WithMessage(err, "decode json command")
		}
		cmd := Command{Type: msg.Type, Player: msg.Player}
		if len(msg.Payload) > 0 {
			cmd.Payload = msg.Payload
		}
		return cmd, nil
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, errUnknownCommand
	}
	name := strings.ToLower(fields[0])
	cmdType, ok := aliases[name]
	if !ok {
		cmdType = CommandType(name)
	}
	args := fields[1:]
	cmd := Command{Type: cmdType}
	switch cmdType {
	case PlaceCommand:
		if len(args) != 4 {
			return Command{}, errors.WithMessage(errBadArguments, "usage: place <ship> <row> <col> <h|v>")
		}
		row, col, err := parseCell(args[1], args[2])
		if err != nil {
			return Command{}, err
		}
		cmd.Payload = PlacePayload{
			Ship:        args[0],
			Row:         row,
			Col:         col,
			Orientation: parseOrientation(args[3]),
		}
	case RotateCommand:
		if len(args) != 1 {
			return Command{}, errors.WithMessage(errBadArguments, "usage: rotate <ship>")
		}
		cmd.Payload = RotatePayload{Ship: args[0]}
	case AttackCommand:
		if len(args) != 2 {
			return Command{}, errors.WithMessage(errBadArguments, "usage: fire <row> <col>")
		}
		row, col, err := parseCell(args[0], args[1])
		if err != nil {
			return Command{}, err
		}
		cmd.Payload = AttackPayload{Row: row, Col: col}
	case SeatCommand:
		if len(args) != 1 {
			return Command{}, errors.WithMessage(errBadArguments, "usage: as <player>")
		}
		cmd.Player = domain.PlayerID(args[0])
	case AutoCommand, StartCommand, ResetCommand, NewCommand, ShowCommand, HelpCommand, QuitCommand:
		if len(args) != 0 {
			return Command{}, errors.WithMessagef(errBadArguments, "'%s' takes no arguments", cmdType)
		}
	default:
		return Command{}, errors.WithMessagef(errUnknownCommand, "'%s'", name)
	}
	return cmd, nil
}

func parseCell(rowArg, colArg string) (int, int, error) {
	row, err := strconv.Atoi(rowArg)
	if err != nil {
		return 0, 0, errors.WithMessagef(errBadArguments, "row '%s' is not a number", rowArg)
	}
	col, err := strconv.Atoi(colArg)
	if err != nil {
		return 0, 0, errors.WithMessagef(errBadArguments, "column '%s' is not a number", colArg)
	}
	return row, col, nil
}

// parseOrientation accepts the one-letter shorthands. Anything else is passed
// through for the board to reject.
func parseOrientation(arg string) domain.Orientation {
	switch strings.ToLower(arg) {
	case "h":
		return domain.Horizontal
	case "v":
		return domain.Vertical
	default:
		return domain.Orientation(strings.ToLower(arg))
	}
}
