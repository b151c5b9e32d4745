package render

import (
	"bytes"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/battleship/internal/domain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeGame struct {
	domain.GameUseCase
	id      string
	players []*domain.Player
	state   domain.GameState
}

func (g *fakeGame) ID() string {
	return g.id
}

func (g *fakeGame) Players() []*domain.Player {
	return g.players
}

func (g *fakeGame) State() domain.GameState {
	return g.state
}

func (g *fakeGame) Snapshot(id domain.PlayerID) (domain.BoardSnapshot, error) {
	for _, player := range g.players {
		if player.ID() == id {
			return player.Board().Snapshot(), nil
		}
	}
	return domain.BoardSnapshot{}, domain.ErrUnknownPlayer
}

type lookup map[string]domain.GameUseCase

func (l lookup) Get(id string) (domain.GameUseCase, error) {
	game, ok := l[id]
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	return game, nil
}

// newFakeGame has the human's patrol boat at (0,0) and the computer's patrol
// boat at (2,2) plus a destroyer at (5,5)-(5,6) that has been hit once.
func newFakeGame(t *testing.T) *fakeGame {
	human := domain.NewPlayer(domain.Player1, "You", false)
	computer := domain.NewPlayer(domain.Player2, "Computer", true)
	require.NoError(t, human.Board().PlaceShip(0, 0, domain.NewShip("patrolBoat", 1), domain.Horizontal))
	require.NoError(t, computer.Board().PlaceShip(2, 2, domain.NewShip("patrolBoat", 1), domain.Horizontal))
	require.NoError(t, computer.Board().PlaceShip(5, 5, domain.NewShip("destroyer", 2), domain.Horizontal))
	_, err := computer.Board().ReceiveAttack(5, 5)
	require.NoError(t, err)
	return &fakeGame{
		id:      "game",
		players: []*domain.Player{human, computer},
		state:   domain.GameState{CurrentTurn: domain.Player1, Status: domain.InProgress},
	}
}

func TestWriteBoard(t *testing.T) {
	snap := domain.BoardSnapshot{
		Size: 3,
		Grid: [][]string{
			{"a", "", ""},
			{"", "", ""},
			{"", "", "b"},
		},
		Hits:   []domain.Coord{{Row: 0, Col: 0}},
		Misses: []domain.Coord{{Row: 1, Col: 1}},
		Sunk:   []string{"a"},
	}
	var sb strings.Builder
	WriteBoard(&sb, "t", snap)
	require.Equal(t, "t\n   0 1 2\n 0 # . .\n 1 . * .\n 2 . . O\n", sb.String())
}

func TestTextBoardsHideEnemyShips(t *testing.T) {
	game := newFakeGame(t)
	var out bytes.Buffer
	r := NewText(&out, lookup{game.id: game}, domain.Player1, zaptest.NewLogger(t))
	require.NoError(t, r.Boards(game))

	own, enemy, ok := strings.Cut(out.String(), "Computer\n")
	require.True(t, ok)
	require.True(t, strings.HasPrefix(own, "You\n"))
	require.Contains(t, own, " 0 O .")
	require.NotContains(t, enemy, "O")
	require.Contains(t, enemy, " 5 . . . . . X . . . .")
}

func TestTextGameOverRevealsEnemy(t *testing.T) {
	game := newFakeGame(t)
	var out bytes.Buffer
	r := NewText(&out, lookup{game.id: game}, domain.Player1, zaptest.NewLogger(t))
	r.Notify(domain.Event{
		Type:    domain.GameOver,
		GameID:  game.id,
		Payload: domain.GameOverPayload{Winner: domain.Player2},
	})

	text := out.String()
	require.True(t, strings.HasPrefix(text, "Game over, Computer wins!\n"))
	_, enemy, ok := strings.Cut(text, "Computer\n")
	require.True(t, ok)
	require.Contains(t, enemy, " 2 . . O")
}

func TestTextEventMessages(t *testing.T) {
	game := newFakeGame(t)
	var out bytes.Buffer
	r := NewText(&out, lookup{game.id: game}, domain.Player1, zaptest.NewLogger(t))

	r.Notify(domain.Event{
		Type:   domain.AttackResolved,
		GameID: game.id,
		Payload: domain.AttackResolvedPayload{
			Attacker: domain.Player1,
			Defender: domain.Player2,
			Row:      2,
			Col:      2,
			Result:   domain.Hit,
			SunkShip: "patrolBoat",
		},
	})
	r.Notify(domain.Event{
		Type:    domain.TurnChanged,
		GameID:  game.id,
		Payload: domain.TurnChangedPayload{CurrentPlayer: domain.Player2},
	})
	r.Notify(domain.Event{
		Type:    domain.PlacementRejected,
		GameID:  game.id,
		Payload: domain.PlacementRejectedPayload{Player: domain.Player1, ShipType: "carrier", Reason: "nope"},
	})
	r.Notify(domain.Event{Type: domain.GameStarted, GameID: "other"})
	r.Error(errors.New("bad command"))

	require.Equal(t, "You: shot at 2 2, hit, patrolBoat sunk.\n"+
		"Cannot place carrier: nope\n"+
		"Error: bad command\n", out.String())
}

func TestJSONLines(t *testing.T) {
	game := newFakeGame(t)
	var out bytes.Buffer
	r := NewJSON(&out, zaptest.NewLogger(t))

	r.Notify(domain.Event{
		Type:   domain.AttackResolved,
		GameID: game.id,
		Payload: domain.AttackResolvedPayload{
			Attacker: domain.Player1,
			Defender: domain.Player2,
			Row:      5,
			Col:      5,
			Result:   domain.Hit,
		},
	})
	require.NoError(t, r.Boards(game))
	r.Error(errors.New("bad command"))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)

	var event struct {
		Type    string                       `json:"type"`
		GameID  string                       `json:"game_id"`
		Payload domain.AttackResolvedPayload `json:"payload"`
	}
	require.NoError(t, jsoniter.UnmarshalFromString(lines[0], &event))
	require.Equal(t, "attackResolved", event.Type)
	require.Equal(t, game.id, event.GameID)
	require.Equal(t, domain.Hit, event.Payload.Result)

	var boards boardsLine
	require.NoError(t, jsoniter.UnmarshalFromString(lines[1], &boards))
	require.Equal(t, "boards", boards.Type)
	require.Equal(t, "in progress", boards.Status)
	require.Len(t, boards.Boards, 2)
	require.Equal(t, "patrolBoat", boards.Boards[0].Board.Grid[0][0])
	require.Equal(t, "", boards.Boards[1].Board.Grid[2][2])
	require.Equal(t, "destroyer", boards.Boards[1].Board.Grid[5][5])

	var line textLine
	require.NoError(t, jsoniter.UnmarshalFromString(lines[2], &line))
	require.Equal(t, textLine{Type: "error", Message: "bad command"}, line)
}
