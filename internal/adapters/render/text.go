package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/kiryu-dev/battleship/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	waterCell = '.'
	shipCell  = 'O'
	hitCell   = 'X'
	sunkCell  = '#'
	missCell  = '*'
)

type GameLookup interface {
	Get(id string) (domain.GameUseCase, error)
}

// textRenderer paints boards for a terminal. The viewer's own board is shown
// in full while the opponent's only reveals what has been hit. With no fixed
// viewer the board is drawn for whoever holds the turn (hot seat).
type textRenderer struct {
	out    io.Writer
	games  GameLookup
	viewer domain.PlayerID
	mu     sync.Mutex
	logger *zap.Logger
}

func NewText(out io.Writer, games GameLookup, viewer domain.PlayerID, logger *zap.Logger) *textRenderer {
	return &textRenderer{
		out:    out,
		games:  games,
		viewer: viewer,
		logger: logger,
	}
}

func (r *textRenderer) Notify(e domain.Event) {
	game, err := r.games.Get(e.GameID)
	if err != nil {
		r.logger.Warn("event from unknown game", zap.String("game uuid", e.GameID), zap.Error(err))
		return
	}
	switch payload := e.Payload.(type) {
	case domain.GameStartedPayload:
		r.Message("Game started, %s goes first.", playerName(game, payload.StartingPlayer))
		r.render(game, false)
	case domain.AttackResolvedPayload:
		line := fmt.Sprintf("%s: shot at %d %d, %s", playerName(game, payload.Attacker),
			payload.Row, payload.Col, payload.Result)
		if payload.SunkShip != "" {
			line += fmt.Sprintf(", %s sunk", payload.SunkShip)
		}
		r.Message("%s.", line)
	case domain.TurnChangedPayload:
		if current := playerByID(game, payload.CurrentPlayer); current != nil && !current.IsComputer() {
			r.Message("%s's turn.", current.Name())
			r.render(game, false)
		}
	case domain.GameOverPayload:
		r.Message("Game over, %s wins!", playerName(game, payload.Winner))
		r.render(game, true)
	case domain.PlacementRejectedPayload:
		r.Message("Cannot place %s: %s", payload.ShipType, payload.Reason)
	default:
		r.logger.Debug("unhandled event", zap.Stringer("type", e.Type))
	}
}

func (r *textRenderer) Boards(game domain.GameUseCase) error {
	return r.boards(game, false)
}

func (r *textRenderer) render(game domain.GameUseCase, reveal bool) {
	if err := r.boards(game, reveal); err != nil {
		r.logger.Error("render boards", zap.Error(err))
	}
}

func (r *textRenderer) boards(game domain.GameUseCase, reveal bool) error {
	own, enemy := r.perspective(game)
	ownSnap, err := game.Snapshot(own.ID())
	if err != nil {
		return errors.WithMessage(err, "snapshot own board")
	}
	enemySnap, err := game.Snapshot(enemy.ID())
	if err != nil {
		return errors.WithMessage(err, "snapshot enemy board")
	}
	if !reveal {
		enemySnap = enemySnap.Masked()
	}
	var sb strings.Builder
	WriteBoard(&sb, own.Name(), ownSnap)
	sb.WriteByte('\n')
	WriteBoard(&sb, enemy.Name(), enemySnap)
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err = io.WriteString(r.out, sb.String())
	return errors.WithMessage(err, "write boards")
}

func (r *textRenderer) perspective(game domain.GameUseCase) (*domain.Player, *domain.Player) {
	players := game.Players()
	id := r.viewer
	if id == "" {
		id = game.State().CurrentTurn
	}
	if id == "" {
		for _, player := range players {
			if !player.IsComputer() {
				id = player.ID()
				break
			}
		}
	}
	if players[1].ID() == id {
		return players[1], players[0]
	}
	return players[0], players[1]
}

func (r *textRenderer) Message(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := fmt.Fprintf(r.out, format+"\n", args...); err != nil {
		r.logger.Error("write message", zap.Error(err))
	}
}

func (r *textRenderer) Error(err error) {
	r.Message("Error: %s", err)
}

// WriteBoard draws one board with column numbers on top and row numbers on
// the left. Ship cells that are absent from the snapshot show as water.
func WriteBoard(sb *strings.Builder, title string, snap domain.BoardSnapshot) {
	sb.WriteString(title)
	sb.WriteString("\n  ")
	for c := 0; c < snap.Size; c++ {
		fmt.Fprintf(sb, " %d", c)
	}
	sb.WriteByte('\n')
	for r := 0; r < snap.Size; r++ {
		fmt.Fprintf(sb, "%2d", r)
		for c := 0; c < snap.Size; c++ {
			sb.WriteByte(' ')
			sb.WriteByte(cellRune(snap, domain.NewCoord(r, c)))
		}
		sb.WriteByte('\n')
	}
}

func cellRune(snap domain.BoardSnapshot, c domain.Coord) byte {
	shipType := snap.Grid[c.Row][c.Col]
	switch {
	case snap.IsHit(c) && snap.IsSunk(shipType):
		return sunkCell
	case snap.IsHit(c):
		return hitCell
	case snap.IsMiss(c):
		return missCell
	case shipType != "":
		return shipCell
	default:
		return waterCell
	}
}

func playerByID(game domain.GameUseCase, id domain.PlayerID) *domain.Player {
	for _, player := range game.Players() {
		if player.ID() == id {
			return player
		}
	}
	return nil
}

func playerName(game domain.GameUseCase, id domain.PlayerID) string {
	if player := playerByID(game, id); player != nil {
		return player.Name()
	}
	return string(id)
}
