package render

import (
	"fmt"
	"io"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/battleship/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	boardsLineType  = "boards"
	messageLineType = "message"
	errorLineType   = "error"
)

type boardsLine struct {
	Type     string          `json:"type"`
	GameID   string          `json:"game_id"`
	Status   string          `json:"status"`
	Turn     domain.PlayerID `json:"turn,omitempty"`
	GameOver bool            `json:"game_over"`
	Winner   domain.PlayerID `json:"winner,omitempty"`
	Boards   []playerBoard   `json:"boards"`
}

type playerBoard struct {
	Player domain.PlayerID      `json:"player"`
	Name   string               `json:"name"`
	Board  domain.BoardSnapshot `json:"board"`
}

type textLine struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// jsonRenderer writes one JSON document per line: events as they happen and
// board views on request. Computer seats are masked until the game is over.
type jsonRenderer struct {
	enc    *jsoniter.Encoder
	mu     sync.Mutex
	logger *zap.Logger
}

func NewJSON(out io.Writer, logger *zap.Logger) *jsonRenderer {
	return &jsonRenderer{
		enc:    jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(out),
		logger: logger,
	}
}

func (r *jsonRenderer) Notify(e domain.Event) {
	if err := r.encode(e); err != nil {
		r.logger.Error("encode event", zap.Stringer("type", e.Type), zap.Error(err))
	}
}

func (r *jsonRenderer) Boards(game domain.GameUseCase) error {
	state := game.State()
	line := boardsLine{
		Type:     boardsLineType,
		GameID:   game.ID(),
		Status:   state.Status.String(),
		Turn:     state.CurrentTurn,
		GameOver: state.IsGameOver,
		Winner:   state.Winner,
	}
	for _, player := range game.Players() {
		snap, err := game.Snapshot(player.ID())
		if err != nil {
			return errors.WithMessagef(err, "snapshot board of '%s'", player.ID())
		}
		if player.IsComputer() && !state.IsGameOver {
			snap = snap.Masked()
		}
		line.Boards = append(line.Boards, playerBoard{
			Player: player.ID(),
			Name:   player.Name(),
			Board:  snap,
		})
	}
	return r.encode(line)
}

func (r *jsonRenderer) Message(format string, args ...any) {
	if err := r.encode(textLine{Type: messageLineType, Message: fmt.Sprintf(format, args...)}); err != nil {
		r.logger.Error("encode message", zap.Error(err))
	}
}

func (r *jsonRenderer) Error(err error) {
	if encErr := r.encode(textLine{Type: errorLineType, Message: err.Error()}); encErr != nil {
		r.logger.Error("encode error", zap.Error(encErr))
	}
}

func (r *jsonRenderer) encode(v any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return errors.WithMessage(r.enc.Encode(v), "encode json line")
}
