package console

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/kiryu-dev/battleship/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const overPollPeriod = 100 * time.Millisecond

type Renderer interface {
	Boards(game domain.GameUseCase) error
	Message(format string, args ...any)
	Error(err error)
}

type Option func(s *server)

// WithSeat fixes the seat that text commands act for. Without it commands
// act for whoever holds the turn.
func WithSeat(id domain.PlayerID) Option {
	return func(s *server) {
		s.seat = id
	}
}

// WithExitOnGameOver ends the session once the current game is over and keeps
// it alive past the end of input.
func WithExitOnGameOver() Option {
	return func(s *server) {
		s.exitOnOver = true
	}
}

// server reads commands line by line and forwards them to the current game.
type server struct {
	in         io.Reader
	hub        domain.HubUseCase
	game       domain.GameUseCase
	render     Renderer
	seat       domain.PlayerID
	placing    domain.PlayerID
	exitOnOver bool
	logger     *zap.Logger
}

func New(in io.Reader, hub domain.HubUseCase, render Renderer, logger *zap.Logger, opts ...Option) *server {
	s := &server{
		in:     in,
		hub:    hub,
		render: render,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run serves the session until quit, end of input or ctx cancellation. It
// returns ErrSessionClosed when the session ended on its own.
func (s *server) Run(ctx context.Context, opening ...CommandType) error {
	if err := s.newGame(); err != nil {
		return err
	}
	for _, cmdType := range opening {
		if _, err := s.handle(Command{Type: cmdType}); err != nil {
			return errors.WithMessagef(err, "opening command '%s'", cmdType)
		}
	}
	lines := s.readLines(ctx)
	var overTick <-chan time.Time
	if s.exitOnOver {
		ticker := time.NewTicker(overPollPeriod)
		defer ticker.Stop()
		overTick = ticker.C
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-overTick:
			if s.game.IsOver() {
				return ErrSessionClosed
			}
		case line, ok := <-lines:
			if !ok {
				if s.exitOnOver {
					lines = nil
					continue
				}
				return ErrSessionClosed
			}
			if quit := s.serveLine(line); quit {
				return ErrSessionClosed
			}
		}
	}
}

func (s *server) readLines(ctx context.Context) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			s.logger.Warn("read console input", zap.Error(err))
		}
	}()
	return lines
}

func (s *server) serveLine(line string) bool {
	cmd, err := parseCommand(line)
	if err != nil {
		s.render.Error(err)
		return false
	}
	quit, err := s.handle(cmd)
	if err != nil {
		s.logger.Debug("command failed", zap.String("command", string(cmd.Type)), zap.Error(err))
		s.render.Error(err)
	}
	return quit
}

func (s *server) newGame() error {
	game, err := s.hub.Create()
	if err != nil {
		return errors.WithMessage(err, "create game")
	}
	if s.game != nil {
		s.game.Close()
	}
	s.game = game
	s.placing = ""
	s.logger.Info("console attached to game", zap.String("game uuid", game.ID()))
	return nil
}
