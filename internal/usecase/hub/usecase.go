package hub

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/kiryu-dev/battleship/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const cleanupPeriod = 30 * time.Second

type GameFactory func() (domain.GameUseCase, error)

// useCase keeps every game of the session by id and periodically drops the
// finished ones.
type useCase struct {
	newGame GameFactory
	games   map[string]domain.GameUseCase
	period  time.Duration
	mu      *sync.RWMutex
	logger  *zap.Logger
}

func New(newGame GameFactory, logger *zap.Logger) *useCase {
	return &useCase{
		newGame: newGame,
		games:   make(map[string]domain.GameUseCase),
		period:  cleanupPeriod,
		mu:      &sync.RWMutex{},
		logger:  logger,
	}
}

func (u *useCase) Create() (domain.GameUseCase, error) {
	game, err := u.newGame()
	if err != nil {
		return nil, errors.WithMessage(err, "create game")
	}
	u.mu.Lock()
	u.games[game.ID()] = game
	u.mu.Unlock()
	u.logger.Info("game created", zap.String("game uuid", game.ID()))
	return game, nil
}

func (u *useCase) Get(id string) (domain.GameUseCase, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	game, ok := u.games[id]
	if !ok {
		return nil, errors.WithMessagef(domain.ErrGameNotFound, "'%s'", id)
	}
	return game, nil
}

func (u *useCase) IDs() []string {
	u.mu.RLock()
	ids := make([]string, 0, len(u.games))
	for id := range u.games {
		ids = append(ids, id)
	}
	u.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// RemoveFinished closes and forgets every game that is over and returns how
// many are left.
func (u *useCase) RemoveFinished() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	for id, game := range u.games {
		if !game.IsOver() {
			continue
		}
		game.Close()
		delete(u.games, id)
		u.logger.Debug("finished game removed", zap.String("game uuid", id))
	}
	return len(u.games)
}

func (u *useCase) Run(ctx context.Context) error {
	ticker := time.NewTicker(u.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if left := u.RemoveFinished(); left > 0 {
				u.logger.Debug("games in progress", zap.Int("count", left))
			}
		}
	}
}

func (u *useCase) Close() {
	u.mu.Lock()
	defer u.mu.Unlock()
	for id, game := range u.games {
		game.Close()
		delete(u.games, id)
	}
}
