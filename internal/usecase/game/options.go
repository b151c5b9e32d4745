package game

import (
	"math/rand/v2"

	"github.com/kiryu-dev/battleship/internal/domain"
)

type Option func(u *useCase)

func WithScheduler(scheduler Scheduler) Option {
	return func(u *useCase) {
		u.scheduler = scheduler
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(u *useCase) {
		u.rng = rng
	}
}

func WithListener(listener domain.Listener) Option {
	return func(u *useCase) {
		u.listeners = append(u.listeners, listener)
	}
}

func WithPlacement(placement domain.PlacementUseCase) Option {
	return func(u *useCase) {
		u.placement = placement
	}
}

// WithStrategyFactory sets how computer seats get their targeting strategy.
// Every computer player gets its own instance.
func WithStrategyFactory(factory func() domain.StrategyUseCase) Option {
	return func(u *useCase) {
		u.newStrategy = factory
	}
}
