package game

import (
	"time"
)

type Timer interface {
	Stop() bool
}

// Scheduler runs deferred callbacks. Computer moves are scheduled through it
// so they can be cancelled on reset or game over.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
