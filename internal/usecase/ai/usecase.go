package ai

import (
	"math/rand/v2"
	"time"

	"github.com/kiryu-dev/battleship/internal/config"
	"github.com/kiryu-dev/battleship/internal/domain"
	"go.uber.org/zap"
)

// useCase picks targets for a computer player. While hunting it works
// through a FIFO queue of cells next to unresolved hits; otherwise it scans
// random cells where some remaining ship could still be hiding.
type useCase struct {
	hunting      bool
	queue        []domain.Coord
	rng          *rand.Rand
	scanAttempts int
	huntDelay    config.DelayRange
	scanDelay    config.DelayRange
	logger       *zap.Logger
}

func New(cfg config.AIConfig, rng *rand.Rand, logger *zap.Logger) *useCase {
	return &useCase{
		rng:          rng,
		scanAttempts: cfg.ScanAttempts,
		huntDelay:    cfg.HuntDelay,
		scanDelay:    cfg.ScanDelay,
		logger:       logger,
	}
}

func (u *useCase) NextTarget(board domain.TargetBoard) (domain.Coord, bool) {
	for u.hunting && len(u.queue) > 0 {
		target := u.queue[0]
		u.queue = u.queue[1:]
		if !target.In(board.Size()) || board.IsAttacked(target) {
			continue
		}
		u.logger.Debug("hunting target", zap.Int("row", target.Row), zap.Int("col", target.Col),
			zap.Int("queued", len(u.queue)))
		return target, true
	}
	return u.scan(board)
}

func (u *useCase) scan(board domain.TargetBoard) (domain.Coord, bool) {
	size := board.Size()
	lengths := board.RemainingShipLengths()
	for attempt := 0; attempt < u.scanAttempts; attempt++ {
		target := domain.NewCoord(u.rng.IntN(size), u.rng.IntN(size))
		if board.IsAttacked(target) || !canFitAnyShip(board, target, lengths) {
			continue
		}
		u.logger.Debug("scanning target", zap.Int("row", target.Row), zap.Int("col", target.Col),
			zap.Int("attempt", attempt))
		return target, true
	}
	var (
		spare    domain.Coord
		hasSpare bool
	)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			target := domain.NewCoord(row, col)
			if board.IsAttacked(target) {
				continue
			}
			if canFitAnyShip(board, target, lengths) {
				return target, true
			}
			if !hasSpare {
				spare, hasSpare = target, true
			}
		}
	}
	return spare, hasSpare
}

// canFitAnyShip reports whether a ship of one of the given lengths could lie
// on a segment covering target without crossing a known cell or the edge.
func canFitAnyShip(board domain.TargetBoard, target domain.Coord, lengths []int) bool {
	for _, length := range lengths {
		for _, step := range [2]domain.Coord{{Row: 0, Col: 1}, {Row: 1, Col: 0}} {
			for offset := 0; offset < length; offset++ {
				start := target.Add(-step.Row*offset, -step.Col*offset)
				if segmentFree(board, start, step, length) {
					return true
				}
			}
		}
	}
	return false
}

func segmentFree(board domain.TargetBoard, start, step domain.Coord, length int) bool {
	for i := 0; i < length; i++ {
		c := start.Add(step.Row*i, step.Col*i)
		if !c.In(board.Size()) || board.IsAttacked(c) {
			return false
		}
	}
	return true
}

// Observe updates the hunt after an attack on target. A hit queues the
// untried orthogonal neighbours; sinking the ship ends the hunt.
func (u *useCase) Observe(board domain.TargetBoard, target domain.Coord, result domain.AttackResult, sunk bool) {
	if result != domain.Hit {
		return
	}
	if sunk {
		u.Reset()
		return
	}
	u.hunting = true
	for _, n := range target.Orthogonal() {
		if n.In(board.Size()) && !board.IsAttacked(n) {
			u.queue = append(u.queue, n)
		}
	}
}

// Delay is the pause before the next computer move: short and tight while
// hunting, longer and looser while scanning.
func (u *useCase) Delay() time.Duration {
	r := u.scanDelay
	if u.hunting {
		r = u.huntDelay
	}
	return r.Min + time.Duration(u.rng.Int64N(int64(r.Max-r.Min)+1))
}

func (u *useCase) Reset() {
	u.hunting = false
	u.queue = nil
}

func (u *useCase) IsHunting() bool {
	return u.hunting
}
