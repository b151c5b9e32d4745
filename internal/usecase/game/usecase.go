package game

import (
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
	"github.com/kiryu-dev/battleship/internal/config"
	"github.com/kiryu-dev/battleship/internal/domain"
	"github.com/kiryu-dev/battleship/internal/usecase/ai"
	"github.com/kiryu-dev/battleship/internal/usecase/placement"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// useCase coordinates one game between two seats. Every request and every
// scheduled computer move runs under mu; events produced while holding it
// are queued and handed to listeners only after it is released.
type useCase struct {
	id          string
	cfg         config.Config
	players     [2]*domain.Player
	state       domain.GameState
	over        *atomic.Bool
	generation  *atomic.Uint64
	strategies  map[domain.PlayerID]domain.StrategyUseCase
	newStrategy func() domain.StrategyUseCase
	placement   domain.PlacementUseCase
	scheduler   Scheduler
	pending     Timer
	rng         *rand.Rand
	listeners   domain.Listeners
	events      []domain.Event
	mu          sync.Mutex
	emitMu      sync.Mutex
	logger      *zap.Logger
}

func New(cfg config.Config, logger *zap.Logger, opts ...Option) (*useCase, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithMessage(err, "validate config")
	}
	id := uuid.NewString()
	u := &useCase{
		id:         id,
		cfg:        cfg,
		over:       atomic.NewBool(false),
		generation: atomic.NewUint64(0),
		strategies: make(map[domain.PlayerID]domain.StrategyUseCase, len(cfg.Players)),
		scheduler:  realScheduler{},
		logger:     logger.With(zap.String("game uuid", id)),
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.rng == nil {
		u.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if u.placement == nil {
		u.placement = placement.New(cfg.Placement, u.rng, u.logger)
	}
	if u.newStrategy == nil {
		u.newStrategy = func() domain.StrategyUseCase {
			return ai.New(cfg.AI, u.rng, u.logger)
		}
	}
	for i, pc := range cfg.Players {
		u.players[i] = domain.NewPlayer(pc.ID, pc.Name, pc.Computer)
		if pc.Computer {
			u.strategies[pc.ID] = u.newStrategy()
		}
	}
	if err := u.RequestReset(); err != nil {
		return nil, errors.WithMessage(err, "prepare new game")
	}
	return u, nil
}

func (u *useCase) ID() string {
	return u.id
}

func (u *useCase) do(f func() error) error {
	var err error
	u.locked(func() {
		err = f()
	})
	return err
}

// locked runs f under the game lock and then delivers the events it queued.
func (u *useCase) locked(f func()) {
	u.mu.Lock()
	f()
	u.mu.Unlock()
	u.flush()
}

// RequestReset throws away the current match and returns both seats to the
// placement phase. Any computer move still waiting on its timer is dropped.
func (u *useCase) RequestReset() error {
	return u.do(u.reset)
}

func (u *useCase) reset() error {
	u.generation.Inc()
	u.cancelPending()
	u.over.Store(false)
	u.state = domain.GameState{
		IsFirstTurn: true,
		Status:      domain.ReadyToStart,
	}
	for _, strategy := range u.strategies {
		strategy.Reset()
	}
	for _, player := range u.players {
		if player.IsComputer() {
			if err := u.placement.AutoPlace(player, u.cfg.Fleet); err != nil {
				return errors.WithMessagef(err, "auto place fleet of '%s'", player.ID())
			}
			continue
		}
		player.Board().Reset()
		fleet, err := domain.CreateFleet(u.cfg.Fleet)
		if err != nil {
			return errors.WithMessage(err, "create fleet")
		}
		player.Board().SetFleet(fleet)
	}
	u.logger.Info("game is ready for placement")
	return nil
}

func (u *useCase) RequestPlaceShip(id domain.PlayerID, shipType string, row, col int,
	orientation domain.Orientation) error {
	return u.do(func() error {
		board, err := u.placementBoard(id, shipType)
		if err != nil {
			return err
		}
		ship, ok := board.Fleet().Get(shipType)
		if !ok {
			return u.rejectPlacement(id, shipType, errors.WithMessagef(domain.ErrUnknownShip, "'%s'", shipType))
		}
		if err := board.PlaceShip(row, col, ship, orientation); err != nil {
			return u.rejectPlacement(id, shipType, err)
		}
		u.logger.Debug("ship placed",
			zap.String("player", string(id)),
			zap.String("ship", shipType),
			zap.Int("row", row),
			zap.Int("col", col),
			zap.String("orientation", string(orientation)),
		)
		return nil
	})
}

func (u *useCase) RequestRotateShip(id domain.PlayerID, shipType string) error {
	return u.do(func() error {
		board, err := u.placementBoard(id, shipType)
		if err != nil {
			return err
		}
		if err := board.RotateShip(shipType); err != nil {
			return u.rejectPlacement(id, shipType, err)
		}
		return nil
	})
}

func (u *useCase) RequestAutoPlace(id domain.PlayerID) error {
	return u.do(func() error {
		player, err := u.player(id)
		if err != nil {
			return err
		}
		if u.state.Status != domain.ReadyToStart {
			return domain.ErrPlacementClosed
		}
		if err := u.placement.AutoPlace(player, u.cfg.Fleet); err != nil {
			return errors.WithMessagef(err, "auto place fleet of '%s'", id)
		}
		return nil
	})
}

func (u *useCase) placementBoard(id domain.PlayerID, shipType string) (*domain.Board, error) {
	player, err := u.player(id)
	if err != nil {
		return nil, err
	}
	if u.state.Status != domain.ReadyToStart {
		return nil, u.rejectPlacement(id, shipType, domain.ErrPlacementClosed)
	}
	return player.Board(), nil
}

func (u *useCase) rejectPlacement(id domain.PlayerID, shipType string, err error) error {
	u.emit(domain.PlacementRejected, domain.PlacementRejectedPayload{
		Player:   id,
		ShipType: shipType,
		Reason:   err.Error(),
	})
	return err
}

// Start moves a fully placed game into play. The starting seat comes from
// the config or, when unset, a coin flip.
func (u *useCase) Start() error {
	return u.do(func() error {
		switch u.state.Status {
		case domain.InProgress:
			return domain.ErrGameInProgress
		case domain.Finished:
			return domain.ErrGameOver
		}
		for _, player := range u.players {
			fleet := player.Board().Fleet()
			if fleet.Len() == 0 || !fleet.AllPlaced() {
				return errors.WithMessagef(domain.ErrFleetNotPlaced, "player '%s'", player.ID())
			}
		}
		starting := u.cfg.StartingPlayer
		if starting == "" {
			starting = u.players[u.rng.IntN(len(u.players))].ID()
		}
		u.state.CurrentTurn = starting
		u.state.Status = domain.InProgress
		u.emit(domain.GameStarted, domain.GameStartedPayload{StartingPlayer: starting})
		u.logger.Info("game started", zap.String("starting player", string(starting)))
		u.handleTurn()
		return nil
	})
}

// handleTurn passes the turn to the other seat (except right after Start)
// and, if that seat is a computer, schedules its move.
func (u *useCase) handleTurn() {
	if u.state.IsFirstTurn {
		u.state.IsFirstTurn = false
	} else {
		u.state.CurrentTurn = u.opponent(u.state.CurrentTurn).ID()
		u.emit(domain.TurnChanged, domain.TurnChangedPayload{CurrentPlayer: u.state.CurrentTurn})
	}
	current, err := u.player(u.state.CurrentTurn)
	if err != nil {
		u.logger.Error("current turn belongs to nobody", zap.Error(err))
		return
	}
	if current.IsComputer() {
		u.scheduleComputerTurn(current.ID())
	}
}

func (u *useCase) scheduleComputerTurn(id domain.PlayerID) {
	u.cancelPending()
	delay := u.strategies[id].Delay()
	generation := u.generation.Load()
	u.pending = u.scheduler.AfterFunc(delay, func() {
		u.playComputerTurn(generation, id)
	})
	u.logger.Debug("computer move scheduled", zap.String("player", string(id)), zap.Duration("delay", delay))
}

func (u *useCase) cancelPending() {
	if u.pending == nil {
		return
	}
	u.pending.Stop()
	u.pending = nil
}

func (u *useCase) playComputerTurn(generation uint64, attacker domain.PlayerID) {
	u.locked(func() {
		u.computerTurn(generation, attacker)
	})
}

func (u *useCase) computerTurn(generation uint64, attacker domain.PlayerID) {
	if generation != u.generation.Load() || u.over.Load() ||
		u.state.Status != domain.InProgress || u.state.CurrentTurn != attacker {
		u.logger.Debug("stale computer move dropped", zap.String("player", string(attacker)))
		return
	}
	u.pending = nil
	strategy := u.strategies[attacker]
	defender := u.opponent(attacker)
	for attempt := 0; attempt < u.cfg.AI.ScanAttempts; attempt++ {
		target, ok := strategy.NextTarget(defender.Board())
		if !ok {
			break
		}
		outcome := u.executeAttack(attacker, defender.Board(), target.Row, target.Col)
		if !outcome.Success {
			if domain.IsRejectedMove(outcome.Reason) {
				u.logger.Warn("computer picked an illegal target",
					zap.String("player", string(attacker)),
					zap.Int("row", target.Row),
					zap.Int("col", target.Col),
					zap.Error(outcome.Reason),
				)
				continue
			}
			u.logger.Warn("computer attack rejected", zap.String("player", string(attacker)), zap.Error(outcome.Reason))
			return
		}
		strategy.Observe(defender.Board(), target, outcome.Result, outcome.SunkShip != "")
		u.resolveAttack(attacker, defender.ID(), outcome)
		return
	}
	u.logger.Error("computer found no target", zap.String("player", string(attacker)))
}

// ExecuteAttack fires one shot at defender on behalf of attackerID without
// advancing the turn or notifying listeners. Failures are reported through
// the outcome rather than an error.
func (u *useCase) ExecuteAttack(attackerID domain.PlayerID, defender *domain.Board, row, col int) domain.AttackOutcome {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.executeAttack(attackerID, defender, row, col)
}

func (u *useCase) executeAttack(attackerID domain.PlayerID, defender *domain.Board, row, col int) domain.AttackOutcome {
	target := domain.NewCoord(row, col)
	switch {
	case u.over.Load():
		return domain.AttackOutcome{Target: target, Reason: domain.ErrGameOver}
	case u.state.Status != domain.InProgress:
		return domain.AttackOutcome{Target: target, Reason: domain.ErrGameNotStarted}
	case attackerID != u.state.CurrentTurn:
		return domain.AttackOutcome{Target: target, Reason: domain.ErrNotYourTurn}
	}
	result, err := defender.ReceiveAttack(row, col)
	if err != nil {
		return domain.AttackOutcome{Target: target, Reason: err}
	}
	outcome := domain.AttackOutcome{
		Success: true,
		Result:  result,
		Target:  target,
	}
	if ship := defender.ShipAt(target); result == domain.Hit && ship.IsSunk() {
		outcome.SunkShip = ship.Type
	}
	fleetSunk, err := defender.AllShipsSunk()
	if err != nil {
		u.logger.Warn("check defender fleet", zap.Error(err))
	}
	outcome.FleetSunk = fleetSunk
	return outcome
}

// RequestAttack is a seat's shot at its opponent. A successful shot is
// announced and either ends the game or passes the turn.
func (u *useCase) RequestAttack(id domain.PlayerID, row, col int) domain.AttackOutcome {
	var outcome domain.AttackOutcome
	u.locked(func() {
		outcome = u.attack(id, row, col)
	})
	return outcome
}

func (u *useCase) attack(id domain.PlayerID, row, col int) domain.AttackOutcome {
	attacker, err := u.player(id)
	if err != nil {
		return domain.AttackOutcome{Target: domain.NewCoord(row, col), Reason: err}
	}
	if attacker.IsComputer() {
		return domain.AttackOutcome{
			Target: domain.NewCoord(row, col),
			Reason: errors.WithMessage(domain.ErrNotYourTurn, "seat is computer controlled"),
		}
	}
	defender := u.opponent(id)
	outcome := u.executeAttack(id, defender.Board(), row, col)
	if outcome.Success {
		u.resolveAttack(id, defender.ID(), outcome)
	}
	return outcome
}

func (u *useCase) resolveAttack(attacker, defender domain.PlayerID, outcome domain.AttackOutcome) {
	u.emit(domain.AttackResolved, domain.AttackResolvedPayload{
		Attacker:  attacker,
		Defender:  defender,
		Row:       outcome.Target.Row,
		Col:       outcome.Target.Col,
		Result:    outcome.Result,
		SunkShip:  outcome.SunkShip,
		FleetSunk: outcome.FleetSunk,
	})
	u.logger.Info("attack resolved",
		zap.String("attacker", string(attacker)),
		zap.Int("row", outcome.Target.Row),
		zap.Int("col", outcome.Target.Col),
		zap.String("result", string(outcome.Result)),
		zap.String("sunk", outcome.SunkShip),
	)
	if outcome.FleetSunk {
		u.finish(attacker)
		return
	}
	u.handleTurn()
}

// finish is one-way: only the first call records a winner.
func (u *useCase) finish(winner domain.PlayerID) {
	if !u.over.CompareAndSwap(false, true) {
		return
	}
	u.cancelPending()
	u.state.IsGameOver = true
	u.state.Winner = winner
	u.state.Status = domain.Finished
	u.emit(domain.GameOver, domain.GameOverPayload{Winner: winner})
	u.logger.Info("game over", zap.String("winner", string(winner)))
}

func (u *useCase) State() domain.GameState {
	u.mu.Lock()
	defer u.mu.Unlock()
	state := u.state
	state.IsGameOver = u.over.Load()
	return state
}

func (u *useCase) IsOver() bool {
	return u.over.Load()
}

func (u *useCase) Players() []*domain.Player {
	return []*domain.Player{u.players[0], u.players[1]}
}

func (u *useCase) Snapshot(id domain.PlayerID) (domain.BoardSnapshot, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	player, err := u.player(id)
	if err != nil {
		return domain.BoardSnapshot{}, err
	}
	return player.Board().Snapshot(), nil
}

// Close stops any scheduled computer move. The game stays readable.
func (u *useCase) Close() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.generation.Inc()
	u.cancelPending()
}

func (u *useCase) player(id domain.PlayerID) (*domain.Player, error) {
	for _, player := range u.players {
		if player.ID() == id {
			return player, nil
		}
	}
	return nil, errors.WithMessagef(domain.ErrUnknownPlayer, "'%s'", id)
}

func (u *useCase) opponent(id domain.PlayerID) *domain.Player {
	if u.players[0].ID() == id {
		return u.players[1]
	}
	return u.players[0]
}

func (u *useCase) emit(eventType domain.EventType, payload any) {
	u.events = append(u.events, domain.Event{
		Type:    eventType,
		GameID:  u.id,
		Payload: payload,
	})
}

// flush delivers queued events in order. Only one goroutine delivers at a
// time; a listener that calls back into the game has its events picked up
// by the loop already running.
func (u *useCase) flush() {
	for {
		if !u.emitMu.TryLock() {
			return
		}
		u.mu.Lock()
		events := u.events
		u.events = nil
		u.mu.Unlock()
		for _, e := range events {
			u.listeners.Notify(e)
		}
		u.emitMu.Unlock()
		u.mu.Lock()
		empty := len(u.events) == 0
		u.mu.Unlock()
		if empty {
			return
		}
	}
}
