package main

import (
	"context"
	"flag"
	"math/rand/v2"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/kiryu-dev/battleship/internal/adapters/render"
	"github.com/kiryu-dev/battleship/internal/config"
	"github.com/kiryu-dev/battleship/internal/domain"
	"github.com/kiryu-dev/battleship/internal/transport/console"
	"github.com/kiryu-dev/battleship/internal/usecase/game"
	"github.com/kiryu-dev/battleship/internal/usecase/hub"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	humanVsComputer    = "pve"
	humanVsHuman       = "pvp"
	computerVsComputer = "eve"
)

type renderer interface {
	domain.Listener
	console.Renderer
}

func main() {
	if os.Getenv("STAGE") != "prod" {
		/* a missing .env is fine, flags and config.yml still apply */
		_ = godotenv.Load(".env")
	}
	defaultCfgPath := os.Getenv("BATTLESHIP_CONFIG")
	if defaultCfgPath == "" {
		defaultCfgPath = "./config.yml"
	}
	defaultSeed, _ := strconv.ParseUint(os.Getenv("BATTLESHIP_SEED"), 10, 64)
	cfgPath := flag.String("config", defaultCfgPath, "path to config")
	mode := flag.String("mode", "", "pve, pvp or eve; overrides the players from config")
	jsonOut := flag.Bool("json", false, "write JSON lines instead of drawing boards")
	seed := flag.Uint64("seed", defaultSeed, "random seed, 0 picks one")
	flag.Parse()

	cfg, err := config.New(*cfgPath)
	if err != nil {
		panic(err)
	}
	if err := applyMode(&cfg, *mode); err != nil {
		panic(err)
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	var (
		out       renderer
		gameCount = atomic.NewUint64(0)
	)
	games := hub.New(func() (domain.GameUseCase, error) {
		opts := []game.Option{game.WithListener(out)}
		if *seed != 0 {
			opts = append(opts, game.WithRand(rand.New(rand.NewPCG(*seed, gameCount.Inc()))))
		}
		return game.New(cfg, logger, opts...)
	}, logger)
	human := humanSeat(cfg)
	if *jsonOut {
		out = render.NewJSON(os.Stdout, logger)
	} else {
		out = render.NewText(os.Stdout, games, viewer(cfg, human), logger)
	}

	var (
		sessionOpts []console.Option
		opening     []console.CommandType
	)
	switch {
	case human == "":
		sessionOpts = append(sessionOpts, console.WithExitOnGameOver())
		opening = append(opening, console.StartCommand)
	case viewer(cfg, human) != "":
		sessionOpts = append(sessionOpts, console.WithSeat(human))
		out.Message("Place your fleet ('auto' for a random one), then 'start'. Type 'help' for commands.")
	default:
		out.Message("Hot seat game. Type 'help' for commands.")
	}
	session := console.New(os.Stdin, games, out, logger, sessionOpts...)

	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	errGroup, ctx := errgroup.WithContext(context.Background())
	errGroup.Go(func() error {
		select {
		case s := <-sigChan:
			return errors.Errorf("captured signal: %v", s)
		case <-ctx.Done():
			return nil
		}
	})
	errGroup.Go(func() error {
		return games.Run(ctx)
	})
	errGroup.Go(func() error {
		return session.Run(ctx, opening...)
	})
	if err := errGroup.Wait(); err != nil && !errors.Is(err, console.ErrSessionClosed) {
		logger.Info("shutting down: " + err.Error())
	}
	games.Close()
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, errors.WithMessage(err, "parse log level")
	}
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = level
	return zapCfg.Build()
}

func applyMode(cfg *config.Config, mode string) error {
	switch mode {
	case "":
		return nil
	case humanVsComputer:
		cfg.Players[0].Computer, cfg.Players[1].Computer = false, true
	case humanVsHuman:
		cfg.Players[0].Computer, cfg.Players[1].Computer = false, false
	case computerVsComputer:
		cfg.Players[0].Computer, cfg.Players[1].Computer = true, true
	default:
		return errors.Errorf("unknown mode '%s'", mode)
	}
	return nil
}

func humanSeat(cfg config.Config) domain.PlayerID {
	for _, player := range cfg.Players {
		if !player.Computer {
			return player.ID
		}
	}
	return ""
}

// viewer is the seat boards are drawn for. Hot seat games follow the turn.
func viewer(cfg config.Config, human domain.PlayerID) domain.PlayerID {
	humans := 0
	for _, player := range cfg.Players {
		if !player.Computer {
			humans++
		}
	}
	if humans != 1 {
		return ""
	}
	return human
}
