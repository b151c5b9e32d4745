package config

import (
	"os"
	"time"

	"github.com/kiryu-dev/battleship/internal/domain"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyFleet        = errors.New("fleet must contain at least one ship")
	ErrInvalidShipSpec   = errors.New("ship must have a type and a length between 1 and the board size")
	ErrDuplicateShipType = errors.New("ship types must be unique")
	ErrInvalidDelay      = errors.New("delay range must satisfy 0 <= min <= max")
	ErrInvalidAttempts   = errors.New("attempt limits must be positive")
	ErrInvalidPlayers    = errors.New("exactly two players with distinct ids are required")
)

const (
	defaultScanAttempts    = 100
	defaultAttemptsPerShip = 100
	defaultLayoutAttempts  = 10
)

type DelayRange struct {
	Min time.Duration `yaml:"min"`
	Max time.Duration `yaml:"max"`
}

type AIConfig struct {
	HuntDelay    DelayRange `yaml:"hunt_delay"`
	ScanDelay    DelayRange `yaml:"scan_delay"`
	ScanAttempts int        `yaml:"scan_attempts"`
}

type PlacementConfig struct {
	AttemptsPerShip int `yaml:"attempts_per_ship"`
	LayoutAttempts  int `yaml:"layout_attempts"`
}

type PlayerConfig struct {
	ID       domain.PlayerID `yaml:"id"`
	Name     string          `yaml:"name"`
	Computer bool            `yaml:"computer"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Fleet          []domain.ShipSpec `yaml:"fleet"`
	AI             AIConfig          `yaml:"ai"`
	Placement      PlacementConfig   `yaml:"placement"`
	Players        []PlayerConfig    `yaml:"players"`
	StartingPlayer domain.PlayerID   `yaml:"starting_player"`
	Log            LogConfig         `yaml:"log"`
}

func Default() Config {
	fleet := make([]domain.ShipSpec, len(domain.StandardFleet))
	copy(fleet, domain.StandardFleet)
	return Config{
		Fleet: fleet,
		AI: AIConfig{
			HuntDelay:    DelayRange{Min: 500 * time.Millisecond, Max: 900 * time.Millisecond},
			ScanDelay:    DelayRange{Min: 1200 * time.Millisecond, Max: 2500 * time.Millisecond},
			ScanAttempts: defaultScanAttempts,
		},
		Placement: PlacementConfig{
			AttemptsPerShip: defaultAttemptsPerShip,
			LayoutAttempts:  defaultLayoutAttempts,
		},
		Players: []PlayerConfig{
			{ID: domain.Player1, Name: "You"},
			{ID: domain.Player2, Name: "Computer", Computer: true},
		},
		Log: LogConfig{Level: "info"},
	}
}

// New reads the YAML file at cfgPath on top of the defaults. An empty path
// yields the defaults.
func New(cfgPath string) (Config, error) {
	cfg := Default()
	if cfgPath == "" {
		return cfg, nil
	}
	file, err := os.Open(cfgPath)
	if err != nil {
		return Config{}, err
	}
	defer func() {
		_ = file.Close()
	}()
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return Config{}, errors.WithMessage(err, "decode yaml config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if len(c.Fleet) == 0 {
		return ErrEmptyFleet
	}
	seen := make(map[string]struct{}, len(c.Fleet))
	for _, spec := range c.Fleet {
		if spec.Type == "" || spec.Length < 1 || spec.Length > domain.BoardSize {
			return errors.WithMessagef(ErrInvalidShipSpec, "'%s' with length %d", spec.Type, spec.Length)
		}
		if _, ok := seen[spec.Type]; ok {
			return errors.WithMessagef(ErrDuplicateShipType, "'%s'", spec.Type)
		}
		seen[spec.Type] = struct{}{}
	}
	for name, r := range map[string]DelayRange{"hunt_delay": c.AI.HuntDelay, "scan_delay": c.AI.ScanDelay} {
		if r.Min < 0 || r.Min > r.Max {
			return errors.WithMessagef(ErrInvalidDelay, "%s [%s, %s]", name, r.Min, r.Max)
		}
	}
	if c.AI.ScanAttempts < 1 || c.Placement.AttemptsPerShip < 1 || c.Placement.LayoutAttempts < 1 {
		return ErrInvalidAttempts
	}
	if len(c.Players) != 2 || c.Players[0].ID == "" || c.Players[0].ID == c.Players[1].ID || c.Players[1].ID == "" {
		return ErrInvalidPlayers
	}
	if c.StartingPlayer != "" && c.StartingPlayer != c.Players[0].ID && c.StartingPlayer != c.Players[1].ID {
		return errors.WithMessagef(ErrInvalidPlayers, "unknown starting player '%s'", c.StartingPlayer)
	}
	return nil
}
