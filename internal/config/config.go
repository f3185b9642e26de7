package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game    GameConfig    `mapstructure:"game"`
	Decks   DecksConfig   `mapstructure:"decks"`
	Agents  AgentsConfig  `mapstructure:"agents"`
	Search  SearchConfig  `mapstructure:"search"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// GameConfig holds game mechanics configuration
type GameConfig struct {
	Board      BoardConfig      `mapstructure:"board"`
	HandSize   int              `mapstructure:"hand_size"`
	Seed       int64            `mapstructure:"seed"`
	MaxTurns   int              `mapstructure:"max_turns"`
	DrawPolicy DrawPolicyConfig `mapstructure:"draw_policy"`
}

// BoardConfig holds board dimensions
type BoardConfig struct {
	Rows int `mapstructure:"rows"`
	Cols int `mapstructure:"cols"`
}

// DrawPolicyConfig holds the card draw tunables. Weights are percentages
// for the cost-1, cost-2 and cost-3 buckets.
type DrawPolicyConfig struct {
	SeedRatio      float64 `mapstructure:"seed_ratio"`
	PlateauWeights [3]int  `mapstructure:"plateau_weights"`
	NormalWeights  [3]int  `mapstructure:"normal_weights"`
}

// DecksConfig holds deck file locations per side
type DecksConfig struct {
	Red  string `mapstructure:"red"`
	Blue string `mapstructure:"blue"`
}

// AgentsConfig holds player settings
type AgentsConfig struct {
	Red        SideConfig `mapstructure:"red"`
	Blue       SideConfig `mapstructure:"blue"`
	Strategies []string   `mapstructure:"strategies"`
}

// SideConfig chooses who plays one side: "machine" or "human"
type SideConfig struct {
	Type string `mapstructure:"type"`
}

// SearchConfig holds simulation settings
type SearchConfig struct {
	Goroutines    int `mapstructure:"goroutines"`
	ResponseLimit int `mapstructure:"response_limit"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Events bool   `mapstructure:"events"`
}

// KnownStrategies lists the strategy names agents.strategies accepts.
var KnownStrategies = []string{"fill_first", "maximize_row_score", "control_board", "minimax"}

// Controller types accepted by agents.red.type and agents.blue.type.
const (
	ControllerMachine = "machine"
	ControllerHuman   = "human"
)

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Game defaults
	v.SetDefault("game.board.rows", 3)
	v.SetDefault("game.board.cols", 5)
	v.SetDefault("game.hand_size", 5)
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.max_turns", 0)

	// Draw policy defaults
	v.SetDefault("game.draw_policy.seed_ratio", 0.6)
	v.SetDefault("game.draw_policy.plateau_weights", []int{60, 30, 10})
	v.SetDefault("game.draw_policy.normal_weights", []int{50, 30, 20})

	// Deck defaults
	v.SetDefault("decks.red", "decks/default.deck")
	v.SetDefault("decks.blue", "decks/default.deck")

	// Agent defaults
	v.SetDefault("agents.red.type", ControllerMachine)
	v.SetDefault("agents.blue.type", ControllerMachine)
	v.SetDefault("agents.strategies", KnownStrategies)

	// Search defaults
	v.SetDefault("search.goroutines", 4)
	v.SetDefault("search.response_limit", 0)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.events", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/pawnsboard")
	}

	// Set environment variable prefix
	v.SetEnvPrefix("PB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Only a missing file falls back to defaults. Parse errors always fail.
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || (configPath != "" && errors.Is(err, fs.ErrNotExist))
		if !missing {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// LoadEnvironmentConfig loads environment-specific config overlay
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return Validate(cfg)
}

// Set allows runtime config updates
func Set(key string, value interface{}) error {
	v.Set(key, value)
	return v.Unmarshal(cfg)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file. onChange receives the
// refreshed config only when it still validates.
func WatchConfig(onChange func(*Config)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		if err := v.Unmarshal(next); err != nil {
			return
		}
		if err := Validate(next); err != nil {
			return
		}
		*cfg = *next
		if onChange != nil {
			onChange(cfg)
		}
	})
	v.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	// Validate game mechanics
	if c.Game.Board.Rows <= 0 {
		return fmt.Errorf("game.board.rows must be positive")
	}
	if c.Game.Board.Cols <= 1 || c.Game.Board.Cols%2 == 0 {
		return fmt.Errorf("game.board.cols must be odd and greater than 1")
	}
	if c.Game.HandSize <= 0 {
		return fmt.Errorf("game.hand_size must be positive")
	}
	if c.Game.MaxTurns < 0 {
		return fmt.Errorf("game.max_turns must be non-negative")
	}

	// Validate draw policy
	dp := c.Game.DrawPolicy
	if dp.SeedRatio <= 0 || dp.SeedRatio > 1 {
		return fmt.Errorf("game.draw_policy.seed_ratio must be in (0,1]")
	}
	validateWeights := func(w [3]int, name string) error {
		sum := 0
		for i, x := range w {
			if x < 0 {
				return fmt.Errorf("%s[%d] must be non-negative", name, i)
			}
			sum += x
		}
		if sum != 100 {
			return fmt.Errorf("%s must sum to 100, got %d", name, sum)
		}
		return nil
	}
	if err := validateWeights(dp.PlateauWeights, "game.draw_policy.plateau_weights"); err != nil {
		return err
	}
	if err := validateWeights(dp.NormalWeights, "game.draw_policy.normal_weights"); err != nil {
		return err
	}

	// Validate agents
	for side, t := range map[string]string{"agents.red.type": c.Agents.Red.Type, "agents.blue.type": c.Agents.Blue.Type} {
		if t != ControllerMachine && t != ControllerHuman {
			return fmt.Errorf("%s must be machine or human, got %q", side, t)
		}
	}
	if len(c.Agents.Strategies) == 0 {
		return fmt.Errorf("agents.strategies must name at least one strategy")
	}
	for _, name := range c.Agents.Strategies {
		if !isKnownStrategy(name) {
			return fmt.Errorf("agents.strategies: unknown strategy %q", name)
		}
	}

	// Validate search settings
	if c.Search.Goroutines < 1 {
		return fmt.Errorf("search.goroutines must be at least 1")
	}
	if c.Search.ResponseLimit < 0 {
		return fmt.Errorf("search.response_limit must be non-negative")
	}

	// Validate logging
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json")
	}

	return nil
}

func isKnownStrategy(name string) bool {
	for _, known := range KnownStrategies {
		if known == name {
			return true
		}
	}
	return false
}
