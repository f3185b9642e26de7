package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/PawnsBoard/internal/agent"
	"github.com/mitchelldurbincs/PawnsBoard/internal/config"
	"github.com/mitchelldurbincs/PawnsBoard/internal/deck"
	"github.com/mitchelldurbincs/PawnsBoard/internal/game"
	"github.com/mitchelldurbincs/PawnsBoard/internal/game/core"
	"github.com/mitchelldurbincs/PawnsBoard/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/PawnsBoard/internal/strategy"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Environment overlay to merge (loads config.<env>.yaml)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	redType := flag.String("red", "", "Who plays Red: machine or human (empty to use config default)")
	blueType := flag.String("blue", "", "Who plays Blue: machine or human (empty to use config default)")
	redDeck := flag.String("red-deck", "", "Deck file for Red (empty to use config default)")
	blueDeck := flag.String("blue-deck", "", "Deck file for Blue (empty to use config default)")
	seed := flag.Int64("seed", -1, "Game seed, 0 for time-based (-1 to use config default)")
	maxTurns := flag.Int("max-turns", -1, "Stop after this many turns, 0 for no cap (-1 to use config default)")
	watch := flag.Bool("watch", false, "Re-apply the log level when the config file changes")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Str("env", *env).Msg("Failed to load environment config")
	}
	for key, value := range map[string]string{"agents.red.type": *redType, "agents.blue.type": *blueType} {
		if value == "" {
			continue
		}
		if err := config.Set(key, value); err != nil {
			log.Fatal().Err(err).Str("key", key).Msg("Failed to apply controller type")
		}
	}
	if err := config.Validate(config.Get()); err != nil {
		log.Fatal().Err(err).Msg("Invalid settings")
	}
	if *seed != -1 {
		if err := config.Set("game.seed", *seed); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply seed")
		}
	}

	cfg := config.Get()

	// Use config defaults if not overridden by flags
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	if *redDeck == "" {
		*redDeck = cfg.Decks.Red
	}
	if *blueDeck == "" {
		*blueDeck = cfg.Decks.Blue
	}
	if *maxTurns == -1 {
		*maxTurns = cfg.Game.MaxTurns
	}

	setupLogging(*logLevel, cfg.Logging.Format)

	if *watch {
		config.WatchConfig(func(c *config.Config) {
			zerolog.SetGlobalLevel(parseLevel(c.Logging.Level))
			log.Info().Str("level", c.Logging.Level).Msg("Config reloaded")
		})
		log.Info().Str("file", config.ConfigFilePath()).Msg("Watching config file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *redDeck, *blueDeck, *maxTurns); err != nil {
		log.Fatal().Err(err).Msg("Match failed")
	}
}

func run(ctx context.Context, cfg *config.Config, redPath, bluePath string, maxTurns int) error {
	redCards, err := deck.Load(redPath, core.Red)
	if err != nil {
		return err
	}
	blueCards, err := deck.Load(bluePath, core.Blue)
	if err != nil {
		return err
	}

	g, err := game.NewGame(game.ConfigFromSettings(cfg, log.Logger))
	if err != nil {
		return err
	}
	if cfg.Logging.Events {
		eventLog := subscribers.NewLoggerSubscriber("event-log", log.Logger, zerolog.InfoLevel)
		eventLog.SetDevMode(cfg.Logging.Level == "debug")
		g.Subscribe(eventLog)
	}

	log.Info().
		Str("game_id", g.GameID()).
		Int("rows", cfg.Game.Board.Rows).
		Int("cols", cfg.Game.Board.Cols).
		Int("hand_size", cfg.Game.HandSize).
		Str("red", cfg.Agents.Red.Type).
		Str("blue", cfg.Agents.Blue.Type).
		Strs("strategies", cfg.Agents.Strategies).
		Msg("Starting match")

	if err := g.StartGame(redCards, blueCards); err != nil {
		return err
	}

	red, err := newController(core.Red, cfg.Agents.Red.Type, cfg)
	if err != nil {
		return err
	}
	blue, err := newController(core.Blue, cfg.Agents.Blue.Type, cfg)
	if err != nil {
		return err
	}

	o, err := agent.NewOrchestrator(g, red, blue,
		agent.WithMaxTurns(maxTurns),
		agent.WithLogger(log.Logger),
	)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := o.Run(ctx)
	if err != nil {
		return err
	}

	board, err := g.Board()
	if err != nil {
		return err
	}
	if cfg.Logging.Format == "json" || os.Getenv("APP_ENV") == "production" {
		fmt.Print(game.Render(board))
	} else {
		fmt.Print(game.RenderColor(board))
	}

	switch {
	case result.Truncated:
		fmt.Printf("Stopped after %d turns (Red %d, Blue %d)\n", result.Turns, result.Scores.Red, result.Scores.Blue)
	case result.Winner == core.NoRole:
		fmt.Printf("Tie at %d after %d turns\n", result.Scores.Red, result.Turns)
	default:
		fmt.Printf("%s wins %d to %d after %d turns (%d passes, %s)\n",
			result.Winner, result.Scores.Of(result.Winner), result.Scores.Of(result.Winner.Opponent()),
			result.Turns, result.Passes, time.Since(start).Round(time.Millisecond))
	}
	return nil
}

// stdin is shared so two human sides can take turns at one terminal.
var stdin = bufio.NewScanner(os.Stdin)

func newController(role core.Role, kind string, cfg *config.Config) (agent.Controller, error) {
	if kind == config.ControllerHuman {
		return agent.NewHuman(role, stdin, os.Stdout, log.Logger)
	}

	pool, err := strategy.Pool(strategy.Settings{
		Goroutines:    cfg.Search.Goroutines,
		ResponseLimit: cfg.Search.ResponseLimit,
	}, cfg.Agents.Strategies...)
	if err != nil {
		return nil, err
	}
	selector := strategy.NewSelector(
		strategy.WithLogger(log.Logger),
		strategy.WithParallelism(cfg.Search.Goroutines),
	)
	return agent.NewMachine(role, pool, selector, log.Logger)
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func setupLogging(level, format string) {
	zerolog.SetGlobalLevel(parseLevel(level))

	// Log to stderr so the rendered board owns stdout
	if os.Getenv("APP_ENV") == "production" || format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
