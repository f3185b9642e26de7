package strategy

import (
	"errors"
	"fmt"
)

// Strategy names as they appear in configuration.
const (
	NameFillFirst        = "fill_first"
	NameMaximizeRowScore = "maximize_row_score"
	NameControlBoard     = "control_board"
	NameMinimax          = "minimax"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// Settings tunes the strategies that search.
type Settings struct {
	Goroutines    int
	ResponseLimit int
}

type constructor func(s Settings) Strategy

var registry = []struct {
	name  string
	build constructor
}{
	{NameFillFirst, func(Settings) Strategy { return FillFirst{} }},
	{NameMaximizeRowScore, func(Settings) Strategy { return MaximizeRowScore{} }},
	{NameControlBoard, func(Settings) Strategy { return ControlBoard{} }},
	{NameMinimax, func(s Settings) Strategy {
		return NewMinimax(WithGoroutines(s.Goroutines), WithResponseLimit(s.ResponseLimit))
	}},
}

// Names lists the registered strategy names in registration order.
func Names() []string {
	names := make([]string, len(registry))
	for i, entry := range registry {
		names[i] = entry.name
	}
	return names
}

// New builds the strategy registered under name.
func New(name string, s Settings) (Strategy, error) {
	for _, entry := range registry {
		if entry.name == name {
			return entry.build(s), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Pool builds one strategy per name, in order.
func Pool(s Settings, names ...string) ([]Strategy, error) {
	pool := make([]Strategy, 0, len(names))
	for _, name := range names {
		strat, err := New(name, s)
		if err != nil {
			return nil, err
		}
		pool = append(pool, strat)
	}
	return pool, nil
}
