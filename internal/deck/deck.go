// Package deck reads card decks from the plain-text deck format.
//
// A deck file is a sequence of card blocks. Each block starts with a header
// line "<name> <cost> <value>" followed by five rows of five symbols from
// X, I and C, where C marks the card's own cell. Blank lines and lines
// starting with '#' are ignored between blocks.
package deck

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mitchelldurbincs/PawnsBoard/internal/game/core"
)

var ErrMalformedDeck = errors.New("malformed deck")

// Parse reads every card block from r and assigns the cards to role.
func Parse(r io.Reader, role core.Role) ([]*core.Card, error) {
	if !role.IsValid() {
		return nil, core.ErrInvalidRole
	}

	var (
		cards   []*core.Card
		header  []string
		rows    []string
		headAt  int
		lineNum int
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if header == nil {
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			header = strings.Fields(line)
			if len(header) != 3 {
				return nil, fmt.Errorf("%w: line %d: header needs name, cost and value, got %q", ErrMalformedDeck, lineNum, line)
			}
			headAt = lineNum
			rows = rows[:0]
			continue
		}

		rows = append(rows, line)
		if len(rows) < core.PatternSize {
			continue
		}
		c, err := build(header, rows, role, headAt)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
		header = nil
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading deck: %w", err)
	}
	if header != nil {
		return nil, fmt.Errorf("%w: line %d: card %q has %d of %d pattern rows", ErrMalformedDeck, headAt, header[0], len(rows), core.PatternSize)
	}
	return cards, nil
}

func build(header, rows []string, role core.Role, line int) (*core.Card, error) {
	cost, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, fmt.Errorf("%w: line %d: cost %q is not a number", ErrMalformedDeck, line, header[1])
	}
	value, err := strconv.Atoi(header[2])
	if err != nil {
		return nil, fmt.Errorf("%w: line %d: value %q is not a number", ErrMalformedDeck, line, header[2])
	}
	c, err := core.NewCardFromRows(header[0], role, cost, value, rows)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", line, err)
	}
	return c, nil
}

// Load opens path and parses it with Parse.
func Load(path string, role core.Role) ([]*core.Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening deck: %w", err)
	}
	defer f.Close()

	cards, err := Parse(f, role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cards, nil
}
