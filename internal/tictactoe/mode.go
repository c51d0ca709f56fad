package tictactoe

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	ModeClassic = "3x3"
	ModeLarge   = "6x6"
)

// GameMode binds a board geometry to the engine that plays it.
type GameMode struct {
	Name      string
	Dimension int
	WinStreak int
	Engine    Engine
}

func (that GameMode) Cells() int {
	return that.Dimension * that.Dimension
}

func (that GameMode) NewBoard() entity.Board {
	return entity.NewBoard(that.Dimension)
}

func (that GameMode) ParseBoard(s string) (entity.Board, error) {
	board, err := entity.ParseBoard(s, that.Dimension)
	if err != nil {
		return nil, fmt.Errorf("mode %s: %w", that.Name, err)
	}
	return board, nil
}

// Modes is the table of playable game modes keyed by name.
type Modes map[string]GameMode

// NewModes builds the classic 3x3 exhaustive mode and the 6x6 four-in-a-row
// mode searched to largeBoardDepth plies.
func NewModes(largeBoardDepth int) Modes {
	return Modes{
		ModeClassic: {
			Name:      ModeClassic,
			Dimension: 3,
			WinStreak: 3,
			Engine:    NewExhaustiveEngine(3, 3),
		},
		ModeLarge: {
			Name:      ModeLarge,
			Dimension: 6,
			WinStreak: 4,
			Engine:    NewBoundedEngine(6, 4, largeBoardDepth),
		},
	}
}

func (that Modes) Get(name string) (GameMode, error) {
	mode, ok := that[name]
	if !ok {
		return GameMode{}, fmt.Errorf("%w: %q (available: %s)", apperror.ErrUnknownMode, name, strings.Join(that.Names(), ", "))
	}
	return mode, nil
}

// Names returns the mode names in sorted order.
func (that Modes) Names() []string {
	names := make([]string, 0, len(that))
	for name := range that {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
