package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type memoryGame struct {
	mu    sync.RWMutex
	games map[string]entity.Game
}

// NewMemoryGameRepository keeps sessions in process memory. Stored games are
// copied on the way in and out.
func NewMemoryGameRepository() GameRepository {
	return &memoryGame{
		games: make(map[string]entity.Game),
	}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[game.ID] = copyGame(game)

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	game, ok := that.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}

	existingGame := copyGame(&game)
	return &existingGame, nil
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.games, id)

	return nil
}

func copyGame(game *entity.Game) entity.Game {
	clone := *game
	clone.Board = game.Board.Clone()
	clone.Result.Line = slices.Clone(game.Result.Line)

	clone.Players = nil
	for _, player := range game.Players {
		p := *player
		clone.Players = append(clone.Players, &p)
	}

	return clone
}
