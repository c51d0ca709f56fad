package entity

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game is one session between a human and the engine on a single game mode.
type Game struct {
	ID      string    `json:"id"`
	Mode    string    `json:"mode"`
	Board   Board     `json:"board"`
	Turn    Mark      `json:"player_turn"`
	Result  WinResult `json:"result"`
	Status  string    `json:"status"`
	Players []*Player `json:"players,omitempty"`
}

// NewGame returns an empty ongoing game. X always moves first.
func NewGame(id, mode string, dimension int) *Game {
	return &Game{
		ID:     id,
		Mode:   mode,
		Board:  NewBoard(dimension),
		Turn:   PlayerX,
		Status: StatusOngoing,
	}
}

// Reset clears the board and keeps the mode and the players.
func (that *Game) Reset() {
	that.Board = make(Board, len(that.Board))
	that.Turn = PlayerX
	that.Result = WinResult{}
	that.Status = StatusOngoing
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

// Bot returns the engine-controlled player, or nil.
func (that *Game) Bot() *Player {
	for _, player := range that.Players {
		if player.IsBot() {
			return player
		}
	}
	return nil
}

// Human returns the first player not controlled by the engine, or nil.
func (that *Game) Human() *Player {
	for _, player := range that.Players {
		if !player.IsBot() {
			return player
		}
	}
	return nil
}

// GetRandomMarks returns a random (first, second) assignment of X and O.
func (that *Game) GetRandomMarks() (Mark, Mark) {
	if rand.IntN(2) == 0 { //nolint: gosec // it's ok
		return PlayerX, PlayerO
	}
	return PlayerO, PlayerX
}
