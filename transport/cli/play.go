package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

func newPlayCommand(opts Options) *cobra.Command {
	var (
		mode  string
		mark  string
		delay time.Duration
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play against the engine",
		Long: heredoc.Doc(`play starts an interactive game against the engine.

			Enter the index of a cell to place your mark, cells are
			numbered row by row from 0. X always moves first, so the
			engine opens when you play O. Enter q to quit.`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gameMode, err := opts.Modes.Get(mode)
			if err != nil {
				return err
			}

			s := &session{
				manager:   opts.Manager,
				dimension: gameMode.Dimension,
				delay:     delay,
				in:        bufio.NewScanner(cmd.InOrStdin()),
				out:       cmd.OutOrStdout(),
			}
			return s.run(cmd.Context(), gameMode.Name, strings.ToUpper(mark))
		},
	}

	addModeFlag(cmd, &mode, opts.Defaults.Mode)
	cmd.Flags().StringVar(&mark, "mark", opts.Defaults.HumanMark, "your mark (X, O or random)")
	cmd.Flags().DurationVar(&delay, "delay", opts.Defaults.ThinkDelay, "pause before showing the engine's reply")

	return cmd
}

type session struct {
	manager   gameManager
	dimension int
	delay     time.Duration
	in        *bufio.Scanner
	out       io.Writer
}

var errQuit = errors.New("quit")

func (that *session) run(ctx context.Context, modeName, mark string) error {
	if strings.EqualFold(mark, "random") {
		mark = "random"
	}

	game, err := that.manager.NewGame(ctx, modeName, mark)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}
	gameID := game.ID
	defer func() {
		// the context may be cancelled by now
		_ = that.manager.EndGame(context.WithoutCancel(ctx), gameID)
	}()

	fmt.Fprintf(that.out, "You play %s on %s.\n", game.Human().Mark, modeName)

	for {
		renderBoard(that.out, game.Board, that.dimension, game.Result.Line, true)

		if game.IsFinished() {
			fmt.Fprintln(that.out, resultMessage(game))

			again, err := that.ask("Play again? [y/N] ")
			if err != nil || !strings.EqualFold(again, "y") {
				return ignoreQuit(err)
			}

			reset, err := that.manager.Reset(ctx, gameID)
			if err != nil {
				return fmt.Errorf("failed to reset game: %w", err)
			}
			game = reset
			continue
		}

		cell, err := that.askCell(len(game.Board))
		if err != nil {
			return ignoreQuit(err)
		}

		next, err := that.manager.MakeTurn(ctx, gameID, cell)
		switch {
		case errors.Is(err, apperror.ErrCellOccupied), errors.Is(err, apperror.ErrInvalidCell):
			fmt.Fprintln(that.out, "That cell is not available.")
			continue
		case err != nil:
			return fmt.Errorf("failed to make turn: %w", err)
		}

		if engineMoved(game, next) {
			if err = that.think(ctx); err != nil {
				return err
			}
		}
		game = next
	}
}

func (that *session) askCell(cells int) (int, error) {
	for {
		answer, err := that.ask(fmt.Sprintf("Your move (0-%d, q to quit): ", cells-1))
		if err != nil {
			return 0, err
		}

		cell, err := strconv.Atoi(answer)
		if err != nil || cell < 0 || cell >= cells {
			fmt.Fprintf(that.out, "%q is not a cell.\n", answer)
			continue
		}

		return cell, nil
	}
}

// ask prompts and reads one trimmed line. End of input and "q" both quit.
func (that *session) ask(prompt string) (string, error) {
	fmt.Fprint(that.out, prompt)

	if !that.in.Scan() {
		fmt.Fprintln(that.out)
		if err := that.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", errQuit
	}

	answer := strings.TrimSpace(that.in.Text())
	if strings.EqualFold(answer, "q") {
		return "", errQuit
	}
	return answer, nil
}

func (that *session) think(ctx context.Context) error {
	if that.delay <= 0 {
		return nil
	}

	timer := time.NewTimer(that.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// engineMoved reports whether the engine answered the human move, that is
// whether more than one mark was added.
func engineMoved(before, after *entity.Game) bool {
	return countMarks(after.Board)-countMarks(before.Board) > 1
}

func countMarks(board entity.Board) int {
	marks := 0
	for _, cell := range board {
		if cell != entity.EmptyCell {
			marks++
		}
	}
	return marks
}

func resultMessage(game *entity.Game) string {
	human := game.Human()
	switch {
	case game.Result.IsDraw():
		return "Draw."
	case human != nil && game.Result.WonBy(human.Mark):
		return "You win!"
	default:
		return fmt.Sprintf("%s wins.", game.Result.Winner)
	}
}

func ignoreQuit(err error) error {
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}
