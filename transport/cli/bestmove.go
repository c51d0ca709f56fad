package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

func newBestMoveCommand(opts Options) *cobra.Command {
	var (
		mode   string
		mark   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "bestmove BOARD",
		Short: "Print the engine's move for a position",
		Long: heredoc.Doc(`bestmove prints the cell the engine would play on BOARD.

			BOARD lists the cells row by row: X and O are marks, '.',
			'-' and '_' are empty cells, spaces, '|' and '/' are ignored.
			The side to move is taken from the mark counts unless --mark
			is given.`),
		Example: heredoc.Doc(`
			$ tictactoe bestmove "XX./OO./..."
			$ tictactoe bestmove --mode 6x6 --mark O "$(cat board.txt)"`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameMode, err := opts.Modes.Get(mode)
			if err != nil {
				return err
			}

			board, err := gameMode.ParseBoard(args[0])
			if err != nil {
				return err
			}

			if result := gameMode.Engine.CheckWinner(board); result.IsTerminal() {
				return fmt.Errorf("%w: %s", apperror.ErrGameFinished, describeResult(result))
			}

			engineMark := sideToMove(board)
			if mark != "" {
				engineMark = entity.Mark(strings.ToUpper(mark))
				if !engineMark.IsPlayer() {
					return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
				}
			}

			analysis := gameMode.Engine.Analyze(board, engineMark, entity.Opponent(engineMark))
			opts.Logger.Debug("analysis done", "mode", gameMode.Name, "mark", engineMark, "nodes", analysis.Nodes)

			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(analysis)
			}

			out := cmd.OutOrStdout()
			if analysis.Move == tictactoe.NoMove {
				fmt.Fprintln(out, "no move available")
				return nil
			}

			fmt.Fprintf(out, "%s plays %d (row %d, col %d)\n", engineMark, analysis.Move,
				analysis.Move/gameMode.Dimension, analysis.Move%gameMode.Dimension)
			if analysis.Opening {
				fmt.Fprintln(out, "opening book: centre cell")
			} else {
				fmt.Fprintf(out, "score %d, %d nodes searched\n", analysis.Score, analysis.Nodes)
			}

			board[analysis.Move] = engineMark
			renderBoard(out, board, gameMode.Dimension, gameMode.Engine.CheckWinner(board).Line, false)

			return nil
		},
	}

	addModeFlag(cmd, &mode, opts.Defaults.Mode)
	cmd.Flags().StringVar(&mark, "mark", "", "mark the engine plays (default: side to move)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the analysis as JSON")

	return cmd
}

// sideToMove derives whose turn it is from the mark counts; X opens.
func sideToMove(board entity.Board) entity.Mark {
	var x, o int
	for _, cell := range board {
		switch cell {
		case entity.PlayerX:
			x++
		case entity.PlayerO:
			o++
		}
	}

	if x > o {
		return entity.PlayerO
	}
	return entity.PlayerX
}
