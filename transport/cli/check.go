package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCommand(opts Options) *cobra.Command {
	var (
		mode   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "check BOARD",
		Short: "Print the winner of a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameMode, err := opts.Modes.Get(mode)
			if err != nil {
				return err
			}

			board, err := gameMode.ParseBoard(args[0])
			if err != nil {
				return err
			}

			result := gameMode.Engine.CheckWinner(board)
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
			}

			renderBoard(cmd.OutOrStdout(), board, gameMode.Dimension, result.Line, false)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), describeResult(result))
			return err
		},
	}

	addModeFlag(cmd, &mode, opts.Defaults.Mode)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}
