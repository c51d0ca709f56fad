package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

// spinnerCharSet is the dots spinner.
const spinnerCharSet = 11

func newSelfPlayCommand(opts Options) *cobra.Command {
	var (
		mode        string
		games       int
		engineOpens bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "selfplay",
		Short: "Let the engine play against itself",
		Long: heredoc.Doc(`selfplay plays the engine against itself once per opening
			cell and prints the tally of X wins, O wins and draws.

			Use --games to limit the run to the first N openings and
			--engine-opens to let the engine choose the first move.`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			openings := []int{usecase.EngineOpens}
			if !engineOpens {
				all, err := opts.SelfPlay.AllOpenings(mode)
				if err != nil {
					return err
				}
				openings = all
				if games > 0 && games < len(openings) {
					openings = openings[:games]
				}
			}

			s := spinner.New(spinner.CharSets[spinnerCharSet], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
			s.Suffix = " playing..."
			s.Start()

			report, err := opts.SelfPlay.Run(cmd.Context(), mode, openings, func(done, total int) {
				s.Lock()
				s.Suffix = fmt.Sprintf(" game %d/%d", done, total)
				s.Unlock()
			})
			s.Stop()
			if err != nil {
				return err
			}

			if asJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(report)
			}

			return printReport(cmd.OutOrStdout(), report)
		},
	}

	addModeFlag(cmd, &mode, opts.Defaults.Mode)
	cmd.Flags().IntVarP(&games, "games", "n", 0, "play only the first N openings (0 plays all)")
	cmd.Flags().BoolVar(&engineOpens, "engine-opens", false, "let the engine make the first move")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	return cmd
}

func printReport(w io.Writer, report *usecase.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "OPENING\tWINNER\tMOVES")
	for _, game := range report.Games {
		opening := "engine"
		if game.Opening != usecase.EngineOpens {
			opening = fmt.Sprint(game.Opening)
		}
		fmt.Fprintf(tw, "%s\t%s\t%v\n", opening, game.Winner, game.Moves)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	_, err := fmt.Fprintf(w, "\n%s: X %d, O %d, draws %d\n", report.Mode, report.XWins, report.OWins, report.Draws)
	return err
}
