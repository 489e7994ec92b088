package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/ui"
)

func newLeaderboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Rank all local characters",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			board, err := svc.Leaderboard(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Leaderboard"))
			if len(board) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no characters)"))
				return nil
			}
			for _, s := range board {
				rank := fmt.Sprintf("%2d.", s.Rank)
				if s.Rank == 1 {
					rank = ui.Gold.Render(rank)
				}
				fmt.Fprintf(out, "%s %-20s %s %s %s\n", rank, s.Name,
					ui.Muted.Render(string(s.Class)), ui.Key.Render(fmt.Sprintf("L%d", s.Level)),
					ui.Muted.Render(ui.Number(s.TotalXP)+" XP"))
			}
			return nil
		},
	}
}
