package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/ui"
)

func newAchievementsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "Show earned and locked achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			badges, err := svc.Achievements(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Achievements"))
			for _, b := range badges {
				if b.Earned {
					when := ""
					if b.EarnedAt != nil {
						when = ui.Muted.Render(b.EarnedAt.Local().Format("2006-01-02"))
					}
					fmt.Fprintf(out, "%s %s %s %s\n", b.Icon, ui.Good.Render(b.Name), ui.Muted.Render(b.Description), when)
					continue
				}
				fmt.Fprintf(out, "🔒 %s %s\n", ui.Dim.Render(b.Name), ui.Muted.Render(b.Description))
			}
			return nil
		},
	}
}
