package root

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/engine"
	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/ui"
)

func newStatusCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the active character sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			c, err := svc.ActiveCharacter(ctx)
			if err != nil {
				return err
			}
			def := c.Definition()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(def.Icon, c.Name))
			fmt.Fprintln(out, ui.LabelValue("Class", c.Class))
			fmt.Fprintln(out, ui.LabelValue("Level", c.Level))
			fmt.Fprintf(out, "%s %s %s/%s %s\n",
				ui.Key.Render("XP:"),
				ui.XPBar(c.CurrentXP, c.XPToNextLevel, 24),
				ui.Number(c.CurrentXP), ui.Number(c.XPToNextLevel),
				ui.Muted.Render(fmt.Sprintf("(%.0f%%)", c.Progress())))
			fmt.Fprintln(out, ui.LabelValue("Lifetime XP", ui.Number(c.TotalXP)))
			standings, err := svc.Standings(ctx)
			if err != nil {
				return err
			}
			for _, st := range standings {
				if st.CharacterID == c.ID {
					fmt.Fprintln(out, ui.LabelValue("Rank", fmt.Sprintf("#%d of %d", st.Rank, len(standings))))
				}
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Stats"))
			for _, st := range engine.AllStats {
				growth := ""
				if g, ok := def.GrowthStats[st]; ok {
					growth = ui.Muted.Render(fmt.Sprintf("(+%d/level)", g))
				}
				fmt.Fprintf(out, "- %-12s %3d %s\n", st, c.Stats[st], growth)
			}
			fmt.Fprintln(out, "")

			tasks, err := svc.ListTasks(ctx, true)
			if err != nil {
				return err
			}
			var open, done, failed int
			for _, t := range tasks {
				switch t.Status {
				case engine.StatusCompleted:
					done++
				case engine.StatusFailed:
					failed++
				default:
					open++
				}
			}
			fmt.Fprintln(out, ui.H2.Render("📜 Quests"))
			fmt.Fprintf(out, "- %s %d  %s %d  %s %d\n",
				ui.Key.Render("open:"), open, ui.Key.Render("completed:"), done, ui.Key.Render("failed:"), failed)

			counts, err := svc.CategoryCounts(ctx)
			if err != nil {
				return err
			}
			cats := make([]engine.Category, 0, len(counts))
			for cat := range counts {
				cats = append(cats, cat)
			}
			sort.Slice(cats, func(i, j int) bool {
				if counts[cats[i]] != counts[cats[j]] {
					return counts[cats[i]] > counts[cats[j]]
				}
				return cats[i] < cats[j]
			})
			for _, cat := range cats {
				bonus := ""
				if b := engine.Catalog.BonusFor(c.Class, cat); b != 1.0 {
					bonus = ui.Gold.Render(fmt.Sprintf("x%.1f", b))
				}
				fmt.Fprintf(out, "  %s %d %s\n", ui.Muted.Render(string(cat)+":"), counts[cat], bonus)
			}

			badges, err := svc.Achievements(ctx)
			if err != nil {
				return err
			}
			earned := 0
			for _, b := range badges {
				if b.Earned {
					earned++
				}
			}
			fmt.Fprintf(out, "- %s %d/%d\n", ui.Key.Render("achievements:"), earned, len(badges))
			return nil
		},
	}

	return cmd
}
