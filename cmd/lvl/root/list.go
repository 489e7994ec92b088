package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/engine"
	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/ui"
)

func newListCmd(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks of the active character",
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
			tasks, err := svc.ListTasks(ctx, all)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Quest Log"))
			if len(tasks) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(empty) add one with: lvl add \"title\""))
				return nil
			}
			now := time.Now()
			for i := range tasks {
				fmt.Fprintln(out, taskLine(&tasks[i], c.Class, now))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed and failed tasks")
	return cmd
}

func taskLine(t *engine.Task, class engine.ClassName, now time.Time) string {
	xp := fmt.Sprintf("+%d XP", t.XPReward)
	if t.Status.IsOpen() {
		xp = fmt.Sprintf("~%d XP", engine.PreviewXP(t, class))
	}
	line := fmt.Sprintf("%s %s %s %s %s %s",
		ui.Muted.Render(fmt.Sprintf("#%-3d", t.ID)),
		t.Title,
		ui.DifficultyText(string(t.Difficulty)),
		ui.Muted.Render(string(t.Category)),
		ui.StatusText(string(t.Status)),
		ui.Gold.Render(xp))
	if t.ActualHours > 0 {
		line += ui.Muted.Render(fmt.Sprintf(" %.2fh", t.ActualHours))
	}
	if t.Deadline != nil {
		due := ui.Muted.Render(" due " + t.Deadline.Local().Format(dueLayout))
		if t.IsOverdue(now) {
			due = ui.Bad.Render(" overdue " + t.Deadline.Local().Format(dueLayout))
		}
		line += due
	}
	return line
}
