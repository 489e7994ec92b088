package root

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/engine"
	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/ui"
)

func newDoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Complete a task and collect its XP",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id := parseID(args[0])
			before, err := svc.GetTask(ctx, id)
			if err != nil {
				return err
			}
			res, err := svc.CompleteTask(ctx, id)
			if err != nil {
				return err
			}
			printCompletion(cmd.OutOrStdout(), before.Title, res)
			return nil
		},
	}

	return cmd
}

func printCompletion(out io.Writer, title string, res *engine.CompleteResult) {
	fmt.Fprintf(out, "%s #%d %s %s\n", ui.Good.Render(ui.IconDone+" Completed"), res.TaskID, title,
		ui.Gold.Render(fmt.Sprintf("+%d XP", res.XPAwarded)))
	for _, ev := range res.LevelUps {
		fmt.Fprintf(out, "%s %s %s\n", ui.BadgeLevelUp, ui.Key.Render(fmt.Sprintf("Level %d!", ev.Level)), ui.Muted.Render(formatDeltas(ev.StatDeltas)))
	}
	c := res.Character
	if c != nil {
		fmt.Fprintf(out, "%s %s/%s\n", ui.XPBar(c.CurrentXP, c.XPToNextLevel, 24), ui.Number(c.CurrentXP), ui.Number(c.XPToNextLevel))
	}
	for _, b := range res.Unlocked {
		fmt.Fprintf(out, "%s %s %s %s\n", ui.Gold.Render(ui.IconTrophy+" Achievement"), b.Icon, b.Name, ui.Muted.Render(b.Description))
	}
}

func formatDeltas(d engine.Stats) string {
	var parts []string
	for _, st := range engine.AllStats {
		if v, ok := d[st]; ok {
			parts = append(parts, fmt.Sprintf("%s +%d", st, v))
		}
	}
	return strings.Join(parts, ", ")
}

func newFailCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fail <id>",
		Short: "Mark a task as failed",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			t, err := svc.FailTask(ctx, parseID(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s\n", ui.Bad.Render(ui.IconFail+" Failed"), t.ID, t.Title)
			return nil
		},
	}
}

func newPreviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <id>",
		Short: "Show the XP a task would grant if completed now",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id := parseID(args[0])
			t, err := svc.GetTask(ctx, id)
			if err != nil {
				return err
			}
			c, err := svc.ActiveCharacter(ctx)
			if err != nil {
				return err
			}
			xp, err := svc.PreviewXP(ctx, id)
			if err != nil {
				return err
			}
			tracked, err := svc.TrackedTime(ctx, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s #%d %s\n", ui.H2.Render(ui.IconBolt+" Preview"), t.ID, t.Title)
			fmt.Fprintln(out, ui.LabelValue("Base", fmt.Sprintf("%d (%s)", engine.BaseXPFor(t.Difficulty), t.Difficulty)))
			fmt.Fprintln(out, ui.LabelValue("Time", fmt.Sprintf("x%.2f (%.2fh, %s tracked by timer)", engine.TimeMultiplier(t.ActualHours), t.ActualHours, tracked)))
			fmt.Fprintln(out, ui.LabelValue("Class", fmt.Sprintf("x%.2f (%s, %s)", engine.Catalog.BonusFor(c.Class, t.Category), c.Class, t.Category)))
			fmt.Fprintln(out, ui.LabelValue("Reward", ui.Gold.Render(fmt.Sprintf("%d XP", xp))))
			return nil
		},
	}
}
