package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/tui"
	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/ui"
)

func newTimerCmd(a *app) *cobra.Command {
	var taskID int64

	cmd := &cobra.Command{
		Use:   "timer <HH:MM:SS>",
		Short: "Run a countdown, optionally logging the time on a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("duration is required")
			}
			_, err := tui.ParseCountdown(args[0])
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, _ := tui.ParseCountdown(args[0])

			label := "Countdown"
			if taskID == 0 {
				res, err := tui.RunTimer(label, d, cmd.OutOrStdout())
				if err != nil {
					return err
				}
				printTimer(cmd, res)
				return nil
			}

			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			t, err := svc.GetTask(ctx, taskID)
			if err != nil {
				return err
			}
			res, err := tui.RunTimer(fmt.Sprintf("#%d %s", t.ID, t.Title), d, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			printTimer(cmd, res)
			if !res.Finished {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Stopped early, nothing logged."))
				return nil
			}
			t, err = svc.LogHours(ctx, taskID, res.Elapsed.Hours())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %.2fh on #%d %s\n",
				ui.Good.Render(ui.IconPlus+" Logged"), res.Elapsed.Hours(), t.ID, ui.Muted.Render(fmt.Sprintf("(%.2fh total)", t.ActualHours)))
			return nil
		},
	}

	cmd.Flags().Int64VarP(&taskID, "task", "t", 0, "Task to log the time on when the countdown finishes")
	return cmd
}

func printTimer(cmd *cobra.Command, res tui.TimerResult) {
	if res.Finished {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconTimer+" Done"), tui.FormatClock(res.Elapsed))
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s after %s\n", ui.Warn.Render(ui.IconTimer+" Stopped"), res.Elapsed.Round(time.Second))
}
