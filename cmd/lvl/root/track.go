package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/ui"
)

func newStartCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "start <id>",
		Short: "Start working on a task (opens a time session)",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			t, err := svc.StartTask(ctx, parseID(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s\n", ui.H2.Render(ui.IconTimer+" Started"), t.ID, t.Title)
			return nil
		},
	}
}

func newStopCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stop <id>",
		Short: "Stop the running time session of a task",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.StopTask(ctx, parseID(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d after %s %s\n",
				ui.Good.Render(ui.IconTimer+" Stopped"), res.TaskID, res.Elapsed.Round(time.Second),
				ui.Muted.Render(fmt.Sprintf("(%.2fh logged)", res.ActualHours)))
			return nil
		},
	}
}

func newLogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "log <id> <hours>",
		Short: "Add worked hours to a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("id and hours are required")
			}
			if err := idArg(cmd, args[:1]); err != nil {
				return err
			}
			if _, err := strconv.ParseFloat(args[1], 64); err != nil {
				return errors.New("hours must be a number")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			hours, _ := strconv.ParseFloat(args[1], 64)
			t, err := svc.LogHours(ctx, parseID(args[0]), hours)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %.2fh on #%d %s\n",
				ui.Good.Render(ui.IconPlus+" Logged"), hours, t.ID, ui.Muted.Render(fmt.Sprintf("(%.2fh total)", t.ActualHours)))
			return nil
		},
	}
}
