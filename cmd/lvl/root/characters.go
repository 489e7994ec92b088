package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/ui"
)

func newCharactersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "characters",
		Short: "List characters",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			chars, err := svc.ListCharacters(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(chars) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No characters yet. Create one with: lvl create <name>"))
				return nil
			}
			var activeID int64
			if active, err := svc.ActiveCharacter(ctx); err == nil {
				activeID = active.ID
			}
			fmt.Fprintln(out, ui.Heading(ui.IconSword, "Characters"))
			for _, c := range chars {
				marker := "  "
				if c.ID == activeID {
					marker = ui.Good.Render("* ")
				}
				fmt.Fprintf(out, "%s%s %s %s %s\n", marker, ui.Muted.Render(fmt.Sprintf("#%d", c.ID)), c.Name,
					ui.Muted.Render(string(c.Class)), ui.Key.Render(fmt.Sprintf("L%d", c.Level)))
			}
			return nil
		},
	}
}

func newSwitchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "switch <id>",
		Short: "Make another character active",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			c, err := svc.SwitchCharacter(ctx, parseID(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s, level %d)\n", ui.Good.Render(ui.IconBolt+" Now playing"), c.Name, c.Class, c.Level)
			return nil
		},
	}
}
