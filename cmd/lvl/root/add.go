package root

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/engine"
	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/ui"
)

const dueLayout = "2006-01-02"

func newAddCmd(a *app) *cobra.Command {
	var (
		diff     string
		category string
		estimate float64
		priority int
		due      string
		desc     string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task for the active character",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var deadline *time.Time
			if strings.TrimSpace(due) != "" {
				d, err := time.ParseInLocation(dueLayout, strings.TrimSpace(due), time.Local)
				if err != nil {
					return fmt.Errorf("due must be %s: %w", dueLayout, err)
				}
				end := d.Add(24*time.Hour - time.Second).UTC()
				deadline = &end
			}
			if category == "" {
				category = a.cfg.DefaultCategory
			}

			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			t, err := svc.CreateTask(ctx, engine.CreateTaskInput{
				Title:          args[0],
				Description:    desc,
				Difficulty:     engine.ParseDifficulty(diff),
				Category:       engine.Category(category),
				EstimatedHours: estimate,
				Priority:       priority,
				Deadline:       deadline,
			})
			if err != nil {
				return err
			}

			c, err := svc.ActiveCharacter(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconPlus+" Added"),
				ui.Muted.Render(fmt.Sprintf("#%d", t.ID)),
				t.Title,
				ui.Muted.Render(fmt.Sprintf("[%s/%s] worth %d XP now", t.Difficulty, t.Category, engine.PreviewXP(t, c.Class))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&diff, "diff", "d", string(engine.DefaultDifficulty), "Difficulty (easy|medium|hard|daunting or 1-4)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (Programming, Learning, Health, Work, ...)")
	cmd.Flags().Float64VarP(&estimate, "estimate", "e", 0, "Estimated hours")
	cmd.Flags().IntVarP(&priority, "priority", "p", engine.DefaultPriority, "Priority (higher first)")
	cmd.Flags().StringVar(&due, "due", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	return cmd
}
