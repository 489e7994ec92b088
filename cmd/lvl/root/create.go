package root

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/engine"
	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/ui"
)

func newCreateCmd(a *app) *cobra.Command {
	var class string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a character and make it active",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
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

			name, ok := engine.Catalog.ParseClassName(class)
			if !ok && strings.TrimSpace(class) != "" {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(fmt.Sprintf("%s Unknown class %q, using %s", ui.IconWarn, class, name)))
			}

			c, err := svc.CreateCharacter(ctx, engine.CreateCharacterInput{Name: args[0], Class: name})
			if err != nil {
				return err
			}
			def := c.Definition()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s the %s %s\n",
				ui.Good.Render(ui.IconSparkle+" Created"), ui.Muted.Render(fmt.Sprintf("#%d", c.ID)), c.Name, def.Icon, c.Class)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(def.Description))
			return nil
		},
	}

	cmd.Flags().StringVarP(&class, "class", "c", string(engine.DefaultClass), "Character class (see lvl classes)")
	return cmd
}

func newClassesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "List character classes",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSword, "Classes"))
			for _, name := range engine.Catalog.Names() {
				def := engine.Catalog.Get(name)
				fmt.Fprintln(out, "")
				fmt.Fprintf(out, "%s %s  %s\n", def.Icon, ui.H2.Render(string(def.Name)), ui.Muted.Render(def.Description))
				fmt.Fprintf(out, "  %s %s\n", ui.Key.Render("Base:"), formatStats(def.BaseStats, false))
				fmt.Fprintf(out, "  %s %s\n", ui.Key.Render("Growth:"), formatStats(def.GrowthStats, true))
				fmt.Fprintf(out, "  %s %s\n", ui.Key.Render("Bonus:"), formatBonus(def.CategoryBonus))
			}
			return nil
		},
	}
}

func formatStats(s engine.Stats, growth bool) string {
	var parts []string
	for _, st := range engine.AllStats {
		v, ok := s[st]
		if !ok {
			continue
		}
		if growth {
			parts = append(parts, fmt.Sprintf("%s +%d", st, v))
		} else {
			parts = append(parts, fmt.Sprintf("%s %d", st, v))
		}
	}
	return strings.Join(parts, ", ")
}

func formatBonus(b map[engine.Category]float64) string {
	cats := make([]string, 0, len(b))
	for c := range b {
		cats = append(cats, string(c))
	}
	sort.Slice(cats, func(i, j int) bool {
		bi, bj := b[engine.Category(cats[i])], b[engine.Category(cats[j])]
		if bi != bj {
			return bi > bj
		}
		return cats[i] < cats[j]
	})
	parts := make([]string, 0, len(cats))
	for _, c := range cats {
		parts = append(parts, fmt.Sprintf("%s x%.1f", c, b[engine.Category(c)]))
	}
	return strings.Join(parts, ", ")
}
