package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnavshah/roster-config-api/pkg/conflicts"
	"github.com/arnavshah/roster-config-api/pkg/estimate"
	"github.com/arnavshah/roster-config-api/pkg/models"
	"github.com/arnavshah/roster-config-api/pkg/normalize"
	"github.com/arnavshah/roster-config-api/pkg/presets"
	"github.com/arnavshah/roster-config-api/pkg/schema"
	"github.com/arnavshah/roster-config-api/pkg/solver"
)

func (a *App) checkCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Report schema errors, conflicts, health and cost",
		Long: `Check a configuration file. Errors are printed in red and warnings in yellow.

The command exits with status 1 when any error-level problem is found.
Use - to read the configuration from stdin.`,
		Example: `  shiftcfg check roster.json
  cat roster.json | shiftcfg check -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.readConfig(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fieldErrs := schema.Validate(cfg)
			items := conflicts.FindAllConflicts(cfg)

			if len(fieldErrs) > 0 {
				fmt.Fprintln(out, colorHeader.Sprint("Schema"))
				for _, fe := range fieldErrs {
					fmt.Fprintf(out, "  %s %s\n", colorError.Sprint("error"), fe.Error())
				}
			}

			if len(items) > 0 {
				fmt.Fprintln(out, colorHeader.Sprint("Conflicts"))
				for _, it := range items {
					if quiet && it.Severity != models.SeverityError {
						continue
					}
					label := colorWarning.Sprint("warning")
					if it.Severity == models.SeverityError {
						label = colorError.Sprint("error")
					}
					fmt.Fprintf(out, "  %s [%s] %s\n", label, it.Category, it.Message)
				}
			}

			health := estimate.CalculateCoverageHealth(cfg)
			cost := estimate.EstimateLaborCost(cfg)
			fmt.Fprintln(out, colorHeader.Sprint("Summary"))
			fmt.Fprintf(out, "  health  %d/100 %s\n", health.Score,
				colorMuted.Sprintf("(%d slots, %d understaffed, %d overstaffed)",
					health.TotalSlots, health.UnderstaffedSlots, health.OverstaffedSlots))
			fmt.Fprintf(out, "  cost    $%.2f/week minimum\n", cost.Total)

			if len(fieldErrs) > 0 || conflicts.HasErrors(items) {
				return ErrBlocking
			}
			fmt.Fprintln(out, colorOK.Sprint("OK"))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print error-level conflicts")
	return cmd
}

func (a *App) normalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <file>",
		Short: "Print the normalized configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.readConfig(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), normalize.NormalizeHumanConfig(cfg))
		},
	}
}

func (a *App) presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [name]",
		Short: "List presets, or print the default config with a preset applied",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				list, err := presets.List()
				if err != nil {
					return err
				}
				for _, p := range list {
					fmt.Fprintf(out, "%-16s %s\n", p.Name, colorMuted.Sprint(p.Description))
				}
				return nil
			}

			o, err := presets.Load(args[0])
			if err != nil {
				return err
			}
			return writeJSON(out, presets.Apply(models.Default(), o))
		},
	}
}

func (a *App) preflightCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preflight <file>",
		Short: "List coverage intervals the roster cannot staff",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.readConfig(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			gaps := solver.Preflight(normalize.NormalizeHumanConfig(cfg))
			if len(gaps) == 0 {
				fmt.Fprintln(out, colorOK.Sprint("Every interval can be staffed"))
				return nil
			}
			for _, g := range gaps {
				fmt.Fprintf(out, "%s %-9s %-11s %-10s missing %d  %s\n",
					colorWarning.Sprint("gap"), g.Day, g.TimeRange, g.RequiredRole, g.MissingStaff,
					colorMuted.Sprint(g.Reason))
			}
			return nil
		},
	}
}
