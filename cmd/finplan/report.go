package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/output"
	"github.com/rgehrsitz/finplan/internal/tui"
)

// formatFlag registers --format with the user's default format
func formatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "",
		fmt.Sprintf("Output format (%s; default from settings)", strings.Join(output.AvailableFormatterNames(), ", ")))
}

// writeReport renders report in the requested format to stdout, or to a
// timestamped file when save is set
func (a *app) writeReport(cmd *cobra.Command, report *domain.Report, save bool) error {
	name, _ := cmd.Flags().GetString("format")
	if name == "" {
		name = a.settings.Output.Format
	}
	f := output.GetFormatterByName(name)
	if f == nil {
		return fmt.Errorf("unknown output format %q (valid: %s; aliases: %s)", name,
			strings.Join(output.AvailableFormatterNames(), ", "),
			strings.Join(output.AvailableFormatAliases(), ", "))
	}

	if save {
		filename, err := output.WriteFormatted(f, report, output.ExtensionFor(name))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
		return nil
	}

	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func newReport(source string) *domain.Report {
	return &domain.Report{
		GeneratedAt: time.Now(),
		Source:      source,
		Assumptions: calculation.Assumptions(),
	}
}

func missingSection(path, section string) error {
	return fmt.Errorf("%s has no %s section", path, section)
}

func scoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score [plan-file]",
		Short: "Score financial health from the plan's snapshot section",
		Long: `Score financial health (0-100) from a monthly snapshot of income, expenses,
debt, savings and emergency fund.

Examples:
  finplan score plan.yaml
  finplan score --interactive`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			interactive, _ := cmd.Flags().GetBool("interactive")

			var snapshot domain.FinancialSnapshot
			source := "interactive"
			switch {
			case interactive:
				var values tui.SnapshotFormValues
				if err := tui.NewSnapshotForm(&values).Run(); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						return nil
					}
					return err
				}
				s, err := values.Snapshot()
				if err != nil {
					return err
				}
				snapshot = s
			case len(args) == 1:
				cfg, err := a.loadPlan(args[0])
				if err != nil {
					return err
				}
				if cfg.Snapshot == nil {
					return missingSection(args[0], "snapshot")
				}
				snapshot = *cfg.Snapshot
				source = args[0]
			default:
				return errors.New("plan file required (or use --interactive)")
			}

			assessment, err := a.newEngine().HealthScore(snapshot)
			if err != nil {
				return err
			}
			report := newReport(source)
			report.Health = assessment
			return a.writeReport(cmd, report, false)
		},
	}
	cmd.Flags().BoolP("interactive", "i", false, "Answer a questionnaire instead of reading a plan file")
	formatFlag(cmd)
	return cmd
}

func goalCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal <plan-file>",
		Short: "Build a monthly savings plan toward the plan's goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadPlan(args[0])
			if err != nil {
				return err
			}
			if cfg.Goal == nil {
				return missingSection(args[0], "goal")
			}
			plan, err := a.newEngine().GoalPlan(*cfg.Goal)
			if err != nil {
				return err
			}
			report := newReport(args[0])
			report.Goal = plan
			return a.writeReport(cmd, report, false)
		},
	}
	formatFlag(cmd)
	return cmd
}

func retireCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retire <plan-file>",
		Short: "Project wealth to retirement age from the plan's wealth section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadPlan(args[0])
			if err != nil {
				return err
			}
			if cfg.Wealth == nil {
				return missingSection(args[0], "wealth")
			}
			plan, err := a.newEngine().Retirement(*cfg.Wealth)
			if err != nil {
				return err
			}
			report := newReport(args[0])
			report.Wealth = plan
			return a.writeReport(cmd, report, false)
		},
	}
	formatFlag(cmd)
	return cmd
}

func reportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <plan-file>",
		Short: "Run every section of a plan file and produce a combined report",
		Long: `Run every section of a plan file and produce a combined report.

Examples:
  finplan report plan.yaml
  finplan report plan.yaml --format html --save
  finplan report plan.yaml --format csv > report.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadPlan(args[0])
			if err != nil {
				return err
			}
			report, err := a.newEngine().RunConfiguration(cfg, args[0])
			if err != nil {
				return err
			}
			save, _ := cmd.Flags().GetBool("save")
			return a.writeReport(cmd, report, save)
		},
	}
	formatFlag(cmd)
	cmd.Flags().Bool("save", false, "Write the report to financial_report_<timestamp>.<ext> instead of stdout")
	return cmd
}

func validateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <plan-file>",
		Short: "Validate a plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadPlan(args[0])
			if err != nil {
				return err
			}

			var sections []string
			if cfg.Snapshot != nil {
				sections = append(sections, "snapshot")
			}
			if cfg.Goal != nil {
				sections = append(sections, "goal")
			}
			if cfg.Scenario != nil {
				sections = append(sections, "scenario")
			}
			if cfg.Wealth != nil {
				sections = append(sections, "wealth")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plan file %s is valid (sections: %s)\n", args[0], strings.Join(sections, ", "))

			if out, _ := cmd.Flags().GetString("normalize"); out != "" {
				if err := output.SaveConfiguration(cfg, out); err != nil {
					return fmt.Errorf("failed to write %s: %w", out, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Normalized plan written to %s\n", out)
			}
			return nil
		},
	}
	cmd.Flags().String("normalize", "", "Also write the parsed plan back out as canonical YAML to this path")
	return cmd
}
