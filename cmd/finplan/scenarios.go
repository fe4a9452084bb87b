package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/compare"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/output"
	"github.com/rgehrsitz/finplan/internal/transform"
)

// writeComparison renders a comparison set as table, csv or json
func writeComparison(w io.Writer, cs *compare.ComparisonSet, format string) error {
	switch strings.ToLower(format) {
	case "csv":
		out, err := (&compare.CSVFormatter{}).Format(cs)
		if err != nil {
			return fmt.Errorf("failed to format CSV: %w", err)
		}
		_, err = io.WriteString(w, out)
		return err

	case "json":
		out, err := (&compare.JSONFormatter{Pretty: true}).Format(cs)
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		_, err = io.WriteString(w, out)
		return err

	case "table", "console", "":
		_, err := io.WriteString(w, (&compare.TableFormatter{}).Format(cs))
		return err

	case "compact":
		_, err := io.WriteString(w, (&compare.TableFormatter{}).FormatCompact(cs))
		return err

	default:
		return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", format)
	}
}

func (a *app) loadScenario(path string) (domain.ScenarioRequest, error) {
	cfg, err := a.loadPlan(path)
	if err != nil {
		return domain.ScenarioRequest{}, err
	}
	if cfg.Scenario == nil {
		return domain.ScenarioRequest{}, missingSection(path, "scenario")
	}
	return *cfg.Scenario, nil
}

func scenariosCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenarios <plan-file>",
		Short: "Project the plan's investment scenario across the three risk tiers",
		Long: `Project an investment across the conservative, moderate and aggressive risk
tiers and compare the other tiers against a base tier.

Examples:
  finplan scenarios plan.yaml
  finplan scenarios plan.yaml --base conservative --seed 42
  finplan scenarios plan.yaml --format csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.loadScenario(args[0])
			if err != nil {
				return err
			}
			seed, _ := cmd.Flags().GetInt64("seed")
			baseName, _ := cmd.Flags().GetString("base")
			format, _ := cmd.Flags().GetString("format")

			base, err := domain.ParseRiskTier(baseName)
			if err != nil {
				return err
			}

			engine := a.newEngine()
			comparison, err := engine.SeededScenarios(req, seed)
			if err != nil {
				return err
			}
			cs, err := compare.NewCompareEngine(engine).CompareTierResults(comparison, base)
			if err != nil {
				return err
			}
			cs.ConfigPath = args[0]
			return writeComparison(cmd.OutOrStdout(), cs, format)
		},
	}
	cmd.Flags().Int64("seed", 0, "Random seed for reproducible projections (0 = fresh each run)")
	cmd.Flags().String("base", string(domain.TierModerate), "Tier the others are compared against")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	return cmd
}

func trialsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trials <plan-file>",
		Short: "Run the scenario projection many times and summarize the outcomes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.loadScenario(args[0])
			if err != nil {
				return err
			}

			cfg := calculation.TrialConfig{
				NumTrials: a.settings.Simulation.Trials,
				Seed:      a.settings.Simulation.Seed,
			}
			if cmd.Flags().Changed("trials") {
				cfg.NumTrials, _ = cmd.Flags().GetInt("trials")
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed, _ = cmd.Flags().GetInt64("seed")
			}
			cfg.Workers, _ = cmd.Flags().GetInt("workers")

			result, err := a.newEngine().Trials(cmd.Context(), req, cfg)
			if err != nil {
				return err
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			writeTrials(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().Int("trials", calculation.DefaultTrials, "Number of trials (default from settings)")
	cmd.Flags().Int64("seed", 0, "Base seed; 0 picks one and reports it")
	cmd.Flags().Int("workers", 0, "Worker goroutines (0 = number of CPUs)")
	cmd.Flags().Bool("json", false, "Print the full result as JSON")
	return cmd
}

func writeTrials(w io.Writer, r *domain.TrialResult) {
	fmt.Fprintf(w, "SCENARIO TRIALS\n")
	fmt.Fprintf(w, "===============\n")
	fmt.Fprintf(w, "%d trials, seed %d, %d years, %s contributed\n\n",
		r.NumTrials, r.Seed, r.Request.DurationYears, output.FormatCurrency(r.TotalContributed))

	fmt.Fprintf(w, "%-14s %14s %14s %14s %14s %9s\n", "Tier", "Mean", "P10", "Median", "P90", "P(gain)")
	fmt.Fprintln(w, strings.Repeat("-", 84))
	for _, s := range r.Tiers {
		fmt.Fprintf(w, "%-14s %14s %14s %14s %14s %9s\n", s.Tier.Title(),
			output.FormatCurrency(s.MeanFinalValue),
			output.FormatCurrency(s.Percentiles.P10),
			output.FormatCurrency(s.MedianFinalValue),
			output.FormatCurrency(s.Percentiles.P90),
			output.FormatFraction(s.ProbabilityOfGain))
	}
}

func whatIfCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "what-if <plan-file>",
		Short: "Compare the plan's retirement projection against what-if templates",
		Long: `Apply what-if templates or ad-hoc transforms to the plan's wealth profile and
compare each projected retirement total against the unchanged plan.

Examples:
  finplan what-if plan.yaml --with retire_later_2yr,save_more_10pct
  finplan what-if plan.yaml --transform postpone_retirement:years=3 --transform set_risk:tier=aggressive
  finplan what-if --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				fmt.Fprintf(cmd.OutOrStdout(), "\nTransforms for --transform: %s\n",
					strings.Join(transform.NewTransformRegistry().List(), ", "))
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("plan file required for comparison (use --list-templates to see available templates)")
			}

			cfg, err := a.loadPlan(args[0])
			if err != nil {
				return err
			}
			if cfg.Wealth == nil {
				return missingSection(args[0], "wealth")
			}

			with, _ := cmd.Flags().GetString("with")
			specs, _ := cmd.Flags().GetStringArray("transform")
			format, _ := cmd.Flags().GetString("format")

			engine := compare.NewCompareEngine(a.newEngine())
			var cs *compare.ComparisonSet
			switch {
			case len(specs) > 0:
				registry := transform.NewTransformRegistry()
				transforms := make([]transform.ProfileTransform, 0, len(specs))
				for _, spec := range specs {
					t, err := registry.ParseTransformSpec(spec)
					if err != nil {
						return err
					}
					transforms = append(transforms, t)
				}
				cs, err = engine.CompareTransforms(*cfg.Wealth, transforms)
			case with != "":
				names := transform.ParseTemplateList(with)
				if len(names) == 0 {
					return fmt.Errorf("no valid templates specified in --with")
				}
				cs, err = engine.CompareWhatIf(*cfg.Wealth, names)
			default:
				return fmt.Errorf("--with or --transform is required (or use --list-templates)")
			}
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}

			cs.ConfigPath = args[0]
			return writeComparison(cmd.OutOrStdout(), cs, format)
		},
	}
	cmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringArray("transform", nil, "Ad-hoc transform spec name:key=value (repeatable)")
	cmd.Flags().Bool("list-templates", false, "List all available what-if templates")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	return cmd
}
