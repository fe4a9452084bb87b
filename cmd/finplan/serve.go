package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/finplan/internal/config"
	"github.com/rgehrsitz/finplan/internal/output"
	"github.com/rgehrsitz/finplan/internal/server"
	"github.com/rgehrsitz/finplan/internal/tui"
)

func serveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators as an HTTP JSON API",
		Long: `Serve the calculators as an HTTP JSON API.

Settings come from an optional config file overlaid with FINPLAN_* environment
variables (FINPLAN_ADDR, FINPLAN_SHUTDOWN_TIMEOUT, FINPLAN_LOG_LEVEL, FINPLAN_MAX_TRIALS).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.LoadServerConfig(path)
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Addr = addr
			}

			level, err := zerolog.ParseLevel(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
			}
			if a.debug {
				level = zerolog.DebugLevel
			}
			logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

			engine := a.newEngine()
			engine.SetLogger(zerologAdapter{logger: logger.With().Str("component", "calculation").Logger()})

			api := server.NewWebAPI(server.Config{
				Addr:            cfg.Addr,
				ShutdownTimeout: cfg.ShutdownTimeout,
				MaxTrials:       cfg.MaxTrials,
				Dependencies: server.Dependencies{
					Planner: engine,
					Logger:  logger,
				},
			})
			return api.Start()
		},
	}
	cmd.Flags().String("config", "", "Server config file (yaml, toml or json)")
	cmd.Flags().String("addr", "", "Listen address, overrides the config file")
	return cmd
}

func tuiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui <plan-file>",
		Short: "Browse a plan's results in an interactive terminal dashboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err != nil {
				return fmt.Errorf("plan file not found: %s", args[0])
			}
			p := tea.NewProgram(
				tui.NewModel(args[0], a.newEngine()),
				tea.WithAltScreen(),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
}

func settingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change saved preferences",
		Long: `Show or change saved preferences.

Examples:
  finplan settings
  finplan settings --format html --trials 2000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.settings
			changed := false

			if cmd.Flags().Changed("format") {
				name, _ := cmd.Flags().GetString("format")
				if output.GetFormatterByName(name) == nil {
					return fmt.Errorf("unknown output format %q (valid: %s)", name,
						strings.Join(output.AvailableFormatterNames(), ", "))
				}
				s.Output.Format = name
				changed = true
			}
			if cmd.Flags().Changed("trials") {
				s.Simulation.Trials, _ = cmd.Flags().GetInt("trials")
				changed = true
			}
			if cmd.Flags().Changed("seed") {
				s.Simulation.Seed, _ = cmd.Flags().GetInt64("seed")
				changed = true
			}

			if changed {
				if err := config.SaveSettings(s); err != nil {
					return err
				}
				a.settings = s
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", config.SettingsPath())
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Settings file: %s\n", config.SettingsPath())
			fmt.Fprintf(out, "  output.format:     %s\n", s.Output.Format)
			fmt.Fprintf(out, "  simulation.trials: %d\n", s.Simulation.Trials)
			fmt.Fprintf(out, "  simulation.seed:   %d\n", s.Simulation.Seed)
			return nil
		},
	}
	cmd.Flags().String("format", "", "Default report format")
	cmd.Flags().Int("trials", 0, "Default number of scenario trials")
	cmd.Flags().Int64("seed", 0, "Default trial seed (0 = fresh each run)")
	return cmd
}
