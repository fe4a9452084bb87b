package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/config"
	"github.com/rgehrsitz/finplan/internal/domain"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// zerologAdapter implements calculation.Logger on top of zerolog
type zerologAdapter struct {
	logger zerolog.Logger
}

func (z zerologAdapter) Debugf(format string, args ...any) { z.logger.Debug().Msgf(format, args...) }
func (z zerologAdapter) Infof(format string, args ...any)  { z.logger.Info().Msgf(format, args...) }
func (z zerologAdapter) Warnf(format string, args ...any)  { z.logger.Warn().Msgf(format, args...) }
func (z zerologAdapter) Errorf(format string, args ...any) { z.logger.Error().Msgf(format, args...) }

// app holds state shared by every command of one invocation
type app struct {
	debug    bool
	settings config.Settings
	logger   zerolog.Logger
}

// newEngine returns a calculation engine, logging through zerolog when --debug is set
func (a *app) newEngine() *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	if a.debug {
		engine.SetLogger(zerologAdapter{logger: a.logger})
	}
	return engine
}

func (a *app) loadPlan(path string) (*domain.Configuration, error) {
	cfg, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug().Str("plan", path).Msg("plan loaded")
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	a := &app{
		settings: config.DefaultSettings(),
		logger:   zerolog.Nop(),
	}

	root := &cobra.Command{
		Use:   "finplan",
		Short: "Personal financial planning calculator",
		Long: `Score a household's financial health, build a savings plan toward a goal,
project investments across conservative, moderate and aggressive risk tiers,
and project wealth to retirement age.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if a.debug {
				level = zerolog.DebugLevel
			}
			a.logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
				Level(level).
				With().Timestamp().Logger()

			settings, err := config.LoadSettings()
			if err != nil {
				a.logger.Warn().Err(err).Str("path", config.SettingsPath()).Msg("ignoring unreadable settings file")
			}
			a.settings = settings
		},
	}
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging of calculations")

	root.AddCommand(
		scoreCmd(a),
		goalCmd(a),
		scenariosCmd(a),
		trialsCmd(a),
		retireCmd(a),
		whatIfCmd(a),
		reportCmd(a),
		validateCmd(a),
		settingsCmd(a),
		serveCmd(a),
		tuiCmd(a),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "finplan %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" && version == "dev" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
