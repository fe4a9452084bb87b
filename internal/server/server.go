package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/domain"
	finmiddleware "github.com/rgehrsitz/finplan/internal/server/middleware"
)

// Planner is the calculation surface the API exposes.
// *calculation.CalculationEngine satisfies it.
type Planner interface {
	HealthScore(s domain.FinancialSnapshot) (*domain.HealthAssessment, error)
	GoalPlan(req domain.GoalRequest) (*domain.GoalPlan, error)
	SeededScenarios(req domain.ScenarioRequest, seed int64) (*domain.ScenarioComparison, error)
	Trials(ctx context.Context, req domain.ScenarioRequest, cfg calculation.TrialConfig) (*domain.TrialResult, error)
	Retirement(p domain.WealthProfile) (*domain.WealthPlan, error)
}

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server
	config Config
}

type Dependencies struct {
	Planner Planner
	Logger  zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	// MaxTrials caps the trial count a single request may ask for
	MaxTrials    int
	Dependencies Dependencies
}

// ConfigureRouter builds the chi router with middleware and all routes
func ConfigureRouter(config Config) *chi.Mux {
	logger := config.Dependencies.Logger
	h := NewHandler(config.Dependencies.Planner, config.MaxTrials)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(finmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", h.Healthz)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/risk-profiles", h.ListRiskProfiles)
		r.Post("/health-score", h.HealthScore)
		r.Post("/goal-plan", h.GoalPlan)
		r.Post("/scenarios", h.Scenarios)
		r.Post("/scenarios/trials", h.Trials)
		r.Post("/retirement", h.Retirement)
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	return &WebAPI{
		router: router,
		logger: &logger,
		config: config,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case sig := <-shutdown:
		w.logger.Info().Str("signal", sig.String()).Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		timeout := w.config.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
