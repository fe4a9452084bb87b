package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/domain"
)

type mockPlanner struct {
	mock.Mock
}

func (m *mockPlanner) HealthScore(s domain.FinancialSnapshot) (*domain.HealthAssessment, error) {
	args := m.Called(s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HealthAssessment), args.Error(1)
}

func (m *mockPlanner) GoalPlan(req domain.GoalRequest) (*domain.GoalPlan, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoalPlan), args.Error(1)
}

func (m *mockPlanner) SeededScenarios(req domain.ScenarioRequest, seed int64) (*domain.ScenarioComparison, error) {
	args := m.Called(req, seed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScenarioComparison), args.Error(1)
}

func (m *mockPlanner) Trials(ctx context.Context, req domain.ScenarioRequest, cfg calculation.TrialConfig) (*domain.TrialResult, error) {
	args := m.Called(ctx, req, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialResult), args.Error(1)
}

func (m *mockPlanner) Retirement(p domain.WealthProfile) (*domain.WealthPlan, error) {
	args := m.Called(p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WealthPlan), args.Error(1)
}

func scenarioMatching(initial int64, years int) interface{} {
	return mock.MatchedBy(func(req domain.ScenarioRequest) bool {
		return req.InitialAmount.Equal(decimal.NewFromInt(initial)) && req.DurationYears == years
	})
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		setupMocks     func(m *mockPlanner)
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name:           "Healthz",
			method:         http.MethodGet,
			path:           "/healthz",
			setupMocks:     func(m *mockPlanner) {},
			expectedStatus: http.StatusOK,
			expected:       map[string]string{"status": "ok"},
			parseResponse:  unmarshalResponse[map[string]string](),
		},
		{
			name:           "ListRiskProfiles",
			method:         http.MethodGet,
			path:           "/api/v1/risk-profiles",
			setupMocks:     func(m *mockPlanner) {},
			expectedStatus: http.StatusOK,
			expected:       []domain.RiskTier{domain.TierConservative, domain.TierModerate, domain.TierAggressive},
			parseResponse: func(b []byte) (interface{}, error) {
				var profiles []domain.RiskProfile
				if err := json.Unmarshal(b, &profiles); err != nil {
					return nil, err
				}
				tiers := make([]domain.RiskTier, 0, len(profiles))
				for _, p := range profiles {
					tiers = append(tiers, p.Tier)
				}
				return tiers, nil
			},
		},
		{
			name:   "HealthScore",
			method: http.MethodPost,
			path:   "/api/v1/health-score",
			body:   `{"monthlyIncome":"5000","monthlyExpenses":"3000","totalDebt":"0","savingsAmount":"10000","emergencyFundMonths":"6"}`,
			setupMocks: func(m *mockPlanner) {
				m.On("HealthScore", mock.MatchedBy(func(s domain.FinancialSnapshot) bool {
					return s.MonthlyIncome.Equal(decimal.NewFromInt(5000))
				})).Return(&domain.HealthAssessment{Score: 85, Category: domain.CategoryExcellent}, nil)
			},
			expectedStatus: http.StatusOK,
			expected:       85,
			parseResponse: func(b []byte) (interface{}, error) {
				var a domain.HealthAssessment
				err := json.Unmarshal(b, &a)
				return a.Score, err
			},
		},
		{
			name:   "HealthScoreInvalidInput",
			method: http.MethodPost,
			path:   "/api/v1/health-score",
			body:   `{"monthlyIncome":"0"}`,
			setupMocks: func(m *mockPlanner) {
				m.On("HealthScore", mock.Anything).
					Return(nil, domain.NewInvalidInputError("monthly_income", "must be positive"))
			},
			expectedStatus: http.StatusBadRequest,
			expected:       errorResponse{Error: "invalid input: monthly_income must be positive"},
			parseResponse:  unmarshalResponse[errorResponse](),
		},
		{
			name:           "HealthScoreMalformedBody",
			method:         http.MethodPost,
			path:           "/api/v1/health-score",
			body:           `{"monthlyIncome":`,
			setupMocks:     func(m *mockPlanner) {},
			expectedStatus: http.StatusBadRequest,
			expected:       true,
			parseResponse: func(b []byte) (interface{}, error) {
				var e errorResponse
				err := json.Unmarshal(b, &e)
				return strings.HasPrefix(e.Error, "invalid request body"), err
			},
		},
		{
			name:           "HealthScoreUnknownField",
			method:         http.MethodPost,
			path:           "/api/v1/health-score",
			body:           `{"salary":"5000"}`,
			setupMocks:     func(m *mockPlanner) {},
			expectedStatus: http.StatusBadRequest,
			expected:       true,
			parseResponse: func(b []byte) (interface{}, error) {
				var e errorResponse
				err := json.Unmarshal(b, &e)
				return strings.Contains(e.Error, "salary"), err
			},
		},
		{
			name:   "GoalPlan",
			method: http.MethodPost,
			path:   "/api/v1/goal-plan",
			body:   `{"age":30,"income":"60000","currentSavings":"5000","targetGoal":"home","targetAmount":"50000","timeHorizonYears":5,"riskTolerance":"moderate"}`,
			setupMocks: func(m *mockPlanner) {
				m.On("GoalPlan", mock.MatchedBy(func(req domain.GoalRequest) bool {
					return req.TargetGoal == domain.GoalHome && req.TimeHorizonYears == 5
				})).Return(&domain.GoalPlan{Summary: "Save for a home", MonthlySavings: decimal.NewFromInt(750)}, nil)
			},
			expectedStatus: http.StatusOK,
			expected:       "Save for a home",
			parseResponse: func(b []byte) (interface{}, error) {
				var p domain.GoalPlan
				err := json.Unmarshal(b, &p)
				return p.Summary, err
			},
		},
		{
			name:   "Scenarios",
			method: http.MethodPost,
			path:   "/api/v1/scenarios",
			body:   `{"initialAmount":"10000","durationYears":10,"monthlyContribution":"100","seed":42}`,
			setupMocks: func(m *mockPlanner) {
				m.On("SeededScenarios", scenarioMatching(10000, 10), int64(42)).
					Return(&domain.ScenarioComparison{
						Moderate: domain.ScenarioResult{Tier: domain.TierModerate, FinalValue: decimal.NewFromInt(25000)},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expected:       "25000",
			parseResponse: func(b []byte) (interface{}, error) {
				var c domain.ScenarioComparison
				err := json.Unmarshal(b, &c)
				return c.Moderate.FinalValue.String(), err
			},
		},
		{
			name:   "ScenariosInternalError",
			method: http.MethodPost,
			path:   "/api/v1/scenarios",
			body:   `{"initialAmount":"10000","durationYears":10}`,
			setupMocks: func(m *mockPlanner) {
				m.On("SeededScenarios", mock.Anything, int64(0)).Return(nil, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expected:       errorResponse{Error: "internal error"},
			parseResponse:  unmarshalResponse[errorResponse](),
		},
		{
			name:   "TrialsDefaultCount",
			method: http.MethodPost,
			path:   "/api/v1/scenarios/trials",
			body:   `{"initialAmount":"1000","durationYears":3,"seed":9}`,
			setupMocks: func(m *mockPlanner) {
				m.On("Trials", mock.Anything, scenarioMatching(1000, 3),
					calculation.TrialConfig{NumTrials: calculation.DefaultTrials, Seed: 9}).
					Return(&domain.TrialResult{NumTrials: calculation.DefaultTrials, Seed: 9}, nil)
			},
			expectedStatus: http.StatusOK,
			expected:       calculation.DefaultTrials,
			parseResponse: func(b []byte) (interface{}, error) {
				var r domain.TrialResult
				err := json.Unmarshal(b, &r)
				return r.NumTrials, err
			},
		},
		{
			name:           "TrialsOverLimit",
			method:         http.MethodPost,
			path:           "/api/v1/scenarios/trials",
			body:           `{"initialAmount":"1000","durationYears":3,"trials":1001}`,
			setupMocks:     func(m *mockPlanner) {},
			expectedStatus: http.StatusBadRequest,
			expected:       errorResponse{Error: "invalid input: trials must be between 1 and 1000 (got 1001)"},
			parseResponse:  unmarshalResponse[errorResponse](),
		},
		{
			name:   "Retirement",
			method: http.MethodPost,
			path:   "/api/v1/retirement",
			body:   `{"age":40,"retirementAge":65,"currentIncome":"90000","currentAssets":"100000","monthlySavings":"1000","investmentReturnPct":"7","riskTolerance":"moderate"}`,
			setupMocks: func(m *mockPlanner) {
				m.On("Retirement", mock.MatchedBy(func(p domain.WealthProfile) bool {
					return p.Age == 40 && p.RetirementAge == 65
				})).Return(&domain.WealthPlan{NetWorth: decimal.NewFromInt(100000)}, nil)
			},
			expectedStatus: http.StatusOK,
			expected:       "100000",
			parseResponse: func(b []byte) (interface{}, error) {
				var p domain.WealthPlan
				err := json.Unmarshal(b, &p)
				return p.NetWorth.String(), err
			},
		},
		{
			name:           "UnknownRoute",
			method:         http.MethodGet,
			path:           "/api/v1/unknown",
			setupMocks:     func(m *mockPlanner) {},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "WrongMethod",
			method:         http.MethodGet,
			path:           "/api/v1/scenarios",
			setupMocks:     func(m *mockPlanner) {},
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			planner := new(mockPlanner)
			tt.setupMocks(planner)

			config := Config{
				Addr:            ":8080",
				ShutdownTimeout: 10 * time.Second,
				MaxTrials:       1000,
				Dependencies: Dependencies{
					Planner: planner,
					Logger:  logger,
				},
			}
			testServer := httptest.NewServer(ConfigureRouter(config))
			defer testServer.Close()

			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req, err := http.NewRequest(tt.method, testServer.URL+tt.path, body)
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.parseResponse != nil {
				assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
				raw, err := io.ReadAll(resp.Body)
				require.NoError(t, err)

				got, err := tt.parseResponse(raw)
				require.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}

			planner.AssertExpectations(t)
		})
	}
}

func TestNewHandler_ClampsMaxTrials(t *testing.T) {
	assert.Equal(t, calculation.MaxTrials, NewHandler(nil, 0).maxTrials)
	assert.Equal(t, calculation.MaxTrials, NewHandler(nil, calculation.MaxTrials*2).maxTrials)
	assert.Equal(t, 250, NewHandler(nil, 250).maxTrials)
}

func TestTrials_DefaultRespectsSmallLimit(t *testing.T) {
	planner := new(mockPlanner)
	planner.On("Trials", mock.Anything, mock.Anything, calculation.TrialConfig{NumTrials: 100}).
		Return(&domain.TrialResult{NumTrials: 100}, nil)

	h := NewHandler(planner, 100)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scenarios/trials",
		strings.NewReader(`{"initialAmount":"1000","durationYears":1}`))
	rec := httptest.NewRecorder()
	h.Trials(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	planner.AssertExpectations(t)
}

func TestTrials_ContextErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantLevel  string
		wantMsg    string
	}{
		{"client went away", context.Canceled, http.StatusServiceUnavailable, "debug", "request cancelled"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "warn", "calculation timed out"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			planner := new(mockPlanner)
			planner.On("Trials", mock.Anything, mock.Anything, mock.Anything).
				Return(nil, fmt.Errorf("trials: %w", tt.err))

			var logs bytes.Buffer
			logger := zerolog.New(&logs)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/scenarios/trials",
				strings.NewReader(`{"initialAmount":"1000","durationYears":1,"trials":10}`))
			req = req.WithContext(logger.WithContext(req.Context()))
			rec := httptest.NewRecorder()
			NewHandler(planner, 100).Trials(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantMsg, resp.Error)
			assert.Contains(t, logs.String(), `"level":"`+tt.wantLevel+`"`)
			assert.NotContains(t, logs.String(), "calculation failed")
			planner.AssertExpectations(t)
		})
	}
}

func TestWebAPI_EngineSatisfiesPlanner(t *testing.T) {
	var _ Planner = calculation.NewCalculationEngine()

	api := NewWebAPI(Config{
		Addr:         "127.0.0.1:0",
		Dependencies: Dependencies{Planner: calculation.NewCalculationEngine(), Logger: zerolog.Nop()},
	})
	require.NotNil(t, api.router)
	assert.Equal(t, "127.0.0.1:0", api.server.Addr)
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(b []byte) (interface{}, error) {
		var v T
		err := json.Unmarshal(b, &v)
		return v, err
	}
}
