package output

import (
	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/domain"
)

// assumptionsFor returns the report's assumptions, falling back to the
// engine's defaults for reports built by hand.
func assumptionsFor(report *domain.Report) []string {
	if len(report.Assumptions) > 0 {
		return report.Assumptions
	}
	return calculation.Assumptions()
}
