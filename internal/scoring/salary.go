// internal/scoring/salary.go
package scoring

import "jobmatch-workers/internal/models"

// salaryScore compares the lowest figure the candidate would accept with
// the job budget. Unknown on either side counts as compatible, and asking
// below the budget minimum is never a mismatch.
func (s *Scorer) salaryScore(expected, budget *models.SalaryRange) int {
	if expected.IsEmpty() || budget.IsEmpty() {
		return 100
	}
	if budget.Max <= 0 {
		return 100
	}

	ask := expected.Floor()
	if ask <= budget.Max {
		return 100
	}
	overage := (ask - budget.Max) / budget.Max
	return degrade(overage / s.params.SalaryOverageTolerance)
}
