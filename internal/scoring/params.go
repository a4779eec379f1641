// internal/scoring/params.go
package scoring

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidWeights = errors.New("INVALID_WEIGHTS")
	ErrInvalidParams  = errors.New("INVALID_SCORING_PARAMS")
)

// Weights of each sub-score in the overall score. They must sum to 1.
type Weights struct {
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Location   float64 `json:"location"`
	Salary     float64 `json:"salary"`
}

func (w Weights) sum() float64 {
	return w.Skills + w.Experience + w.Location + w.Salary
}

// Params holds every tunable constant of the scoring curves.
type Params struct {
	Weights Weights

	// Location
	UnknownLocationScore   int
	ContainedLocationScore int
	PartialLocationBase    int
	PartialLocationSpan    int

	// Experience above the job maximum
	OverqualifiedGraceYears     int
	OverqualifiedPenaltyPerYear int
	OverqualifiedFloor          int

	// Fraction of the budget maximum at which an over-budget ask reaches 0.
	SalaryOverageTolerance float64
}

func DefaultWeights() Weights {
	return Weights{
		Skills:     0.40,
		Experience: 0.30,
		Location:   0.15,
		Salary:     0.15,
	}
}

func DefaultParams() Params {
	return Params{
		Weights:                     DefaultWeights(),
		UnknownLocationScore:        50,
		ContainedLocationScore:      80,
		PartialLocationBase:         50,
		PartialLocationSpan:         30,
		OverqualifiedGraceYears:     3,
		OverqualifiedPenaltyPerYear: 2,
		OverqualifiedFloor:          70,
		SalaryOverageTolerance:      0.5,
	}
}

// Validate checks the params keep every score in [0,100] and every curve
// monotonic.
func (p Params) Validate() error {
	w := p.Weights
	if w.Skills < 0 || w.Experience < 0 || w.Location < 0 || w.Salary < 0 {
		return fmt.Errorf("%w: weights must be non-negative", ErrInvalidWeights)
	}
	if math.Abs(w.sum()-1) > 1e-6 {
		return fmt.Errorf("%w: weights sum to %.4f, want 1", ErrInvalidWeights, w.sum())
	}

	for name, v := range map[string]int{
		"unknown location score":   p.UnknownLocationScore,
		"contained location score": p.ContainedLocationScore,
		"overqualified floor":      p.OverqualifiedFloor,
	} {
		if v < 0 || v > 100 {
			return fmt.Errorf("%w: %s %d outside [0,100]", ErrInvalidParams, name, v)
		}
	}
	if p.PartialLocationBase <= 0 || p.PartialLocationSpan < 0 {
		return fmt.Errorf("%w: partial location base must be positive and span non-negative", ErrInvalidParams)
	}
	if p.PartialLocationBase+p.PartialLocationSpan > p.ContainedLocationScore {
		return fmt.Errorf("%w: partial location band exceeds contained score %d", ErrInvalidParams, p.ContainedLocationScore)
	}
	if p.OverqualifiedGraceYears < 0 || p.OverqualifiedPenaltyPerYear < 0 {
		return fmt.Errorf("%w: overqualification grace and penalty must be non-negative", ErrInvalidParams)
	}
	if p.SalaryOverageTolerance <= 0 {
		return fmt.Errorf("%w: salary overage tolerance must be positive", ErrInvalidParams)
	}
	return nil
}
