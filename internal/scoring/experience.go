// internal/scoring/experience.go
package scoring

// experienceScore applies a linear shortfall curve below the job minimum
// and a capped per-year decay above the job maximum.
func (s *Scorer) experienceScore(years, min, max *int) int {
	if min == nil && max == nil {
		return 100
	}
	if years == nil {
		return 0
	}

	y := nonNegative(*years)
	lo := 0
	if min != nil {
		lo = nonNegative(*min)
	}

	if y < lo {
		return degrade(float64(lo-y) / float64(lo))
	}

	if max != nil {
		hi := nonNegative(*max)
		if y > hi {
			return s.overqualified(y - hi)
		}
	}
	return 100
}

func (s *Scorer) overqualified(excess int) int {
	over := excess - s.params.OverqualifiedGraceYears
	if over <= 0 {
		return 100
	}
	penalty := s.params.OverqualifiedPenaltyPerYear
	if penalty == 0 {
		return 100
	}
	// Past this many years the score is already at the floor; stopping
	// here keeps over*penalty from overflowing.
	if over > (100-s.params.OverqualifiedFloor)/penalty {
		return s.params.OverqualifiedFloor
	}
	score := 100 - over*penalty
	if score < s.params.OverqualifiedFloor {
		return s.params.OverqualifiedFloor
	}
	return clamp(score)
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
