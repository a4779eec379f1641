// internal/scoring/notes.go
package scoring

import (
	"fmt"
	"strings"

	"jobmatch-workers/internal/models"
)

const strongMatchNote = "Strong match across all criteria."

type dimension int

const (
	dimSkills dimension = iota
	dimExperience
	dimLocation
	dimSalary
)

// weakest returns the lowest sub-score. Ties resolve in declaration order.
func weakest(r *models.MatchResult) (dimension, int) {
	scores := [...]int{r.SkillsMatch, r.ExperienceMatch, r.LocationMatch, r.SalaryMatch}
	dim, low := dimSkills, scores[0]
	for i := 1; i < len(scores); i++ {
		if scores[i] < low {
			dim, low = dimension(i), scores[i]
		}
	}
	return dim, low
}

func buildNotes(r *models.MatchResult, c *models.CandidateProfile, j *models.JobRequirement, required int, loc locationKind) string {
	dim, low := weakest(r)
	if low >= 100 {
		return strongMatchNote
	}

	switch dim {
	case dimSkills:
		return fmt.Sprintf("Missing %d of %d required skills: %s.",
			len(r.MissingSkills), required, strings.Join(r.MissingSkills, ", "))

	case dimExperience:
		if c.ExperienceYears == nil {
			return "Candidate experience is not provided."
		}
		years := nonNegative(*c.ExperienceYears)
		if j.ExperienceMin != nil && years < *j.ExperienceMin {
			return fmt.Sprintf("Candidate has %d years of experience, below the required minimum of %d.",
				years, *j.ExperienceMin)
		}
		if j.ExperienceMax != nil {
			return fmt.Sprintf("Candidate has %d years of experience, above the preferred maximum of %d.",
				years, *j.ExperienceMax)
		}

	case dimLocation:
		switch loc {
		case locationUnknown:
			return "Location could not be compared."
		case locationMismatch:
			return fmt.Sprintf("Candidate location %q does not match job location %q.", c.Location, j.Location)
		default:
			return fmt.Sprintf("Candidate location %q only partially matches job location %q.", c.Location, j.Location)
		}

	case dimSalary:
		return fmt.Sprintf("Expected salary %.0f exceeds the budget maximum of %.0f.",
			c.ExpectedSalary.Floor(), j.SalaryRange.Max)
	}
	return ""
}
