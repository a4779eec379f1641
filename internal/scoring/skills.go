// internal/scoring/skills.go
package scoring

import (
	"math"
	"strings"

	"jobmatch-workers/internal/models"
)

type skillsOutcome struct {
	score    int
	required int
	matched  []string
	missing  []string
}

func normalizeSkill(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// matchSkills partitions the required skills by presence in the candidate
// set. Blank and repeated (after normalization) requirements are dropped,
// keeping the first spelling the job used.
func matchSkills(have []models.CandidateSkill, required []string) skillsOutcome {
	owned := make(map[string]struct{}, len(have))
	for _, s := range have {
		if n := normalizeSkill(s.Name); n != "" {
			owned[n] = struct{}{}
		}
	}

	out := skillsOutcome{
		matched: []string{},
		missing: []string{},
	}
	seen := make(map[string]struct{}, len(required))
	for _, r := range required {
		n := normalizeSkill(r)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out.required++

		if _, ok := owned[n]; ok {
			out.matched = append(out.matched, r)
		} else {
			out.missing = append(out.missing, r)
		}
	}

	if out.required == 0 {
		out.score = 100
		return out
	}
	out.score = clamp(int(math.Round(100 * float64(len(out.matched)) / float64(out.required))))
	return out
}
