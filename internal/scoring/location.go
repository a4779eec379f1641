// internal/scoring/location.go
package scoring

import (
	"math"
	"slices"
	"strings"
	"unicode"

	"jobmatch-workers/internal/models"
)

type locationKind int

const (
	locationRemote locationKind = iota
	locationUnknown
	locationExact
	locationContained
	locationPartial
	locationMismatch
)

type locationOutcome struct {
	score int
	kind  locationKind
}

var remoteLocation = normalizeLocation(models.LocationRemote)

func normalizeLocation(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// locationWords splits a normalized location on anything that is not a
// letter or digit, keeping order.
func locationWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func tokenSet(words []string) map[string]struct{} {
	tokens := make(map[string]struct{}, len(words))
	for _, w := range words {
		tokens[w] = struct{}{}
	}
	return tokens
}

// containsRun reports whether needle appears as a contiguous run of whole
// words inside haystack.
func containsRun(haystack, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if slices.Equal(haystack[i:i+len(needle)], needle) {
			return true
		}
	}
	return false
}

// locationScore ranks, from best to worst: remote job, exact match, one
// name containing the other as a run of whole words, shared tokens,
// nothing shared. Missing data on either side scores the neutral default.
func (s *Scorer) locationScore(candidate, job string) locationOutcome {
	jn := normalizeLocation(job)
	if jn == remoteLocation {
		return locationOutcome{score: 100, kind: locationRemote}
	}

	cn := normalizeLocation(candidate)
	if jn == "" || cn == "" {
		return locationOutcome{score: s.params.UnknownLocationScore, kind: locationUnknown}
	}
	cw, jw := locationWords(cn), locationWords(jn)
	if cn == jn || (len(cw) > 0 && slices.Equal(cw, jw)) {
		return locationOutcome{score: 100, kind: locationExact}
	}
	if containsRun(cw, jw) || containsRun(jw, cw) {
		return locationOutcome{score: s.params.ContainedLocationScore, kind: locationContained}
	}

	ratio := tokenOverlap(tokenSet(cw), tokenSet(jw))
	if ratio == 0 {
		return locationOutcome{score: 0, kind: locationMismatch}
	}
	score := s.params.PartialLocationBase + int(math.Floor(float64(s.params.PartialLocationSpan)*ratio))
	return locationOutcome{score: clamp(score), kind: locationPartial}
}

// tokenOverlap is the share of the smaller token set found in the other.
func tokenOverlap(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	common := 0
	for t := range small {
		if _, ok := large[t]; ok {
			common++
		}
	}
	return float64(common) / float64(len(small))
}
