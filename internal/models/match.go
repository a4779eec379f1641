// internal/models/match.go
package models

// MatchResult is the computed fit between one candidate and one job.
type MatchResult struct {
	OverallScore    int      `json:"overallScore"`
	SkillsMatch     int      `json:"skillsMatch"`
	ExperienceMatch int      `json:"experienceMatch"`
	LocationMatch   int      `json:"locationMatch"`
	SalaryMatch     int      `json:"salaryMatch"`
	MatchedSkills   []string `json:"matchedSkills"`
	MissingSkills   []string `json:"missingSkills"`
	Notes           string   `json:"notes,omitempty"`
}

// Rating is a coarse band over the overall score.
type Rating string

const (
	RatingExcellent Rating = "excellent"
	RatingGood      Rating = "good"
	RatingFair      Rating = "fair"
	RatingPoor      Rating = "poor"
	RatingNone      Rating = "none"
)

// RankedCandidate is one entry of a job's candidate ranking.
type RankedCandidate struct {
	CandidateID string      `json:"candidateId"`
	Rank        int         `json:"rank"`
	Rating      Rating      `json:"rating"`
	Result      MatchResult `json:"result"`
}
