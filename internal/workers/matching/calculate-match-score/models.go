// internal/workers/matching/calculate-match-score/models.go
package calculatematchscore

import "jobmatch-workers/internal/models"

// Input accepts either ids to load or the records themselves. Inline
// records win over ids.
type Input struct {
	CandidateID      string                   `json:"candidateId"`
	JobID            string                   `json:"jobId"`
	ApplicationID    string                   `json:"applicationId,omitempty"`
	CandidateProfile *models.CandidateProfile `json:"candidateProfile,omitempty"`
	JobRequirement   *models.JobRequirement   `json:"jobRequirement,omitempty"`
}

// Output flattens the match result into the process variables so that
// downstream tasks can map single fields.
type Output struct {
	models.MatchResult
	Rating        models.Rating `json:"rating"`
	CandidateID   string        `json:"candidateId"`
	JobID         string        `json:"jobId"`
	RecruiterID   string        `json:"recruiterId,omitempty"`
	ApplicationID string        `json:"applicationId,omitempty"`
	ScoredAt      string        `json:"scoredAt"` // RFC 3339
}
