// internal/workers/application/record-match-result/models.go
package recordmatchresult

import "jobmatch-workers/internal/models"

// Input reads the flattened output of the score task.
type Input struct {
	ApplicationID string `json:"applicationId"`
	CandidateID   string `json:"candidateId,omitempty"`
	JobID         string `json:"jobId,omitempty"`
	models.MatchResult
}

type Output struct {
	ApplicationID string `json:"applicationId"`
	MatchScore    int    `json:"matchScore"`
	MatchRecorded bool   `json:"matchRecorded"`
	RecordedAt    string `json:"recordedAt"` // RFC 3339
}
