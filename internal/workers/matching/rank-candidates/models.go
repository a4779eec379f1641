// internal/workers/matching/rank-candidates/models.go
package rankcandidates

import "jobmatch-workers/internal/models"

// Candidate sources, reported in Output.CandidateSource.
const (
	SourceInline = "inline"
	SourceIDs    = "ids"
	SourceSearch = "search"
)

// Input names the job and, optionally, the candidate pool. Inline
// candidates win over candidateIds; with neither, the pool comes from
// candidate search.
type Input struct {
	JobID          string                    `json:"jobId"`
	JobRequirement *models.JobRequirement    `json:"jobRequirement,omitempty"`
	CandidateIDs   []string                  `json:"candidateIds,omitempty"`
	Candidates     []models.CandidateProfile `json:"candidates,omitempty"`
	Limit          int                       `json:"limit,omitempty"`
	MinScore       int                       `json:"minScore,omitempty"`
}

type Output struct {
	JobID               string                   `json:"jobId"`
	RankedCandidates    []models.RankedCandidate `json:"rankedCandidates"`
	TotalScored         int                      `json:"totalScored"`
	CandidateSource     string                   `json:"candidateSource"`
	MissingCandidateIDs []string                 `json:"missingCandidateIds,omitempty"`
	RankedAt            string                   `json:"rankedAt"`
}
