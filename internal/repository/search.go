// internal/repository/search.go
package repository

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"

	"jobmatch-workers/internal/models"
)

var ErrSearchDisabled = stderrors.New("candidate search is not configured")

// BuildCandidateQuery builds the bool query used to shortlist candidates
// for job: any required skill or the job location should match. A job
// with neither matches all candidates.
func BuildCandidateQuery(job *models.JobRequirement, size int) map[string]interface{} {
	var should []interface{}
	for _, skill := range job.RequiredSkills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		should = append(should, map[string]interface{}{
			"match": map[string]interface{}{
				"skills.name": map[string]interface{}{"query": skill, "operator": "and"},
			},
		})
	}

	location := strings.TrimSpace(job.Location)
	if location != "" && !strings.EqualFold(location, models.LocationRemote) {
		should = append(should, map[string]interface{}{
			"match": map[string]interface{}{"location": location},
		})
	}

	query := map[string]interface{}{"match_all": map[string]interface{}{}}
	if len(should) > 0 {
		query = map[string]interface{}{
			"bool": map[string]interface{}{
				"should":               should,
				"minimum_should_match": 1,
			},
		}
	}

	return map[string]interface{}{
		"size":    size,
		"query":   query,
		"_source": []string{"id", "skills", "experienceYears", "location", "expectedSalary"},
	}
}

// SearchCandidates shortlists candidate profiles for job from the search
// index. Documents are decoded straight into CandidateProfile; the hit id
// fills in a missing profile id.
func (r *Repository) SearchCandidates(ctx context.Context, job *models.JobRequirement) ([]models.CandidateProfile, error) {
	if r.search == nil {
		return nil, searchError(ctx, "candidate_search", ErrSearchDisabled)
	}

	hits, err := r.search.Search(ctx, r.index, BuildCandidateQuery(job, r.searchSize))
	if err != nil {
		return nil, searchError(ctx, "candidate_search", err)
	}

	out := make([]models.CandidateProfile, 0, len(hits))
	for _, hit := range hits {
		var c models.CandidateProfile
		if err := json.Unmarshal(hit.Source, &c); err != nil {
			r.logger.Warn("skipping undecodable candidate document", map[string]interface{}{
				"documentId": hit.ID,
				"error":      err,
			})
			continue
		}
		if c.ID == "" {
			c.ID = hit.ID
		}
		out = append(out, c)
	}

	r.logger.Debug("candidate search completed", map[string]interface{}{
		"jobId": job.ID,
		"hits":  len(hits),
		"kept":  len(out),
	})
	return out, nil
}
