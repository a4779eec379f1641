// internal/scoring/rank.go
package scoring

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"jobmatch-workers/internal/models"
)

type RankOptions struct {
	// Limit caps the number of returned entries. Zero means no cap.
	Limit int
	// MinScore drops candidates whose overall score is below it.
	MinScore int
	// Concurrency bounds parallel scoring. Zero means GOMAXPROCS.
	Concurrency int
}

// Rank scores every candidate against job and returns them best first.
// Equal scores are ordered by candidate ID so the output is stable.
func (s *Scorer) Rank(ctx context.Context, job *models.JobRequirement, candidates []models.CandidateProfile, opts RankOptions) ([]models.RankedCandidate, error) {
	results := make([]models.MatchResult, len(candidates))

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.Score(&candidates[i], job)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranked := make([]models.RankedCandidate, 0, len(candidates))
	for i, r := range results {
		if r.OverallScore < opts.MinScore {
			continue
		}
		ranked = append(ranked, models.RankedCandidate{
			CandidateID: candidates[i].ID,
			Rating:      Rate(r.OverallScore),
			Result:      r,
		})
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].Result.OverallScore != ranked[b].Result.OverallScore {
			return ranked[a].Result.OverallScore > ranked[b].Result.OverallScore
		}
		return ranked[a].CandidateID < ranked[b].CandidateID
	})

	if opts.Limit > 0 && len(ranked) > opts.Limit {
		ranked = ranked[:opts.Limit]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}
