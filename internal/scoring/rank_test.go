// internal/scoring/rank_test.go
package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmatch-workers/internal/models"
)

func rankFixture() (*models.JobRequirement, []models.CandidateProfile) {
	job := &models.JobRequirement{
		ID:             "job-1",
		RequiredSkills: []string{"Go", "Postgres", "Kafka", "Docker"},
		Location:       "Remote",
	}
	candidates := []models.CandidateProfile{
		{ID: "c-weak", Skills: skills("Java")},
		{ID: "c-best", Skills: skills("go", "postgres", "kafka", "docker")},
		{ID: "c-mid-b", Skills: skills("Go", "Docker")},
		{ID: "c-mid-a", Skills: skills("Kafka", "Postgres")},
	}
	return job, candidates
}

func TestRank_OrdersByScoreThenID(t *testing.T) {
	job, candidates := rankFixture()

	ranked, err := Default().Rank(context.Background(), job, candidates, RankOptions{Concurrency: 2})
	require.NoError(t, err)
	require.Len(t, ranked, 4)

	ids := make([]string, 0, len(ranked))
	for i, r := range ranked {
		ids = append(ids, r.CandidateID)
		assert.Equal(t, i+1, r.Rank)
		assert.Equal(t, Rate(r.Result.OverallScore), r.Rating)
	}
	assert.Equal(t, []string{"c-best", "c-mid-a", "c-mid-b", "c-weak"}, ids)
	assert.Equal(t, 100, ranked[0].Result.OverallScore)
	assert.Equal(t, ranked[1].Result.OverallScore, ranked[2].Result.OverallScore)
}

func TestRank_MinScoreAndLimit(t *testing.T) {
	job, candidates := rankFixture()

	ranked, err := Default().Rank(context.Background(), job, candidates, RankOptions{MinScore: 70, Limit: 2})
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "c-best", ranked[0].CandidateID)
	assert.Equal(t, "c-mid-a", ranked[1].CandidateID)
	for _, r := range ranked {
		assert.GreaterOrEqual(t, r.Result.OverallScore, 70)
	}
}

func TestRank_Empty(t *testing.T) {
	ranked, err := Default().Rank(context.Background(), &models.JobRequirement{}, nil, RankOptions{})
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestRank_CancelledContext(t *testing.T) {
	job, candidates := rankFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Default().Rank(ctx, job, candidates, RankOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}
