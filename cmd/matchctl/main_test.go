// cmd/matchctl/main_test.go
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmatch-workers/internal/models"
	"jobmatch-workers/pkg/registry"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScoreCommand(t *testing.T) {
	dir := t.TempDir()
	candidate := writeFile(t, dir, "candidate.json", `{"skills":[{"name":"React"},{"name":"Node.js"}]}`)
	job := writeFile(t, dir, "job.json", `{"requiredSkills":["React","Node.js","Docker"]}`)

	out, err := run(t, "score", "--candidate", candidate, "--job", job)
	require.NoError(t, err)

	var got scoreOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 67, got.SkillsMatch)
	assert.Equal(t, 87, got.OverallScore)
	assert.Equal(t, models.RatingExcellent, got.Rating)
	assert.Equal(t, []string{"Docker"}, got.MissingSkills)
}

func TestScoreCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	job := writeFile(t, dir, "job.json", `{"requiredSkills":["Go"]}`)
	broken := writeFile(t, dir, "broken.json", `{"skills":`)

	_, err := run(t, "score", "--job", job)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"candidate" not set`)

	_, err = run(t, "score", "--candidate", broken, "--job", job)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")

	_, err = run(t, "score", "--candidate", filepath.Join(dir, "missing.json"), "--job", job)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestScoreCommand_ConfigWeights(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.yaml", `
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: jobmatch
    user: matcher
scoring:
  weights:
    skills: 1.0
    experience: 0
    location: 0
    salary: 0
`)
	candidate := writeFile(t, dir, "candidate.json", `{"skills":[{"name":"React"},{"name":"Node.js"}]}`)
	job := writeFile(t, dir, "job.json", `{"requiredSkills":["React","Node.js","Docker"]}`)

	out, err := run(t, "--config", cfg, "score", "--candidate", candidate, "--job", job)
	require.NoError(t, err)

	var got scoreOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 67, got.OverallScore)
}

func TestRankCommand(t *testing.T) {
	dir := t.TempDir()
	job := writeFile(t, dir, "job.json", `{"requiredSkills":["Go","Kafka"],"location":"Remote"}`)
	candidates := writeFile(t, dir, "candidates.json", `[
		{"id":"c-none","skills":[]},
		{"id":"c-one","skills":[{"name":"go"}]},
		{"id":"c-both","skills":[{"name":"Go"},{"name":"Kafka"}]}
	]`)

	out, err := run(t, "rank", "--job", job, "--candidates", candidates)
	require.NoError(t, err)

	var ranked []models.RankedCandidate
	require.NoError(t, json.Unmarshal([]byte(out), &ranked))
	require.Len(t, ranked, 3)
	assert.Equal(t, "c-both", ranked[0].CandidateID)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "c-one", ranked[1].CandidateID)
	assert.Equal(t, "c-none", ranked[2].CandidateID)

	out, err = run(t, "rank", "--job", job, "--candidates", candidates, "--limit", "1")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &ranked))
	require.Len(t, ranked, 1)
	assert.Equal(t, "c-both", ranked[0].CandidateID)

	_, err = run(t, "rank", "--job", job, "--candidates", candidates, "--min-score", "101")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--min-score")
}

func TestRegistryCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "activity-registry.json")

	out, err := run(t, "registry", "list", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "matching.job.score")
	assert.Contains(t, out, "notify-match")

	_, err = run(t, "registry", "validate", "--path", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load registry")

	out, err = run(t, "registry", "export", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote built-in registry")

	out, err = run(t, "registry", "validate", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Found 4 activities")

	out, err = run(t, "registry", "update", "--path", path, "--id", "matching.job.rank", "--field", "timeout", "--value", "45s")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated activity matching.job.rank")

	reg, err := registry.LoadRegistry(path)
	require.NoError(t, err)
	a, ok := reg.Find("rank-job-candidates")
	require.True(t, ok)
	assert.Equal(t, "45s", a.Timeout)
	assert.NotEmpty(t, reg.LastUpdated)
}

func TestRegistryUpdate_Rejects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity-registry.json")
	require.NoError(t, registry.Save(registry.Default(), path))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown activity", []string{"--id", "matching.job.nope", "--field", "status", "--value", "planned"}, "not found"},
		{"unknown field", []string{"--id", "matching.job.rank", "--field", "owner", "--value", "x"}, "unknown field"},
		{"bad retries", []string{"--id", "matching.job.rank", "--field", "retries", "--value", "many"}, "invalid retries"},
		{"bad timeout", []string{"--id", "matching.job.rank", "--field", "timeout", "--value", "soon"}, "invalid timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"registry", "update", "--path", path}, tt.args...)
			_, err := run(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
