// cmd/matchctl/score.go
package main

import (
	"github.com/spf13/cobra"

	"jobmatch-workers/internal/models"
	"jobmatch-workers/internal/scoring"
)

type scoreOutput struct {
	models.MatchResult
	Rating models.Rating `json:"rating"`
}

func newScoreCmd(opts *rootOptions) *cobra.Command {
	var candidatePath, jobPath string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one candidate against one job",
		Long: `Score reads a candidate profile and a job requirement from JSON files
and prints the match result.

Example:
  matchctl score --candidate candidate.json --job job.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			scorer, err := opts.scorer()
			if err != nil {
				return err
			}

			var candidate models.CandidateProfile
			if err := readJSON(candidatePath, &candidate); err != nil {
				return err
			}
			var job models.JobRequirement
			if err := readJSON(jobPath, &job); err != nil {
				return err
			}

			result := scorer.Score(&candidate, &job)
			return writeJSON(cmd.OutOrStdout(), scoreOutput{
				MatchResult: result,
				Rating:      scoring.Rate(result.OverallScore),
			})
		},
	}

	cmd.Flags().StringVar(&candidatePath, "candidate", "", "Path to candidate profile JSON (required)")
	cmd.Flags().StringVar(&jobPath, "job", "", "Path to job requirement JSON (required)")
	_ = cmd.MarkFlagRequired("candidate")
	_ = cmd.MarkFlagRequired("job")
	return cmd
}
