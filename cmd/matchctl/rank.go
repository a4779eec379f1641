// cmd/matchctl/rank.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobmatch-workers/internal/models"
	"jobmatch-workers/internal/scoring"
)

func newRankCmd(opts *rootOptions) *cobra.Command {
	var (
		jobPath        string
		candidatesPath string
		rankOpts       scoring.RankOptions
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank a list of candidates for one job",
		Long: `Rank scores every candidate in a JSON array against a job requirement
and prints them best first.

Example:
  matchctl rank --job job.json --candidates candidates.json --limit 10 --min-score 60`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rankOpts.Limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}
			if rankOpts.MinScore < 0 || rankOpts.MinScore > 100 {
				return fmt.Errorf("--min-score must be between 0 and 100")
			}

			scorer, err := opts.scorer()
			if err != nil {
				return err
			}

			var job models.JobRequirement
			if err := readJSON(jobPath, &job); err != nil {
				return err
			}
			var candidates []models.CandidateProfile
			if err := readJSON(candidatesPath, &candidates); err != nil {
				return err
			}

			ranked, err := scorer.Rank(cmd.Context(), &job, candidates, rankOpts)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), ranked)
		},
	}

	cmd.Flags().StringVar(&jobPath, "job", "", "Path to job requirement JSON (required)")
	cmd.Flags().StringVar(&candidatesPath, "candidates", "", "Path to a JSON array of candidate profiles (required)")
	cmd.Flags().IntVar(&rankOpts.Limit, "limit", 0, "Maximum number of candidates to print (0 for all)")
	cmd.Flags().IntVar(&rankOpts.MinScore, "min-score", 0, "Drop candidates scoring below this")
	cmd.Flags().IntVar(&rankOpts.Concurrency, "concurrency", 0, "Parallel scorers (0 for GOMAXPROCS)")
	_ = cmd.MarkFlagRequired("job")
	_ = cmd.MarkFlagRequired("candidates")
	return cmd
}
