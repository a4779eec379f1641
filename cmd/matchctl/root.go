// cmd/matchctl/root.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"jobmatch-workers/internal/common/config"
	"jobmatch-workers/internal/scoring"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "matchctl",
		Short: "Offline tools for the job match workers",
		Long: `matchctl runs the match scorer against local JSON files and
maintains the activity registry the workers validate their input with.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Worker config file to take scoring parameters from (defaults when empty)")

	rootCmd.AddCommand(newScoreCmd(opts))
	rootCmd.AddCommand(newRankCmd(opts))
	rootCmd.AddCommand(newRegistryCmd())
	return rootCmd
}

// scorer builds a scorer from the config file, or the defaults when no
// file was given.
func (o *rootOptions) scorer() (*scoring.Scorer, error) {
	if o.configPath == "" {
		return scoring.Default(), nil
	}
	cfg, err := config.LoadFromFile(o.configPath)
	if err != nil {
		return nil, err
	}
	return scoring.New(cfg.Scoring.Params())
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
