// cmd/matchctl/registry.go
package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"jobmatch-workers/internal/common/validation"
	"jobmatch-workers/pkg/registry"
)

const defaultRegistryPath = "configs/activity-registry.json"

func newRegistryCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect and maintain the activity registry",
	}
	cmd.PersistentFlags().StringVar(&path, "path", defaultRegistryPath, "Path to registry file")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered activities (built-in registry when the file is missing)",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadOrDefault(path)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTASK TYPE\tSTATUS\tTIMEOUT")
			for _, a := range reg.Activities {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.ID, a.TaskType, a.ImplementationStatus, a.Timeout)
			}
			return tw.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate the registry file and compile its input schemas",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			if err := reg.Validate(); err != nil {
				return fmt.Errorf("registry validation failed: %w", err)
			}
			if _, err := validation.NewValidator(reg); err != nil {
				return fmt.Errorf("registry validation failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registry validation passed. Found %d activities.\n", len(reg.Activities))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "export",
		Short: "Write the built-in registry to the registry file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := registry.Save(registry.Default(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote built-in registry to %s\n", path)
			return nil
		},
	})

	cmd.AddCommand(newRegistryUpdateCmd(&path))
	return cmd
}

func newRegistryUpdateCmd(path *string) *cobra.Command {
	var id, field, value string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update one field of a registered activity",
		Long: `Update changes a single field of an activity and saves the registry.

Example:
  matchctl registry update --id matching.job.rank --field timeout --value 45s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(*path)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}

			var activity *registry.Activity
			for i := range reg.Activities {
				if reg.Activities[i].ID == id {
					activity = &reg.Activities[i]
					break
				}
			}
			if activity == nil {
				return fmt.Errorf("activity with ID %s not found", id)
			}

			switch field {
			case "status":
				activity.ImplementationStatus = value
			case "version":
				activity.Version = value
			case "displayName":
				activity.DisplayName = value
			case "description":
				activity.Description = value
			case "timeout":
				activity.Timeout = value
			case "retries":
				retries, err := strconv.Atoi(value)
				if err != nil {
					return fmt.Errorf("invalid retries value: %w", err)
				}
				activity.Retries = retries
			default:
				return fmt.Errorf("unknown field: %s", field)
			}

			if err := reg.Validate(); err != nil {
				return fmt.Errorf("update leaves registry invalid: %w", err)
			}
			if err := registry.Save(reg, *path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated activity %s, field %s to %s\n", id, field, value)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Activity ID to update (required)")
	cmd.Flags().StringVar(&field, "field", "", "Field to update: status, version, displayName, description, timeout, retries (required)")
	cmd.Flags().StringVar(&value, "value", "", "New value for the field (required)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("field")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}
