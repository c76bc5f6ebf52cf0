package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"tracematrix/internal/bootstrap"
	"tracematrix/internal/bootstrap/logging"
	"tracematrix/internal/errs"
	"tracematrix/internal/usecase/evaluation"
)

var drilldownCmd = &cobra.Command{
	Use:   "drilldown",
	Short: "Show the audit chain for one requirement and vendor",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *evaluation.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		projectID, _ := cmd.Flags().GetString("project")
		requirementRef, _ := cmd.Flags().GetString("requirement")
		vendorID, _ := cmd.Flags().GetString("vendor")
		if projectID == "" || requirementRef == "" || vendorID == "" {
			return errors.New("--project, --requirement and --vendor are required")
		}

		chain, err := svc.Drilldown(ctx, projectID, requirementRef, vendorID)
		if err != nil {
			logging.Error(ctx, "drilldown failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "build drilldown")
		}

		out := cmd.OutOrStdout()
		for _, level := range chain.Levels {
			if _, err := fmt.Fprintf(out, "%s:\n", level.Label); err != nil {
				return errs.Wrap(err, "write drilldown level")
			}
			for _, item := range level.Items {
				line := "- " + item.Label
				if item.Detail != "" {
					line += " | " + item.Detail
				}
				if _, err := fmt.Fprintln(out, line); err != nil {
					return errs.Wrap(err, "write drilldown item")
				}
			}
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(drilldownCmd)

	drilldownCmd.Flags().String("project", "", "Project id")
	drilldownCmd.Flags().String("requirement", "", "Requirement id or code")
	drilldownCmd.Flags().String("vendor", "", "Vendor id")
}
