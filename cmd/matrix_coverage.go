package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tracematrix/internal/bootstrap"
	"tracematrix/internal/bootstrap/logging"
	"tracematrix/internal/errs"
	"tracematrix/internal/usecase/evaluation"
)

var matrixCoverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Show scoring and evidence coverage per vendor and category",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *evaluation.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		projectID, _ := cmd.Flags().GetString("project")
		if projectID == "" {
			return errors.New("--project is required")
		}

		report, err := svc.Coverage(ctx, projectID)
		if err != nil {
			logging.Error(ctx, "coverage analysis failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "analyze coverage")
		}

		out := cmd.OutOrStdout()
		if _, err := fmt.Fprintf(out, "cells: %d scored + %d unscored of %d (%d requirements x %d vendors)\n\n",
			report.ScoredCells, report.UnscoredCells,
			report.RequirementCount*report.VendorCount,
			report.RequirementCount, report.VendorCount); err != nil {
			return errs.Wrap(err, "write coverage header")
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		if _, err := fmt.Fprintln(w, "vendor\tscored\tmissing\tevidence_backed\tgaps"); err != nil {
			return errs.Wrap(err, "write coverage table header")
		}
		for _, vc := range report.Vendors {
			gaps := strings.Join(vc.MissingRequirements, ",")
			if vc.MissingCount > len(vc.MissingRequirements) {
				gaps += fmt.Sprintf(" (+%d more)", vc.MissingCount-len(vc.MissingRequirements))
			}
			if gaps == "" {
				gaps = "-"
			}
			if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n",
				vc.VendorName, vc.ScoredCount, vc.MissingCount, vc.EvidenceBacked, gaps); err != nil {
				return errs.Wrap(err, "write coverage row")
			}
			for _, cc := range vc.ByCategory {
				if _, err := fmt.Fprintf(w, "  %s\t%d/%d\t\t%d\t\n",
					cc.CategoryName, cc.Scored, cc.Requirements, cc.EvidenceBacked); err != nil {
					return errs.Wrap(err, "write category coverage row")
				}
			}
		}
		return errs.Wrap(w.Flush(), "flush coverage table")
	}),
}

func init() {
	matrixCmd.AddCommand(matrixCoverageCmd)
}
