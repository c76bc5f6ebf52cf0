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
	"tracematrix/internal/domain/matrix"
	"tracematrix/internal/errs"
	"tracematrix/internal/usecase/evaluation"
)

var matrixShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Build and print the traceability matrix with vendor totals",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *evaluation.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		projectID, _ := cmd.Flags().GetString("project")
		categoryID, _ := cmd.Flags().GetString("category")
		if projectID == "" {
			return errors.New("--project is required")
		}

		if cached, _ := cmd.Flags().GetBool("cached"); cached {
			return showCachedRanking(cmd, svc, projectID)
		}

		profile, err := loadProfileFlag(cmd)
		if err != nil {
			return err
		}

		result, err := svc.BuildMatrix(ctx, evaluation.BuildMatrixInput{
			ProjectID:  projectID,
			CategoryID: categoryID,
			Profile:    profile,
		})
		if err != nil {
			logging.Error(ctx, "build matrix failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "build matrix")
		}

		out := cmd.OutOrStdout()
		if _, err := fmt.Fprintf(out, "%s (%s): %d requirements, %d vendors\n\n",
			result.Project.Name, result.Project.ID, result.Matrix.RequirementCount, len(result.Matrix.Vendors)); err != nil {
			return errs.Wrap(err, "write matrix header")
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		header := "code\ttitle\tpriority"
		for _, vendor := range result.Matrix.Vendors {
			header += "\t" + vendor.Name
		}
		if _, err := fmt.Fprintln(w, header); err != nil {
			return errs.Wrap(err, "write matrix table header")
		}

		for _, row := range result.Matrix.Rows {
			if row.Kind == matrix.RowCategory {
				if _, err := fmt.Fprintf(w, "[%s]\t\t\n", row.CategoryName); err != nil {
					return errs.Wrap(err, "write category row")
				}
				continue
			}
			line := fmt.Sprintf("%s\t%s\t%d", row.Requirement.Code, row.Requirement.Title, row.Requirement.Priority)
			for _, cell := range row.Cells {
				value := "-"
				if cell.Value != nil {
					value = fmt.Sprintf("%.2f", *cell.Value)
				}
				line += fmt.Sprintf("\t%s %s", value, cell.RAG)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return errs.Wrap(err, "write requirement row")
			}
		}
		if _, err := fmt.Fprintln(w, ""); err != nil {
			return errs.Wrap(err, "write matrix separator")
		}

		if _, err := fmt.Fprintln(w, "rank\tvendor\tavg\tweighted\trag\tprogress"); err != nil {
			return errs.Wrap(err, "write summary header")
		}
		for _, vs := range result.Summary.Vendors {
			if _, err := fmt.Fprintf(w, "%d\t%s\t%.2f\t%.2f\t%s\t%.0f%%\n",
				vs.Rank, vs.VendorName, vs.AverageScore, vs.WeightedScore, vs.Overall, vs.Progress); err != nil {
				return errs.Wrap(err, "write summary row")
			}
		}
		if err := w.Flush(); err != nil {
			return errs.Wrap(err, "flush matrix table")
		}

		if len(result.Warnings) > 0 {
			var b strings.Builder
			b.WriteString("\nwarnings:\n")
			for _, warning := range result.Warnings {
				b.WriteString(fmt.Sprintf("- %s %s: %s\n", warning.Code, warning.EntityID, warning.Message))
			}
			if _, err := fmt.Fprint(out, b.String()); err != nil {
				return errs.Wrap(err, "write warnings")
			}
		}
		return nil
	}),
}

// showCachedRanking prints the vendor ranking from the snapshot of the last
// successful build, skipping the repository load entirely.
func showCachedRanking(cmd *cobra.Command, svc *evaluation.Service, projectID string) error {
	ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

	snapshot, err := svc.LoadSnapshot(ctx, projectID)
	if errors.Is(err, evaluation.ErrNoSnapshot) {
		return fmt.Errorf("no cached snapshot for project %s; run matrix show without --cached first", projectID)
	}
	if err != nil {
		return errs.Wrap(err, "load cached snapshot")
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "%s (cached %s): %d requirements, %d vendors, %.0f%% scored\n\n",
		snapshot.ProjectID, snapshot.GeneratedAt, snapshot.Requirements, snapshot.Vendors, snapshot.Progress); err != nil {
		return errs.Wrap(err, "write snapshot header")
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "rank\tvendor\tavg\tweighted\trag\tprogress"); err != nil {
		return errs.Wrap(err, "write summary header")
	}
	for _, vs := range snapshot.Ranking {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%.2f\t%.2f\t%s\t%.0f%%\n",
			vs.Rank, vs.VendorName, vs.AverageScore, vs.WeightedScore, vs.Overall, vs.Progress); err != nil {
			return errs.Wrap(err, "write summary row")
		}
	}
	if err := w.Flush(); err != nil {
		return errs.Wrap(err, "flush snapshot table")
	}
	return nil
}

func init() {
	matrixShowCmd.Flags().Bool("cached", false, "print the ranking from the last build's snapshot without rebuilding")
	matrixCmd.AddCommand(matrixShowCmd)
}
