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

var insightDismissCmd = &cobra.Command{
	Use:   "dismiss",
	Short: "Dismiss one insight by id",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *evaluation.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		insightID, _ := cmd.Flags().GetUint64("id")
		if insightID == 0 {
			return errors.New("--id is required")
		}

		if err := svc.DismissInsight(ctx, insightID); err != nil {
			logging.Error(ctx, "dismiss insight failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "dismiss insight")
		}

		_, err := fmt.Fprintf(cmd.OutOrStdout(), "insight %d dismissed\n", insightID)
		return errs.Wrap(err, "write dismiss output")
	}),
}

func init() {
	insightCmd.AddCommand(insightDismissCmd)

	insightDismissCmd.Flags().Uint64("id", 0, "Insight id")
}
