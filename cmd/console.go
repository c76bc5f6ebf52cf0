package cmd

import (
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tracematrix/internal/bootstrap"
	"tracematrix/internal/bootstrap/logging"
	"tracematrix/internal/errs"
	"tracematrix/internal/usecase/evaluation"
	"tracematrix/internal/usecase/matrixconsole"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Start the interactive evaluation console",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *evaluation.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		projectID, _ := cmd.Flags().GetString("project")
		refreshInterval, _ := cmd.Flags().GetDuration("refresh-interval")
		if projectID == "" {
			return errors.New("--project is required")
		}
		if refreshInterval <= 0 {
			refreshInterval = 5 * time.Second
		}

		profile, err := loadProfileFlag(cmd)
		if err != nil {
			return err
		}

		model := matrixconsole.NewConsoleModel(ctx, svc, matrixconsole.Options{
			ProjectID:       projectID,
			Profile:         profile,
			RefreshInterval: refreshInterval,
		})

		program := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return errs.Wrap(err, "run evaluation console")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(consoleCmd)

	consoleCmd.Flags().String("project", "", "Project id")
	consoleCmd.Flags().String("profile", "", "Scoring profile TOML file")
	consoleCmd.Flags().Duration("refresh-interval", 5*time.Second, "Matrix refresh interval")
}
