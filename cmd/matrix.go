package cmd

import (
	"github.com/spf13/cobra"
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Matrix operations: show, coverage, validate, export",
}

func init() {
	rootCmd.AddCommand(matrixCmd)

	matrixCmd.PersistentFlags().String("project", "", "Project id")
	matrixCmd.PersistentFlags().String("category", "", "Restrict to one category id")
	matrixCmd.PersistentFlags().String("profile", "", "Scoring profile TOML file")
}
