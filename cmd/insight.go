package cmd

import (
	"github.com/spf13/cobra"
)

var insightCmd = &cobra.Command{
	Use:   "insight",
	Short: "Insight operations: generate, list, dismiss",
}

func init() {
	rootCmd.AddCommand(insightCmd)
}
