package main

import (
	"github.com/spf13/cobra"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Financial data pipeline commands",
}

var pipelineRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract, transform and load one record set",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg, appLog)
		if err != nil {
			return err
		}
		defer a.close()

		runner, err := a.pipelineRunner()
		if err != nil {
			return err
		}

		runMetrics, err := runner.Run(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), runMetrics)
	},
}

func init() {
	pipelineCmd.AddCommand(pipelineRunCmd)
}
