package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/engine"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/models"
)

var (
	validateFile string
	executeFile  string
)

var strategyCmd = &cobra.Command{
	Use:   "strategy",
	Short: "Revenue strategy commands",
}

var strategyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a revenue strategy",
	RunE: withEngine(func(cmd *cobra.Command, e *engine.Engine, args []string) error {
		strategy, err := e.GenerateRevenueStrategy(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), strategy)
	}),
}

var strategyValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a strategy read from --file",
	RunE: withEngine(func(cmd *cobra.Command, e *engine.Engine, args []string) error {
		strategy, err := readStrategy(cmd, validateFile)
		if err != nil {
			return err
		}
		valid := e.ValidateStrategy(strategy)
		if err := printJSON(cmd.OutOrStdout(), map[string]bool{"valid": valid}); err != nil {
			return err
		}
		if !valid {
			return fmt.Errorf("strategy is invalid")
		}
		return nil
	}),
}

var strategyExecuteCmd = &cobra.Command{
	Use:   "execute",
	Short: "Execute a strategy read from --file, or a freshly generated one",
	RunE: withEngine(func(cmd *cobra.Command, e *engine.Engine, args []string) error {
		var (
			strategy *models.Strategy
			err      error
		)
		if executeFile != "" {
			strategy, err = readStrategy(cmd, executeFile)
		} else {
			strategy, err = e.GenerateRevenueStrategy(cmd.Context())
		}
		if err != nil {
			return err
		}

		executed, err := e.ExecuteStrategy(cmd.Context(), strategy)
		if err != nil {
			return err
		}
		if executed {
			e.LogStrategyExecution(cmd.Context(), strategy)
		}
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{
			"strategy_id": strategy.ID,
			"executed":    executed,
		})
	}),
}

var strategyMonitorCmd = &cobra.Command{
	Use:   "monitor <strategy-id>",
	Short: "Report execution metrics for a strategy",
	Args:  cobra.ExactArgs(1),
	RunE: withEngine(func(cmd *cobra.Command, e *engine.Engine, args []string) error {
		report, err := e.MonitorStrategy(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), report)
	}),
}

var strategyCycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Generate, validate, execute and log one strategy",
	RunE: withEngine(func(cmd *cobra.Command, e *engine.Engine, args []string) error {
		result, err := e.RunCycle(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), result)
	}),
}

func init() {
	strategyValidateCmd.Flags().StringVarP(&validateFile, "file", "f", "-", "Strategy JSON file, - for stdin")
	strategyExecuteCmd.Flags().StringVarP(&executeFile, "file", "f", "", "Strategy JSON file, - for stdin")
	strategyCmd.AddCommand(strategyGenerateCmd, strategyValidateCmd, strategyExecuteCmd, strategyMonitorCmd, strategyCycleCmd)
}

// withEngine runs fn with an engine built from the loaded configuration
func withEngine(fn func(cmd *cobra.Command, e *engine.Engine, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg, appLog)
		if err != nil {
			return err
		}
		defer a.close()

		return fn(cmd, a.strategyEngine(), args)
	}
}

func readStrategy(cmd *cobra.Command, path string) (*models.Strategy, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open strategy file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var strategy models.Strategy
	if err := json.NewDecoder(r).Decode(&strategy); err != nil {
		return nil, fmt.Errorf("failed to decode strategy: %w", err)
	}
	return &strategy, nil
}
