package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	validateFile, executeFile = "-", ""
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, args...))

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPipelineRunCommand(t *testing.T) {
	out, err := execute(t, "", "pipeline", "run")
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, float64(2), result["rows_processed"])
	assert.Contains(t, result, "duration_seconds")
}

func TestStrategyGenerateCommand(t *testing.T) {
	out, err := execute(t, "", "strategy", "generate")
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "Implement subscription-based pricing with tiered features.", result["recommendation"])
	assert.Equal(t, 0.85, result["confidence_score"])
}

func TestStrategyValidateCommand(t *testing.T) {
	out, err := execute(t, `{"recommendation": "Raise prices", "confidence_score": 0.5}`, "strategy", "validate", "--file", "-")
	require.NoError(t, err)
	assert.JSONEq(t, `{"valid": true}`, out)

	out, err = execute(t, `{"recommendation": "Raise prices"}`, "strategy", "validate", "--file", "-")
	assert.Error(t, err)
	assert.JSONEq(t, `{"valid": false}`, out)
}

func TestStrategyExecuteCommandFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strategy.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"recommendation": "Raise prices", "confidence_score": 0.79999}`), 0o600))

	out, err := execute(t, "", "strategy", "execute", "--file", path)
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, false, result["executed"])
}

func TestStrategyMonitorCommand(t *testing.T) {
	out, err := execute(t, "", "strategy", "monitor", "abc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"strategy_id": "abc", "execution_time": 120, "success_rate": 0.95, "roi_percentage": 15}`, out)
}

func TestStrategyCycleCommand(t *testing.T) {
	out, err := execute(t, "", "strategy", "cycle")
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, true, result["valid"])
	assert.Equal(t, true, result["executed"])
}

func TestMigrateRequiresDatabase(t *testing.T) {
	_, err := execute(t, "", "migrate")
	assert.ErrorContains(t, err, "database is disabled")
}
