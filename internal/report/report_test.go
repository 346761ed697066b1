package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokhei/Ridesharing-Simulation/engine"
)

type stubRunID string

func (s stubRunID) String() string { return string(s) }

func sampleMetrics() *engine.MetricsCollector {
	moved, idle, reqTime, pickup := 3, 1, 0, 4
	return &engine.MetricsCollector{
		ModelRows: []engine.ModelRow{
			{Tick: 0, TotalToHeadDist: 5},
			{Tick: 1, TotalToHeadDist: 3},
		},
		AgentRows: []engine.AgentRow{
			{Tick: 0, Kind: "driver", ID: 1, StepsMoved: &moved, IdleTicks: &idle},
			{Tick: 0, Kind: "request", ID: 2, RequestTime: &reqTime, PickupTime: &pickup},
		},
	}
}

// TestWriteCSVEmptyDirSkips checks WriteCSV is a no-op when no report
// directory was requested, matching cmd/run.go's `if flagReportDir != ""`
// guard at the call site.
func TestWriteCSVEmptyDirSkips(t *testing.T) {
	modelPath, agentPath, err := WriteCSV("", stubRunID("x"), sampleMetrics(), nil)
	require.NoError(t, err)
	assert.Empty(t, modelPath)
	assert.Empty(t, agentPath)
}

// TestWriteCSVRowsAndFilenames checks both files land under dir, named
// after runID, with the expected headers and one row per collected sample.
func TestWriteCSVRowsAndFilenames(t *testing.T) {
	dir := t.TempDir()
	modelPath, agentPath, err := WriteCSV(dir, stubRunID("abc123"), sampleMetrics(), nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "model-abc123.csv"), modelPath)
	assert.Equal(t, filepath.Join(dir, "agents-abc123.csv"), agentPath)

	modelRows := readCSV(t, modelPath)
	require.Len(t, modelRows, 3) // header + 2 rows
	assert.Equal(t, []string{"tick", "total_to_head_dist"}, modelRows[0])
	assert.Equal(t, []string{"0", "5"}, modelRows[1])
	assert.Equal(t, []string{"1", "3"}, modelRows[2])

	agentRows := readCSV(t, agentPath)
	require.Len(t, agentRows, 3) // header + 2 rows
	assert.Equal(t, []string{"tick", "kind", "id", "steps_moved", "idle_ticks", "request_time", "pickup_time", "dropoff_time", "secondary_id"}, agentRows[0])
	assert.Equal(t, []string{"0", "driver", "1", "3", "1", "", "", "", ""}, agentRows[1])
	assert.Equal(t, []string{"0", "request", "2", "", "", "0", "4", "", ""}, agentRows[2])
}

// TestWriteCSVCreatesDir checks WriteCSV makes dir (and any missing
// parents) rather than requiring the caller to pre-create it.
func TestWriteCSVCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	_, _, err := WriteCSV(dir, stubRunID("run1"), sampleMetrics(), nil)
	require.NoError(t, err)
	_, err = os.Stat(dir)
	require.NoError(t, err)
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

// TestPrintConsoleSummarizesRun checks the console summary reports the run
// id, tick, driver count and per-state request totals.
func TestPrintConsoleSummarizesRun(t *testing.T) {
	world, err := engine.NewWorld(engine.Config{
		Width: 5, Height: 5, NumDrivers: 2, Capacity: 2,
		Strategy: engine.StrategyClosest, Seed: 1,
		WaitingMin: 10, WaitingMax: 20,
	}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintConsole(&buf, world)

	out := buf.String()
	assert.Contains(t, out, "=== Simulation Report ===")
	assert.Contains(t, out, world.RunID.String())
	assert.Contains(t, out, "Tick: 0")
	assert.Contains(t, out, "Drivers: 2")
	assert.Contains(t, out, "Delivered: 0  Abandoned: 0  Waiting: 0")
}
