// Package report renders a MetricsCollector's two tabular streams to CSV
// and to the console, in the teacher's sim/report.go style: two CSV files
// named after the run id plus a human-readable summary of the run.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/lokhei/Ridesharing-Simulation/engine"
)

// WriteCSV writes the model-level and agent-level streams to two CSV
// files under dir, named after runID the way WriteCSVReport suffixes its
// single report file with a timestamp — here the run's identity, not the
// wall clock, disambiguates concurrent runs writing to the same directory.
func WriteCSV(dir string, runID fmt.Stringer, m *engine.MetricsCollector, log logrus.FieldLogger) (modelPath, agentPath string, err error) {
	if dir == "" {
		return "", "", nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("report: mkdir %s: %w", dir, err)
	}
	modelPath = filepath.Join(dir, fmt.Sprintf("model-%s.csv", runID))
	agentPath = filepath.Join(dir, fmt.Sprintf("agents-%s.csv", runID))

	if err := writeModelCSV(modelPath, m); err != nil {
		return "", "", err
	}
	if err := writeAgentCSV(agentPath, m); err != nil {
		return "", "", err
	}
	if log != nil {
		log.WithFields(logrus.Fields{"model_csv": modelPath, "agent_csv": agentPath}).Info("report written")
	}
	return modelPath, agentPath, nil
}

func writeModelCSV(path string, m *engine.MetricsCollector) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()
	w.Write([]string{"tick", "total_to_head_dist"})
	for _, row := range m.ModelRows {
		w.Write([]string{itoa(row.Tick), itoa(row.TotalToHeadDist)})
	}
	return w.Error()
}

func writeAgentCSV(path string, m *engine.MetricsCollector) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()
	w.Write([]string{"tick", "kind", "id", "steps_moved", "idle_ticks", "request_time", "pickup_time", "dropoff_time", "secondary_id"})
	for _, row := range m.AgentRows {
		w.Write([]string{
			itoa(row.Tick),
			row.Kind,
			itoa(row.ID),
			itoaPtr(row.StepsMoved),
			itoaPtr(row.IdleTicks),
			itoaPtr(row.RequestTime),
			itoaPtr(row.PickupTime),
			itoaPtr(row.DropoffTime),
			itoaPtr(row.SecondaryID),
		})
	}
	return w.Error()
}

func itoa(v int) string {
	return fmt.Sprintf("%d", v)
}

func itoaPtr(v *int) string {
	if v == nil {
		return ""
	}
	return itoa(*v)
}

// PrintConsole writes a short human-readable summary of the run to w, in
// the spirit of PrintConsoleReport: totals first, then a line per driver.
func PrintConsole(w io.Writer, world *engine.World) {
	fmt.Fprintln(w, "=== Simulation Report ===")
	fmt.Fprintf(w, "Run: %s\n", world.RunID)
	fmt.Fprintf(w, "Tick: %d\n", world.Tick)
	fmt.Fprintf(w, "Drivers: %d\n", len(world.Drivers))
	delivered, abandoned, waiting := 0, 0, 0
	for _, r := range world.Requests {
		switch r.State {
		case engine.StateDelivered:
			delivered++
		case engine.StateAbandoned:
			abandoned++
		case engine.StateWaiting:
			waiting++
		}
	}
	fmt.Fprintf(w, "Delivered: %d  Abandoned: %d  Waiting: %d\n", delivered, abandoned, waiting)
	for _, d := range world.Drivers {
		fmt.Fprintf(w, "Driver %d: pos=%v steps_moved=%d idle_ticks=%d manifest=%d route_len=%d\n",
			d.ID, d.Current, d.StepsMoved, d.IdleTicks, len(d.Manifest), len(d.Route))
	}
}
