package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Writer persists run metrics as CSV files under a timestamped directory.
type Writer struct {
	baseDir string
}

func NewWriter(root string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{baseDir: baseDir}, nil
}

func (w *Writer) WriteEpisodes(records []EpisodeRecord) error {
	path := filepath.Join(w.baseDir, "episodes.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create episodes file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if err := cw.Write([]string{"id", "actor", "moves", "duration_ms"}); err != nil {
		return fmt.Errorf("failed to write episodes header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.ID,
			strconv.Itoa(r.Actor),
			strconv.Itoa(r.Moves),
			strconv.FormatInt(r.Duration.Milliseconds(), 10),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write episode record: %w", err)
		}
	}
	return cw.Error()
}

func (w *Writer) WriteSummary(s Summary) error {
	path := filepath.Join(w.baseDir, "summary.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	rows := [][]string{
		{"episodes", "moves", "training_steps", "checkpoints", "elapsed_ms"},
		{
			strconv.Itoa(s.Episodes),
			strconv.Itoa(s.Moves),
			strconv.Itoa(s.TrainingSteps),
			strconv.Itoa(s.Checkpoints),
			strconv.FormatInt(s.Elapsed.Milliseconds(), 10),
		},
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return cw.Error()
}
