// Package report persists run results, one JSON file per run. The report
// file is the source of truth for a run; notification is best-effort on top.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kkyungseo/support-project-radar/internal/item"
)

// Write stores the result under dir, named by the run's UTC timestamp, and
// returns the file path. Any failure here is fatal to the run.
func Write(dir string, res item.RunResult) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report dir: %w", err)
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}

	path := filepath.Join(dir, res.GeneratedAt.UTC().Format("20060102T150405Z")+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}
