package item

import "time"

// RawRecord is the untyped payload a connector hands over. Nothing past the
// normalizer is allowed to touch one.
type RawRecord map[string]any

// Item is the canonical announcement shape shared by every pipeline stage.
// (Source, SourceID) identifies the same real-world announcement across runs.
type Item struct {
	Source     string   `json:"source"`
	SourceID   string   `json:"source_id"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary,omitempty"`
	Content    string   `json:"content,omitempty"`
	Link       string   `json:"link"`
	ApplyStart string   `json:"apply_start,omitempty"`
	ApplyEnd   string   `json:"apply_end,omitempty"`
	Keywords   []string `json:"keywords"`
}

// RunResult is the immutable outcome of one pipeline run.
type RunResult struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	TotalCount  int       `json:"total_count"`
	Items       []Item    `json:"items"`
}
