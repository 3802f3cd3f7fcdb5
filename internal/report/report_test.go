package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kkyungseo/support-project-radar/internal/item"
)

func TestWriteAndReadBack(t *testing.T) {
	dir := t.TempDir()
	res := item.RunResult{
		RunID:       "test-run",
		GeneratedAt: time.Date(2026, 2, 10, 6, 30, 0, 0, time.UTC),
		TotalCount:  1,
		Items: []item.Item{{
			Source:     "kstartup",
			SourceID:   "A1",
			Title:      "2026 R&D voucher program",
			Link:       "https://example.gov/A1",
			ApplyStart: "20260201",
			ApplyEnd:   "20260228",
			Keywords:   []string{"voucher"},
		}},
	}

	path, err := Write(dir, res)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if filepath.Base(path) != "20260210T063000Z.json" {
		t.Errorf("file name = %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got item.RunResult
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.TotalCount != 1 || len(got.Items) != 1 {
		t.Fatalf("round trip lost items: %+v", got)
	}
	it := got.Items[0]
	if it.SourceID != "A1" || it.ApplyEnd != "20260228" || len(it.Keywords) != 1 {
		t.Errorf("item fields lost: %+v", it)
	}
}

func TestWriteCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	_, err := Write(dir, item.RunResult{GeneratedAt: time.Now()})
	if err != nil {
		t.Fatalf("write into missing dir: %v", err)
	}
}

func TestWriteUnwritableDirFails(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ro")
	if err := os.MkdirAll(dir, 0o555); err != nil {
		t.Fatal(err)
	}
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	if _, err := Write(dir, item.RunResult{GeneratedAt: time.Now()}); err == nil {
		t.Error("expected error for unwritable report dir")
	}
}
