package plan

import (
	"os"
	"path/filepath"
	"testing"
)

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write plan file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := write(t, `
ledger: /tmp/bets.json
imports:
  - file: exports/2024-03-01.html
    date: 2024-03-01
  - file: exports/2024-03-02.html
    date: 2024-03-02
`)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.Ledger != "/tmp/bets.json" {
		t.Errorf("ledger = %q", p.Ledger)
	}
	if len(p.Imports) != 2 {
		t.Fatalf("imports = %d, want 2", len(p.Imports))
	}
	if p.Imports[0].File != "exports/2024-03-01.html" || p.Imports[0].Date != "2024-03-01" {
		t.Errorf("first import: %+v", p.Imports[0])
	}
}

func TestLoadRejectsEmptyPlan(t *testing.T) {
	if _, err := Load(write(t, "imports: []\n")); err == nil {
		t.Error("expected error for plan without imports")
	}
}

func TestLoadRejectsBadDate(t *testing.T) {
	path := write(t, `
imports:
  - file: exports/a.html
    date: 01/03/2024
`)
	if _, err := Load(path); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing plan file")
	}
}
