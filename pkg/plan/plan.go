package plan

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Plan is a YAML manifest describing a batch of slip imports, so a backlog
// of vendor exports can be previewed and merged in one run.
type Plan struct {
	// Ledger optionally overrides the configured ledger file.
	Ledger  string   `yaml:"ledger,omitempty"`
	Imports []Import `yaml:"imports"`
}

// Import is one settled-bets HTML export plus the date the user assigns to
// that batch.
type Import struct {
	File string `yaml:"file"`
	Date string `yaml:"date"`
}

func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if len(p.Imports) == 0 {
		return nil, fmt.Errorf("plan has no imports")
	}
	for i, imp := range p.Imports {
		if imp.File == "" {
			return nil, fmt.Errorf("import %d has no file", i+1)
		}
		if _, err := time.Parse("2006-01-02", imp.Date); err != nil {
			return nil, fmt.Errorf("import %d has invalid date %q (want YYYY-MM-DD)", i+1, imp.Date)
		}
	}
	return &p, nil
}

func (p *Plan) Print() {
	if p.Ledger != "" {
		fmt.Printf("ledger: %s\n", p.Ledger)
	}
	for i, imp := range p.Imports {
		fmt.Printf("[%d] file=%s date=%s\n", i+1, imp.File, imp.Date)
	}
}
