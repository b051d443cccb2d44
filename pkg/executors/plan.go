package executors

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/k0kubun/pp/v3"

	"github.com/bcosta-dev/betledger/pkg/plan"
	"github.com/bcosta-dev/betledger/pkg/reconcile"
)

var (
	duplicateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
	newStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
)

// Plan previews a batch of slip imports without touching the ledger: each
// file is parsed and reconciled against the current state, and every
// candidate is printed flagged as new or duplicate.
func (e *Executor) Plan(imports []plan.Import) error {
	existing := e.store.Bets()

	totalNew, totalDup := 0, 0
	for _, imp := range imports {
		e.logger.Debug("planning import", "file", imp.File, "date", imp.Date)

		data, err := os.ReadFile(imp.File)
		if err != nil {
			return fmt.Errorf("failed to read slip file %s: %w", imp.File, err)
		}
		records, stats, err := e.parser.ParseSettledBets(data, imp.Date)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", imp.File, err)
		}
		if e.Debug {
			pp.Println(records)
		}

		report := reconcile.Build(records, existing)
		for _, entry := range report.Items {
			r := entry.Record
			line := fmt.Sprintf("%s | %s x %s | %s | R$ %.2f @ %.2f | %s",
				r.Date, r.HomeTeam, r.AwayTeam, r.MarketMinutes, r.Stake, r.Odd, r.Status)
			if entry.Status == reconcile.Duplicate {
				fmt.Println(duplicateStyle.Render("= " + line))
				continue
			}
			fmt.Println(newStyle.Render("+ " + line))
		}

		e.logger.Debug("planned file",
			"file", imp.File, "items", stats.Found,
			"new", report.NewCount(), "duplicates", report.DuplicateCount(),
			"skipped_market", stats.SkippedMarket, "skipped_invalid", stats.SkippedInvalid)
		totalNew += report.NewCount()
		totalDup += report.DuplicateCount()
	}

	if totalNew == 0 {
		fmt.Printf("\nPlan: nothing to import, %d bet(s) already in the ledger\n", totalDup)
	} else {
		fmt.Printf("\nPlan: %d bet(s) will be imported, %d already in the ledger\n", totalNew, totalDup)
	}
	return nil
}
