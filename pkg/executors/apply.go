package executors

import (
	"fmt"
	"os"

	"github.com/k0kubun/pp/v3"

	"github.com/bcosta-dev/betledger/pkg/plan"
)

// Apply runs every import in the plan against the ledger.
func (e *Executor) Apply(imports []plan.Import) error {
	for _, imp := range imports {
		if err := e.Import(imp.File, imp.Date); err != nil {
			return err
		}
	}
	return nil
}

// Import reads one settled-bets export and merges it into the ledger under
// the given date. The merge is all-or-nothing: a file that cannot be read
// or parsed leaves the ledger unchanged.
func (e *Executor) Import(file, date string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read slip file %s: %w", file, err)
	}

	records, stats, err := e.parser.ParseSettledBets(data, date)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", file, err)
	}
	if e.Debug {
		pp.Println(records)
	}

	if len(records) == 0 {
		fmt.Printf("%s: no eligible minutes-market bets (%d item(s) in file, %d outside market, %d incomplete)\n",
			file, stats.Found, stats.SkippedMarket, stats.SkippedInvalid)
		return nil
	}

	accepted, duplicates, err := e.store.ImportMerge(records)
	if err != nil {
		return err
	}

	if accepted == 0 {
		fmt.Printf("%s: no new bets, %d duplicate(s) skipped\n", file, duplicates)
	} else {
		fmt.Printf("%s: imported %d bet(s) for %s, %d duplicate(s) skipped\n", file, accepted, date, duplicates)
	}
	return nil
}
