package stats

// Package stats computes the aggregate figures shown on the dashboard and
// the reports page. All functions are pure and tolerate both record shapes
// (imported records with a status, manual entries with a result string).

import (
	"time"

	"github.com/bcosta-dev/betledger/pkg/models"
)

// TimeIntervals is the canonical list of minute windows the ledger tracks.
var TimeIntervals = []string{
	"0-9:59", "10-19:59", "20-29:59", "30-39:59", "40-49:59",
	"50-59:59", "60-69:59", "70-79:59", "80-fim",
}

// Championships is the canonical championship list offered on manual entry.
var Championships = []string{
	"Brasileirão Série A", "Brasileirão Série B", "Brasileirão Série C", "Copa do Brasil",
	"Premier League", "Championship", "League One", "FA Cup",
	"Bundesliga", "2. Bundesliga", "3. Liga", "DFB Pokal",
	"Serie A", "Serie B", "Serie C", "Coppa Italia",
	"La Liga", "Segunda División", "Copa del Rey",
	"Ligue 1", "Ligue 2", "Coupe de France",
	"Champions League", "Europa League", "Conference League",
	"Copa Libertadores", "Copa Sudamericana",
	"Outro",
}

// Summary holds the headline figures.
type Summary struct {
	TotalProfit float64
	TotalBets   int
	GreenBets   int
	RedBets     int
	WinRate     float64 // percent, over decided bets only
	AverageOdd  float64 // over all bets
}

// Summarize computes the headline figures over the given records. The win
// rate only counts decided bets; void, cashed-out and pending wagers are
// excluded from it but still count toward the totals and average odd.
func Summarize(bets []*models.BetRecord) Summary {
	var s Summary
	s.TotalBets = len(bets)

	var oddSum float64
	for _, b := range bets {
		s.TotalProfit += b.Profit
		oddSum += b.Odd
		if b.Won() {
			s.GreenBets++
		} else if b.Lost() {
			s.RedBets++
		}
	}

	if decided := s.GreenBets + s.RedBets; decided > 0 {
		s.WinRate = float64(s.GreenBets) / float64(decided) * 100
	}
	if s.TotalBets > 0 {
		s.AverageOdd = oddSum / float64(s.TotalBets)
	}
	return s
}

// CountOnDate returns how many records carry the given date (YYYY-MM-DD).
func CountOnDate(bets []*models.BetRecord, date string) int {
	n := 0
	for _, b := range bets {
		if b.Date == date {
			n++
		}
	}
	return n
}

// Today returns the current date in the ledger's date format.
func Today() string {
	return time.Now().Format("2006-01-02")
}

// FilterRange keeps records whose date falls in [from, to]. Empty bounds are
// open. ISO dates compare correctly as strings.
func FilterRange(bets []*models.BetRecord, from, to string) []*models.BetRecord {
	out := make([]*models.BetRecord, 0, len(bets))
	for _, b := range bets {
		if from != "" && b.Date < from {
			continue
		}
		if to != "" && b.Date > to {
			continue
		}
		out = append(out, b)
	}
	return out
}

// GroupStat is one row of a grouped report.
type GroupStat struct {
	Key     string
	Bets    int
	Wins    int
	WinRate float64
	Profit  float64
}

// ByInterval groups records by their minute window, in the canonical
// interval order, followed by any windows outside the canonical list (the
// importer stores exact vendor windows like "00:00-09:59"). Empty groups
// are omitted.
func ByInterval(bets []*models.BetRecord) []GroupStat {
	return groupBy(bets, TimeIntervals, func(b *models.BetRecord) string { return b.MarketMinutes })
}

// ByChampionship groups records by championship in the canonical order,
// followed by any other values (imports carry the placeholder). Empty
// groups are omitted.
func ByChampionship(bets []*models.BetRecord) []GroupStat {
	return groupBy(bets, Championships, func(b *models.BetRecord) string { return b.Championship })
}

func groupBy(bets []*models.BetRecord, canonical []string, key func(*models.BetRecord) string) []GroupStat {
	groups := make(map[string][]*models.BetRecord)
	var extraOrder []string
	known := make(map[string]bool, len(canonical))
	for _, k := range canonical {
		known[k] = true
	}

	for _, b := range bets {
		k := key(b)
		if _, seen := groups[k]; !seen && !known[k] {
			extraOrder = append(extraOrder, k)
		}
		groups[k] = append(groups[k], b)
	}

	var out []GroupStat
	for _, k := range append(append([]string{}, canonical...), extraOrder...) {
		members := groups[k]
		if len(members) == 0 {
			continue
		}
		stat := GroupStat{Key: k, Bets: len(members)}
		for _, b := range members {
			stat.Profit += b.Profit
			if b.Won() {
				stat.Wins++
			}
		}
		stat.WinRate = float64(stat.Wins) / float64(stat.Bets) * 100
		out = append(out, stat)
	}
	return out
}
