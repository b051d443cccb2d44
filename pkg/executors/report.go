package executors

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/bcosta-dev/betledger/pkg/stats"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	profitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func money(v float64) string {
	s := fmt.Sprintf("R$ %.2f", v)
	if v < 0 {
		return lossStyle.Render(s)
	}
	return profitStyle.Render(s)
}

// Report prints the headline figures plus the per-interval and
// per-championship breakdowns, optionally restricted to [from, to].
func (e *Executor) Report(from, to string) error {
	bets := stats.FilterRange(e.store.Bets(), from, to)
	summary := stats.Summarize(bets)

	fmt.Println(headerStyle.Render("Summary"))
	fmt.Printf("  total profit : %s\n", money(summary.TotalProfit))
	fmt.Printf("  bets         : %d (%d green / %d red)\n", summary.TotalBets, summary.GreenBets, summary.RedBets)
	fmt.Printf("  win rate     : %.1f%%\n", summary.WinRate)
	fmt.Printf("  average odd  : %.2f\n", summary.AverageOdd)
	fmt.Printf("  today        : %d bet(s)\n", stats.CountOnDate(bets, stats.Today()))

	if rows := stats.ByInterval(bets); len(rows) > 0 {
		fmt.Println(headerStyle.Render("\nBy minute window"))
		for _, row := range rows {
			fmt.Printf("  %-14s %3d bet(s)  %5.1f%%  %s\n", row.Key, row.Bets, row.WinRate, money(row.Profit))
		}
	}

	if rows := stats.ByChampionship(bets); len(rows) > 0 {
		fmt.Println(headerStyle.Render("\nBy championship"))
		for _, row := range rows {
			fmt.Printf("  %-24s %3d bet(s)  %5.1f%%  %s\n", row.Key, row.Bets, row.WinRate, money(row.Profit))
		}
	}
	return nil
}
