package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bcosta-dev/betledger/pkg/config"
	"github.com/bcosta-dev/betledger/pkg/executors"
	"github.com/bcosta-dev/betledger/pkg/ledger"
	"github.com/bcosta-dev/betledger/pkg/models"
	"github.com/bcosta-dev/betledger/pkg/parser"
	"github.com/bcosta-dev/betledger/pkg/plan"
	"github.com/bcosta-dev/betledger/pkg/storage"
)

var (
	cfgFile    string
	debugMode  bool
	cliFilters filters
)

// app is everything a command needs, built once per invocation.
type app struct {
	logger *log.Logger
	cfg    *config.Config
	store  *ledger.Store
	exec   *executors.Executor
}

func buildApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Build(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	if debugMode {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "betledger",
		Level:           level,
	})

	store := ledger.Open(storage.NewFileStore(cfg.LedgerPath), logger)

	p := parser.New(logger)
	if cfg.MarketKeyword != "" {
		p.Keyword = cfg.MarketKeyword
	}

	exec := executors.New(logger, p, store)
	exec.Debug = debugMode

	return &app{logger: logger, cfg: cfg, store: store, exec: exec}, nil
}

func requireDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", date)
	}
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "betledger",
	Short: "Personal minutes-market betting ledger",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var importCmd = &cobra.Command{
	Use:   "import [flags] <settled-bets.html>",
	Short: "Import a vendor settled-bets HTML export into the ledger",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, _ := cmd.Flags().GetString("date")
		if err := requireDate(date); err != nil {
			return err
		}
		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		return a.exec.Import(args[0], date)
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a bet manually",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rec, err := recordFromFlags(cmd)
		if err != nil {
			return err
		}
		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		if err := a.store.Add(rec); err != nil {
			return err
		}
		fmt.Printf("added bet %s (profit R$ %.2f)\n", rec.ID, rec.Profit)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit [flags] <id>",
	Short: "Replace the fields of an existing bet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := recordFromFlags(cmd)
		if err != nil {
			return err
		}
		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		if err := a.store.Update(args[0], *rec); err != nil {
			if errors.Is(err, ledger.ErrNotFound) {
				a.logger.Warn("no bet with that id", "id", args[0])
				return nil
			}
			return err
		}
		fmt.Printf("updated bet %s\n", args[0])
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List bets, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		bets := cliFilters.apply(a.store.Bets())
		for _, b := range bets {
			fmt.Printf("%s | %s | %s x %s | %s | R$ %.2f @ %.2f | %-10s | R$ %+.2f\n",
				b.ID, b.Date, b.HomeTeam, b.AwayTeam, b.MarketMinutes,
				b.Stake, b.Odd, b.Outcome(), b.Profit)
		}
		fmt.Printf("%d bet(s)\n", len(bets))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one bet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		return a.store.Delete(args[0])
	},
}

var purgeCmd = &cobra.Command{
	Use:   "purge <date>",
	Short: "Delete every bet recorded under a date (YYYY-MM-DD)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireDate(args[0]); err != nil {
			return err
		}
		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		removed, err := a.store.DeleteByDate(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("removed %d bet(s) dated %s\n", removed, args[0])
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show profit, win rate and grouped breakdowns",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		return a.exec.Report(cliFilters.startDate, cliFilters.endDate)
	},
}

var planCmd = &cobra.Command{
	Use:   "plan <plan.yaml>",
	Short: "Preview a YAML plan of slip imports (dry-run)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := plan.Load(args[0])
		if err != nil {
			return err
		}
		a, err := buildAppWithLedger(cmd, p.Ledger)
		if err != nil {
			return err
		}
		fmt.Printf("Plan preview for %s\n", args[0])
		p.Print()
		return a.exec.Plan(p.Imports)
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply <plan.yaml>",
	Short: "Run every import in a YAML plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := plan.Load(args[0])
		if err != nil {
			return err
		}
		a, err := buildAppWithLedger(cmd, p.Ledger)
		if err != nil {
			return err
		}
		return a.exec.Apply(p.Imports)
	},
}

// buildAppWithLedger honors a plan-level ledger override.
func buildAppWithLedger(cmd *cobra.Command, ledgerPath string) (*app, error) {
	a, err := buildApp(cmd)
	if err != nil {
		return nil, err
	}
	if ledgerPath == "" || ledgerPath == a.cfg.LedgerPath {
		return a, nil
	}
	a.store = ledger.Open(storage.NewFileStore(ledgerPath), a.logger)
	p := parser.New(a.logger)
	if a.cfg.MarketKeyword != "" {
		p.Keyword = a.cfg.MarketKeyword
	}
	a.exec = executors.New(a.logger, p, a.store)
	a.exec.Debug = debugMode
	return a, nil
}

// recordFromFlags assembles a record for the manual add/edit path. Profit is
// left to the store, which recomputes it from the result.
func recordFromFlags(cmd *cobra.Command) (*models.BetRecord, error) {
	flags := cmd.Flags()
	date, _ := flags.GetString("date")
	championship, _ := flags.GetString("championship")
	home, _ := flags.GetString("home")
	away, _ := flags.GetString("away")
	minutes, _ := flags.GetString("minutes")
	odd, _ := flags.GetString("odd")
	result, _ := flags.GetString("result")
	stake, _ := flags.GetString("stake")

	if err := requireDate(date); err != nil {
		return nil, err
	}
	if home == "" || away == "" || minutes == "" || odd == "" || result == "" || championship == "" {
		return nil, fmt.Errorf("championship, home, away, minutes, odd and result are required")
	}

	return &models.BetRecord{
		Date:          date,
		Championship:  championship,
		HomeTeam:      home,
		AwayTeam:      away,
		MarketMinutes: minutes,
		Odd:           models.ParseDecimal(odd),
		Result:        result,
		Stake:         models.ParseDecimal(stake),
	}, nil
}

func addRecordFlags(cmd *cobra.Command) {
	cmd.Flags().String("date", time.Now().Format("2006-01-02"), "Bet date (YYYY-MM-DD)")
	cmd.Flags().String("championship", "", "Championship name")
	cmd.Flags().String("home", "", "Home team")
	cmd.Flags().String("away", "", "Away team")
	cmd.Flags().String("minutes", "", "Minute window, e.g. 0-9:59")
	cmd.Flags().String("odd", "", "Decimal odd, comma or dot separator")
	cmd.Flags().String("result", "", "green | red | Devolvida | Cashout | void")
	cmd.Flags().String("stake", "100", "Stake in currency units")
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is betledger.yaml)")
	rootCmd.PersistentFlags().String("ledger", "", "Ledger file (overrides config)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Dump parsed records and enable debug logging")

	rootCmd.PersistentFlags().StringVar(&cliFilters.startDate, "start", "", "Start date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&cliFilters.endDate, "end", "", "End date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&cliFilters.status, "status", "", "Filter by status or result")
	rootCmd.PersistentFlags().StringVar(&cliFilters.team, "team", "", "Filter by team name (case insensitive)")

	importCmd.Flags().String("date", "", "Date to assign to the imported bets (YYYY-MM-DD)")

	addRecordFlags(addCmd)
	addRecordFlags(editCmd)

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(applyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
