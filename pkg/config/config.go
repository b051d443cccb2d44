package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds everything the CLI needs outside the command arguments.
type Config struct {
	// LedgerPath is the JSON file holding the full bet collection.
	LedgerPath string `mapstructure:"ledger_path"`
	// MarketKeyword is the market-family filter applied by the importer.
	MarketKeyword string `mapstructure:"market_keyword"`
	LogLevel      string `mapstructure:"log_level"`
}

// Build loads betledger.yaml (or cfgFile when given) and applies flag
// overrides. A missing config file is fine; defaults cover everything.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("ledger_path", defaultLedgerPath())
	v.SetDefault("market_keyword", "minutos")
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("betledger")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "betledger"))
		}
	}

	// An explicitly named file must exist; the default search may come up
	// empty.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if flags != nil {
		bindings := map[string]string{
			"ledger_path": "ledger",
			"log_level":   "log-level",
		}
		for key, name := range bindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func defaultLedgerPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "betledger.json"
	}
	return filepath.Join(home, ".betledger", "bets.json")
}
