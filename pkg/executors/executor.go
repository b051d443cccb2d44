package executors

import (
	"github.com/charmbracelet/log"

	"github.com/bcosta-dev/betledger/pkg/ledger"
	"github.com/bcosta-dev/betledger/pkg/parser"
)

// Executor wires the parser and the ledger store behind the CLI verbs:
// plan (dry-run preview), apply/import (merge) and report.
type Executor struct {
	logger *log.Logger
	parser *parser.Parser
	store  *ledger.Store

	// Debug dumps every parsed record before reconciling.
	Debug bool
}

func New(logger *log.Logger, p *parser.Parser, store *ledger.Store) *Executor {
	return &Executor{
		logger: logger,
		parser: p,
		store:  store,
	}
}
