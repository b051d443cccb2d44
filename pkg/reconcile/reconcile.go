package reconcile

// Package reconcile compares freshly parsed bet records with the ones
// already in the ledger. It is isolated from any CLI concerns so that the
// plan (dry-run) and apply paths share the same logic.

import (
	"github.com/bcosta-dev/betledger/pkg/models"
)

// Status indicates the reconciliation result for a candidate record.
//
//   - Duplicate: a record with the same id already exists in the ledger.
//   - New:       missing, will be imported.
type Status int

const (
	Duplicate Status = iota
	New
)

// Entry links a candidate record with its reconciliation status.
type Entry struct {
	Record *models.BetRecord
	Status Status
}

// Report is produced by Build. It keeps every candidate plus metadata so
// callers can decide what to display or merge without re-running the
// comparison.
type Report struct {
	Items []Entry

	toImport []*models.BetRecord
}

// Build walks candidates in order and flags the ones whose id already
// exists in the ledger. existing is never mutated; candidate order is
// preserved.
func Build(candidates, existing []*models.BetRecord) *Report {
	known := make(map[string]struct{}, len(existing))
	for _, rec := range existing {
		known[rec.ID] = struct{}{}
	}

	items := make([]Entry, 0, len(candidates))
	toImport := make([]*models.BetRecord, 0)

	for _, cand := range candidates {
		status := New
		if _, ok := known[cand.ID]; ok {
			status = Duplicate
		}
		items = append(items, Entry{Record: cand, Status: status})
		if status == New {
			toImport = append(toImport, cand)
		}
	}

	return &Report{Items: items, toImport: toImport}
}

// NewCount returns how many candidates are not yet in the ledger.
func (r *Report) NewCount() int {
	return len(r.toImport)
}

// DuplicateCount returns how many candidates were already imported.
func (r *Report) DuplicateCount() int {
	return len(r.Items) - len(r.toImport)
}

// ToImport returns the candidates that should be merged, in candidate order.
func (r *Report) ToImport() []*models.BetRecord {
	return r.toImport
}
