package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/bcosta-dev/betledger/pkg/models"
	"github.com/bcosta-dev/betledger/pkg/reconcile"
	"github.com/bcosta-dev/betledger/pkg/storage"
)

var (
	ErrNotFound = errors.New("bet not found")

	// ErrInvalidRecord rejects records that would corrupt the ledger math.
	ErrInvalidRecord = errors.New("stake and odd must be positive")
)

// Store owns the bet collection, newest first. It is the sole writer: every
// mutating operation re-serializes the full collection to the underlying
// storage, and rolls the in-memory state back when persistence fails, so
// callers never observe a half-applied mutation.
//
// The store is meant for a single synchronous call path (one user, one
// operation at a time) and does no locking.
type Store struct {
	logger  *log.Logger
	storage storage.Store
	bets    []*models.BetRecord
}

// Open loads the persisted ledger. Absent, unparsable or non-array data
// starts an empty ledger rather than failing the caller.
func Open(st storage.Store, logger *log.Logger) *Store {
	s := &Store{logger: logger, storage: st}

	data, err := st.Load()
	if err != nil {
		logger.Warn("could not read stored ledger, starting empty", "error", err)
		return s
	}
	if len(data) == 0 {
		return s
	}

	var bets []*models.BetRecord
	if err := json.Unmarshal(data, &bets); err != nil {
		logger.Warn("stored ledger is not a bet array, starting empty", "error", err)
		return s
	}
	s.bets = bets
	logger.Debug("ledger loaded", "bets", len(bets))
	return s
}

// Bets returns the records newest first. The slice is a copy; the records
// are shared and must not be mutated by callers.
func (s *Store) Bets() []*models.BetRecord {
	out := make([]*models.BetRecord, len(s.bets))
	copy(out, s.bets)
	return out
}

func (s *Store) Len() int {
	return len(s.bets)
}

// Add inserts a manually entered record: assigns a fresh id and creation
// timestamp, recomputes profit from the outcome, prepends and persists.
func (s *Store) Add(rec *models.BetRecord) error {
	if rec.Stake <= 0 || rec.Odd <= 0 {
		return ErrInvalidRecord
	}
	rec.ID = uuid.NewString()
	rec.Timestamp = time.Now().UTC().Format(time.RFC3339)
	rec.Profit = models.ComputeProfit(rec.Odd, rec.Outcome(), rec.Stake)

	s.bets = append([]*models.BetRecord{rec}, s.bets...)
	if err := s.persist(); err != nil {
		s.bets = s.bets[1:]
		return err
	}
	s.logger.Info("bet added", "id", rec.ID, "date", rec.Date, "profit", rec.Profit)
	return nil
}

// Update replaces every field of the matching record except the id and the
// original creation timestamp, recomputing profit from the new outcome.
// Returns ErrNotFound when the id is unknown.
func (s *Store) Update(id string, fields models.BetRecord) error {
	for i, b := range s.bets {
		if b.ID != id {
			continue
		}
		updated := fields
		updated.ID = b.ID
		updated.Timestamp = b.Timestamp
		updated.Profit = models.ComputeProfit(updated.Odd, updated.Outcome(), updated.Stake)

		prev := s.bets[i]
		s.bets[i] = &updated
		if err := s.persist(); err != nil {
			s.bets[i] = prev
			return err
		}
		s.logger.Info("bet updated", "id", id, "profit", updated.Profit)
		return nil
	}
	return ErrNotFound
}

// Delete removes the matching record. Removing an absent id is a no-op.
func (s *Store) Delete(id string) error {
	for i, b := range s.bets {
		if b.ID != id {
			continue
		}
		prev := s.bets
		s.bets = append(append([]*models.BetRecord{}, s.bets[:i]...), s.bets[i+1:]...)
		if err := s.persist(); err != nil {
			s.bets = prev
			return err
		}
		s.logger.Info("bet deleted", "id", id)
		return nil
	}
	return nil
}

// DeleteByDate removes every record whose date equals date (YYYY-MM-DD) and
// returns how many were removed.
func (s *Store) DeleteByDate(date string) (int, error) {
	kept := make([]*models.BetRecord, 0, len(s.bets))
	removed := 0
	for _, b := range s.bets {
		if b.Date == date {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	if removed == 0 {
		return 0, nil
	}

	prev := s.bets
	s.bets = kept
	if err := s.persist(); err != nil {
		s.bets = prev
		return 0, err
	}
	s.logger.Info("bets purged", "date", date, "removed", removed)
	return removed, nil
}

// ImportMerge reconciles parsed candidates against the current ledger,
// prepends the ones not yet present and persists once. The merge is atomic:
// on persistence failure the ledger is unchanged. Returns the accepted and
// duplicate counts for user feedback.
func (s *Store) ImportMerge(candidates []*models.BetRecord) (accepted, duplicates int, err error) {
	report := reconcile.Build(candidates, s.bets)
	toImport := report.ToImport()
	if len(toImport) == 0 {
		return 0, report.DuplicateCount(), nil
	}

	prev := s.bets
	s.bets = append(append([]*models.BetRecord{}, toImport...), s.bets...)
	if err := s.persist(); err != nil {
		s.bets = prev
		return 0, 0, err
	}
	s.logger.Info("bets imported", "accepted", len(toImport), "duplicates", report.DuplicateCount())
	return len(toImport), report.DuplicateCount(), nil
}

func (s *Store) persist() error {
	bets := s.bets
	if bets == nil {
		bets = []*models.BetRecord{}
	}
	data, err := json.Marshal(bets)
	if err != nil {
		return fmt.Errorf("error serializing ledger: %w", err)
	}
	if err := s.storage.Save(data); err != nil {
		return fmt.Errorf("error persisting ledger: %w", err)
	}
	return nil
}
