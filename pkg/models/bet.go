package models

import (
	"fmt"
	"regexp"
	"strings"
)

// Status is the settlement state of a wager.
type Status string

const (
	StatusPending   Status = "pending"
	StatusWon       Status = "won"
	StatusLost      Status = "lost"
	StatusVoid      Status = "void"
	StatusCashedOut Status = "cashed_out"
)

// Sentinels written by the importer when the vendor markup is missing a
// field. They are part of the stored record contract (the table and the
// reports check against them), so they keep the vendor's locale.
const (
	MinutesNotFound      = "Não especificado"
	HomeTeamNotFound     = "Time Casa não encontrado"
	AwayTeamNotFound     = "Time Visitante não encontrado"
	SelectionNotFound    = "Seleção não encontrada"
	ChampionshipNotFound = "Não encontrado"
)

// BetRecord is one wagered outcome on a minutes market.
//
// Two shapes share this struct: imported records carry Status, Market and
// Selection; manually entered records carry a Result string instead of a
// Status. Consumers must tolerate both. The JSON names are the storage
// contract and must not change.
type BetRecord struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"` // YYYY-MM-DD, assigned by the user, not parsed from the slip
	Championship  string  `json:"championship"`
	HomeTeam      string  `json:"homeTeam"`
	AwayTeam      string  `json:"awayTeam"`
	Market        string  `json:"market,omitempty"`
	MarketMinutes string  `json:"marketMinutes"`
	Stake         float64 `json:"stake"`
	Odd           float64 `json:"odd"`
	Status        Status  `json:"status,omitempty"`
	Result        string  `json:"result,omitempty"`
	Profit        float64 `json:"profit"`
	Selection     string  `json:"selection,omitempty"`
	Timestamp     string  `json:"timestamp,omitempty"`
}

// Outcome returns the value fed to ComputeProfit: the manual-entry Result
// when present, the settlement status otherwise.
func (b *BetRecord) Outcome() string {
	if b.Result != "" {
		return b.Result
	}
	return string(b.Status)
}

// Won reports whether the bet hit, in either record shape.
func (b *BetRecord) Won() bool {
	return b.Status == StatusWon || b.Result == "green" || b.Result == "Ganha"
}

// Lost reports whether the bet missed, in either record shape.
func (b *BetRecord) Lost() bool {
	return b.Status == StatusLost || b.Result == "red" || b.Result == "Perdida"
}

// Decided reports whether the bet counts toward the win rate. Void,
// cashed-out and pending bets do not.
func (b *BetRecord) Decided() bool {
	return b.Won() || b.Lost()
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ImportID derives the deterministic id used to detect re-imports of the
// same slip: the identifying fields joined with "-", lowercased, with
// whitespace runs collapsed to the separator. Byte-identical slips imported
// with the same date always produce the same ids.
func ImportID(date, homeTeam, awayTeam, marketMinutes, selection string, stake float64) string {
	raw := fmt.Sprintf("%s-%s-%s-%s-%s-%v", date, homeTeam, awayTeam, marketMinutes, selection, stake)
	return strings.ToLower(whitespaceRun.ReplaceAllString(raw, "-"))
}
