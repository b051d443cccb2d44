package main

import (
	"strings"

	"github.com/bcosta-dev/betledger/pkg/models"
)

type filters struct {
	startDate string
	endDate   string
	status    string
	team      string
}

func (f *filters) match(b *models.BetRecord) bool {
	if f.startDate != "" && b.Date < f.startDate {
		return false
	}
	if f.endDate != "" && b.Date > f.endDate {
		return false
	}
	if f.status != "" {
		switch strings.ToLower(f.status) {
		case "won", "green":
			if !b.Won() {
				return false
			}
		case "lost", "red":
			if !b.Lost() {
				return false
			}
		default:
			if string(b.Status) != f.status && b.Result != f.status {
				return false
			}
		}
	}
	if f.team != "" {
		needle := strings.ToLower(f.team)
		if !strings.Contains(strings.ToLower(b.HomeTeam), needle) &&
			!strings.Contains(strings.ToLower(b.AwayTeam), needle) {
			return false
		}
	}
	return true
}

func (f *filters) apply(bets []*models.BetRecord) []*models.BetRecord {
	out := make([]*models.BetRecord, 0, len(bets))
	for _, b := range bets {
		if f.match(b) {
			out = append(out, b)
		}
	}
	return out
}
