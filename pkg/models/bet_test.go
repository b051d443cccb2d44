package models

import (
	"strings"
	"testing"
)

func TestImportIDDeterministic(t *testing.T) {
	a := ImportID("2024-03-01", "Flamengo", "Palmeiras", "00:00-09:59", "00:00 - 09:59 Mais de 0.5", 100)
	b := ImportID("2024-03-01", "Flamengo", "Palmeiras", "00:00-09:59", "00:00 - 09:59 Mais de 0.5", 100)
	if a != b {
		t.Errorf("same inputs produced different ids: %q vs %q", a, b)
	}
}

func TestImportIDNormalization(t *testing.T) {
	id := ImportID("2024-03-01", "Grêmio  FBPA", "SC Internacional", "10:00-19:59", "Mais de 1.5", 50)
	if id != strings.ToLower(id) {
		t.Errorf("id is not lowercased: %q", id)
	}
	if strings.ContainsAny(id, " \t\n") {
		t.Errorf("id contains whitespace: %q", id)
	}
	if !strings.Contains(id, "grêmio-fbpa") {
		t.Errorf("whitespace run not collapsed to separator: %q", id)
	}
}

func TestImportIDDistinguishesFields(t *testing.T) {
	base := ImportID("2024-03-01", "A", "B", "00:00-09:59", "Mais de 0.5", 100)
	variants := []string{
		ImportID("2024-03-02", "A", "B", "00:00-09:59", "Mais de 0.5", 100),
		ImportID("2024-03-01", "C", "B", "00:00-09:59", "Mais de 0.5", 100),
		ImportID("2024-03-01", "A", "B", "10:00-19:59", "Mais de 0.5", 100),
		ImportID("2024-03-01", "A", "B", "00:00-09:59", "Mais de 1.5", 100),
		ImportID("2024-03-01", "A", "B", "00:00-09:59", "Mais de 0.5", 50),
	}
	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d collided with base id %q", i, base)
		}
	}
}

func TestOutcomePrefersResult(t *testing.T) {
	b := &BetRecord{Status: StatusWon, Result: "red"}
	if b.Outcome() != "red" {
		t.Errorf("Outcome() = %q, want manual result to win", b.Outcome())
	}
	b = &BetRecord{Status: StatusLost}
	if b.Outcome() != "lost" {
		t.Errorf("Outcome() = %q, want status fallback", b.Outcome())
	}
}

func TestDecided(t *testing.T) {
	tests := []struct {
		rec  BetRecord
		want bool
	}{
		{BetRecord{Status: StatusWon}, true},
		{BetRecord{Status: StatusLost}, true},
		{BetRecord{Result: "green"}, true},
		{BetRecord{Result: "Perdida"}, true},
		{BetRecord{Status: StatusVoid}, false},
		{BetRecord{Status: StatusCashedOut}, false},
		{BetRecord{Status: StatusPending}, false},
		{BetRecord{Result: "Devolvida"}, false},
	}
	for _, tt := range tests {
		if got := tt.rec.Decided(); got != tt.want {
			t.Errorf("Decided() on %+v = %v, want %v", tt.rec, got, tt.want)
		}
	}
}
