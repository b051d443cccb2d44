package models

import (
	"regexp"
	"strconv"
	"strings"
)

var amountPattern = regexp.MustCompile(`[\d.,]+`)

// ParseAmount extracts the first numeric substring from a vendor money text
// such as "R$ 1.234,56" and parses it with the pt-BR convention: "." is a
// thousands separator, "," the decimal one. Returns 0 when nothing parses.
func ParseAmount(s string) float64 {
	m := amountPattern.FindString(s)
	if m == "" {
		return 0
	}
	m = strings.ReplaceAll(m, ".", "")
	m = strings.ReplaceAll(m, ",", ".")
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseDecimal parses a plain decimal that may use either separator, like an
// odd written as "1.85" or "1,85". Returns 0 when nothing parses.
func ParseDecimal(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil {
		return 0
	}
	return v
}

// ComputeProfit returns the signed profit for a wager outcome. The outcome
// accepts both record shapes: settlement statuses ("won", "lost", ...) and
// the manual-entry result strings ("green"/"Ganha", "red"/"Perdida",
// "Devolvida", "Cashout", "void"). Unknown outcomes, including "pending",
// yield 0; the function never fails.
func ComputeProfit(odd float64, outcome string, stake float64) float64 {
	switch outcome {
	case "green", "Ganha", string(StatusWon):
		return (odd - 1) * stake
	case "red", "Perdida", string(StatusLost):
		return -stake
	case "Devolvida", "Cashout", "void", string(StatusCashedOut):
		return 0
	}
	return 0
}

// ComputeProfitText is the manual-entry form of ComputeProfit, where odd and
// stake arrive as user text and may use either decimal separator.
func ComputeProfitText(odd, outcome, stake string) float64 {
	return ComputeProfit(ParseDecimal(odd), outcome, ParseDecimal(stake))
}
