// Package ledger holds the arithmetic of an order: item areas and totals,
// the grand total, and the advance payments held against it.
//
// Every function here is total. Blank or malformed numeric input counts as
// zero instead of failing, because form fields are routinely empty while an
// order is being typed in.
package ledger

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/KareemMohsenAli/kitchenProducts/internal/domain"
)

var numberPrefix = regexp.MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?`)

// ParseNumberOrZero reads the longest leading decimal number of raw, so
// "2.5m" is 2.5. Input with no leading number, and results that overflow,
// yield 0. Hex, underscores and NaN/Inf spellings are not numbers here.
func ParseNumberOrZero(raw string) float64 {
	s := numberPrefix.FindString(strings.TrimSpace(raw))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Round2 rounds v to two decimal places, halves away from zero.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func ComputeArea(width, length float64) float64 {
	return product(width, length)
}

func ComputeItemTotal(area, quantity, pricePerMeter float64) float64 {
	return product(area, quantity, pricePerMeter)
}

func ComputeGrandTotal(items []domain.OrderItem) float64 {
	totals := make([]float64, 0, len(items))
	for _, item := range items {
		totals = append(totals, item.Total)
	}
	return Sum(totals)
}

// Sum adds amounts and rounds the result to two decimals.
func Sum(amounts []float64) float64 {
	sum := decimal.Zero
	for _, a := range amounts {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(a))
	}
	return sum.Round(2).InexactFloat64()
}

type Aggregate struct {
	Total     float64 `json:"total"`
	Remaining float64 `json:"remaining"`
}

// ComputeAdvanceAggregate sums the payments whose amount parses to a positive
// number. Remaining is grandTotal minus that sum and goes negative when the
// customer has overpaid.
func ComputeAdvanceAggregate(grandTotal float64, payments []domain.Payment) Aggregate {
	sum := decimal.Zero
	for _, p := range payments {
		amount := ParseNumberOrZero(string(p.Amount))
		if amount > 0 {
			sum = sum.Add(decimal.NewFromFloat(amount))
		}
	}
	total := sum.Round(2)
	if math.IsNaN(grandTotal) || math.IsInf(grandTotal, 0) {
		grandTotal = 0
	}
	remaining := decimal.NewFromFloat(grandTotal).Sub(total).Round(2)
	return Aggregate{
		Total:     total.InexactFloat64(),
		Remaining: remaining.InexactFloat64(),
	}
}

func ToggleItemStatus(item domain.OrderItem) domain.OrderItem {
	if item.Status == domain.ItemStatusDone {
		item.Status = domain.ItemStatusWorking
	} else {
		item.Status = domain.ItemStatusDone
	}
	return item
}

func product(factors ...float64) float64 {
	result := decimal.NewFromInt(1)
	for _, f := range factors {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		result = result.Mul(decimal.NewFromFloat(f))
	}
	return result.Round(2).InexactFloat64()
}
