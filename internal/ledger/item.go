package ledger

import (
	"strconv"
	"strings"

	"github.com/KareemMohsenAli/kitchenProducts/internal/domain"
)

// ItemInput is one order line as typed into the form.
type ItemInput struct {
	Width         domain.NumberInput `json:"width"`
	Length        domain.NumberInput `json:"length"`
	Quantity      domain.NumberInput `json:"quantity"`
	PricePerMeter domain.NumberInput `json:"pricePerMeter"`
	Category      string             `json:"category"`
	Description   string             `json:"description"`
	Status        domain.ItemStatus  `json:"status,omitempty"`
}

// BuildItem turns form input into a stored item with its derived area and
// total.
func BuildItem(in ItemInput) domain.OrderItem {
	width := ParseNumberOrZero(string(in.Width))
	length := ParseNumberOrZero(string(in.Length))
	quantity := ParseNumberOrZero(string(in.Quantity))
	price := ParseNumberOrZero(string(in.PricePerMeter))

	area := ComputeArea(width, length)
	status := in.Status
	if status != domain.ItemStatusDone {
		status = domain.ItemStatusWorking
	}

	return domain.OrderItem{
		Width:         width,
		Length:        length,
		Area:          area,
		Quantity:      quantity,
		Category:      strings.TrimSpace(in.Category),
		PricePerMeter: price,
		Total:         ComputeItemTotal(area, quantity, price),
		Description:   in.Description,
		Status:        status,
	}
}

// Totals is the set of aggregate figures stored on an order.
type Totals struct {
	TotalAmount          float64
	TotalAdvancePayments float64
	RemainingAmount      float64
}

func ComputeTotals(items []domain.OrderItem, payments []domain.Payment) Totals {
	grand := ComputeGrandTotal(items)
	agg := ComputeAdvanceAggregate(grand, payments)
	return Totals{
		TotalAmount:          grand,
		TotalAdvancePayments: agg.Total,
		RemainingAmount:      agg.Remaining,
	}
}

var ordinalKeys = []string{
	"first", "second", "third", "fourth", "fifth",
	"sixth", "seventh", "eighth", "ninth", "tenth",
}

// PaymentLabelKey returns the ordinal word key for the payment at index, or
// "{index+1}th" past the tenth payment.
func PaymentLabelKey(index int) string {
	if index >= 0 && index < len(ordinalKeys) {
		return ordinalKeys[index]
	}
	return strconv.Itoa(index+1) + "th"
}
