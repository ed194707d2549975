package domain

import (
	"encoding/json"
	"strconv"
	"time"
)

type Order struct {
	ID                   int64       `json:"id"`
	UserID               int64       `json:"userId"`
	Items                []OrderItem `json:"items"`
	TotalAmount          float64     `json:"totalAmount"`
	Address              *string     `json:"address,omitempty"`
	AdvancePayments      []Payment   `json:"advancePayments"`
	TotalAdvancePayments float64     `json:"totalAdvancePayments"`
	RemainingAmount      float64     `json:"remainingAmount"`
	CreatedAt            time.Time   `json:"createdAt"`
	UpdatedAt            time.Time   `json:"updatedAt"`

	paymentSource PaymentSourceKind
}

// LegacyPayments reports whether the record was decoded from the
// single-payment shape and its payment aggregates may be missing.
func (o Order) LegacyPayments() bool {
	return o.paymentSource == PaymentSourceLegacy
}

func (o *Order) UnmarshalJSON(data []byte) error {
	type orderAlias Order
	var raw struct {
		orderAlias
		AdvancePayments json.RawMessage `json:"advancePayments"`
		AdvancePayment  *NumberInput    `json:"advancePayment"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	source, err := decodePaymentSource(raw.AdvancePayments, raw.AdvancePayment)
	if err != nil {
		return err
	}

	*o = Order(raw.orderAlias)
	o.AdvancePayments = source.Payments()
	o.paymentSource = source.Kind
	if o.Items == nil {
		o.Items = []OrderItem{}
	}
	return nil
}

// OrderUpdate holds the fields of a partial order update. Nil fields are left
// untouched. A non-nil empty Address clears the stored address.
type OrderUpdate struct {
	UserID               *int64
	Items                []OrderItem
	TotalAmount          *float64
	Address              *string
	AdvancePayments      []Payment
	TotalAdvancePayments *float64
	RemainingAmount      *float64
	UpdatedAt            *time.Time
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
