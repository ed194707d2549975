package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type Payment struct {
	Amount NumberInput `json:"amount"`
	Date   string      `json:"date,omitempty"`
}

// NumberInput is a numeric value as it was typed into a form. It decodes from
// a JSON number or string and keeps the raw text, so blank and malformed
// entries survive a round trip. Callers turn it into a number with
// ledger.ParseNumberOrZero.
type NumberInput string

func NewNumberInput(v float64) NumberInput {
	return NumberInput(strconv.FormatFloat(v, 'f', -1, 64))
}

func (n *NumberInput) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*n = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*n = NumberInput(s)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(trimmed, &num); err != nil {
		return fmt.Errorf("numeric input must be a number or a string: %w", err)
	}
	*n = NumberInput(num.String())
	return nil
}

func (n NumberInput) MarshalJSON() ([]byte, error) {
	s := string(n)
	if isNumberLiteral(s) {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

func (n NumberInput) String() string {
	return string(n)
}

func isNumberLiteral(s string) bool {
	if s == "" || s != strings.TrimSpace(s) {
		return false
	}
	if c := s[0]; c != '-' && (c < '0' || c > '9') {
		return false
	}
	return json.Valid([]byte(s))
}

type PaymentSourceKind int

const (
	PaymentSourceNone PaymentSourceKind = iota
	PaymentSourceList
	PaymentSourceLegacy
)

// PaymentSource is the shape a stored order carried its advance payments in:
// nothing, the advancePayments list, or the older single advancePayment
// amount kept beside remainingAmount. Payments resolves every shape to the
// list form.
type PaymentSource struct {
	Kind   PaymentSourceKind
	List   []Payment
	Amount NumberInput
}

func (s PaymentSource) Payments() []Payment {
	switch s.Kind {
	case PaymentSourceList:
		if s.List == nil {
			return []Payment{}
		}
		return s.List
	case PaymentSourceLegacy:
		if strings.TrimSpace(string(s.Amount)) == "" {
			return []Payment{}
		}
		return []Payment{{Amount: s.Amount}}
	default:
		return []Payment{}
	}
}

func decodePaymentSource(list json.RawMessage, legacyAmount *NumberInput) (PaymentSource, error) {
	trimmed := bytes.TrimSpace(list)
	if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		var payments []Payment
		if err := json.Unmarshal(trimmed, &payments); err != nil {
			return PaymentSource{}, fmt.Errorf("decoding advancePayments: %w", err)
		}
		return PaymentSource{Kind: PaymentSourceList, List: payments}, nil
	}
	if legacyAmount != nil {
		return PaymentSource{Kind: PaymentSourceLegacy, Amount: *legacyAmount}, nil
	}
	return PaymentSource{Kind: PaymentSourceNone}, nil
}
