package dto

import (
	"github.com/KareemMohsenAli/kitchenProducts/internal/domain"
	"github.com/KareemMohsenAli/kitchenProducts/internal/ledger"
)

// OrderRequest is the body of both order creation and the full order edit.
// On edit a nil Address keeps the stored one, an empty one clears it, and
// nil AdvancePayments keep the stored payments.
type OrderRequest struct {
	CustomerName    string             `json:"customerName"`
	Address         *string            `json:"address"`
	Items           []ledger.ItemInput `json:"items"`
	AdvancePayments []domain.Payment   `json:"advancePayments"`
}

type PaymentsRequest struct {
	AdvancePayments []domain.Payment `json:"advancePayments"`
}
