package dto

import "github.com/KareemMohsenAli/kitchenProducts/internal/domain"

// OrderDetails is an order together with the name of the customer who owns
// it. Orphan is set when the user record no longer exists and CustomerName
// carries the unknown-user label. Overpaid flags a negative remaining amount.
type OrderDetails struct {
	domain.Order
	CustomerName string `json:"customerName"`
	Orphan       bool   `json:"orphan,omitempty"`
	Overpaid     bool   `json:"overpaid,omitempty"`
}

type OrderListSummary struct {
	Count       int     `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
}

type OrderListResponse struct {
	Orders  []OrderDetails   `json:"orders"`
	Summary OrderListSummary `json:"summary"`
}
