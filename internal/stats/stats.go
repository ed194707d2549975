// Package stats summarizes the whole store: counts, revenue, category and
// month breakdowns, the best customers and the size of the data.
package stats

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"

	"github.com/KareemMohsenAli/kitchenProducts/internal/domain"
	"github.com/KareemMohsenAli/kitchenProducts/internal/i18n"
	"github.com/KareemMohsenAli/kitchenProducts/internal/ledger"
)

const topCustomerLimit = 10

type CustomerTotal struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

type Statistics struct {
	Language           string            `json:"language"`
	OrdersCount        int               `json:"ordersCount"`
	UsersCount         int               `json:"usersCount"`
	TotalAmount        float64           `json:"totalAmount"`
	AverageOrderValue  float64           `json:"averageOrderValue"`
	OrdersByCategory   map[string]int    `json:"ordersByCategory"`
	OrdersByMonth      map[string]int    `json:"ordersByMonth"`
	TopCustomers       []CustomerTotal   `json:"topCustomers"`
	EstimatedSize      int64             `json:"estimatedSize"`
	EstimatedSizeLabel string            `json:"estimatedSizeLabel"`
	CategoryLabels     map[string]string `json:"categoryLabels"`
}

// Compute builds the statistics from a full read of the store. Item counts
// per category use the raw category key, with empty categories counted
// under the localized "uncategorized" label. Months are keyed in English
// ("January 2006") in UTC. Customers are grouped by name and orders whose
// user is gone are grouped under the unknown-user label.
func Compute(users []domain.User, orders []domain.Order, loc *i18n.Localizer) Statistics {
	s := Statistics{
		Language:         loc.Lang(),
		OrdersCount:      len(orders),
		UsersCount:       len(users),
		OrdersByCategory: map[string]int{},
		OrdersByMonth:    map[string]int{},
		TopCustomers:     []CustomerTotal{},
		CategoryLabels:   map[string]string{},
	}

	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	totals := make([]float64, 0, len(orders))
	perCustomer := map[string][]float64{}
	for _, order := range orders {
		totals = append(totals, order.TotalAmount)

		for _, item := range order.Items {
			key := item.Category
			if key == "" {
				key = loc.Category("")
			}
			s.OrdersByCategory[key]++
			s.CategoryLabels[key] = loc.Category(item.Category)
		}

		month := order.CreatedAt.UTC().Format("January 2006")
		s.OrdersByMonth[month]++

		name, ok := names[order.UserID]
		if !ok {
			name = domain.UnknownUserLabel(order.UserID)
		}
		perCustomer[name] = append(perCustomer[name], order.TotalAmount)
	}

	s.TotalAmount = ledger.Sum(totals)
	if len(orders) > 0 {
		s.AverageOrderValue = ledger.Round2(s.TotalAmount / float64(len(orders)))
	}

	for name, amounts := range perCustomer {
		s.TopCustomers = append(s.TopCustomers, CustomerTotal{Name: name, Total: ledger.Sum(amounts)})
	}
	sort.Slice(s.TopCustomers, func(i, j int) bool {
		a, b := s.TopCustomers[i], s.TopCustomers[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.Name < b.Name
	})
	if len(s.TopCustomers) > topCustomerLimit {
		s.TopCustomers = s.TopCustomers[:topCustomerLimit]
	}

	s.EstimatedSize = EstimateSize(users, orders)
	s.EstimatedSizeLabel = FormatBytes(s.EstimatedSize)
	return s
}

// EstimateSize is the length of the JSON encoding of both collections.
func EstimateSize(users []domain.User, orders []domain.Order) int64 {
	var size int64
	if data, err := json.Marshal(orders); err == nil {
		size += int64(len(data))
	}
	if data, err := json.Marshal(users); err == nil {
		size += int64(len(data))
	}
	return size
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatBytes renders a byte count in 1024-based units with at most two
// decimals and no trailing zeros, e.g. "0 Bytes" or "1.5 KB".
func FormatBytes(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}
	i := 0
	for limit := int64(1024); n >= limit && i < len(sizeUnits)-1; limit *= 1024 {
		i++
	}
	value := ledger.Round2(float64(n) / math.Pow(1024, float64(i)))
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizeUnits[i]
}
