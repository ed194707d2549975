package usecase

import (
	"strconv"
	"strings"

	"github.com/KareemMohsenAli/kitchenProducts/internal/dto"
)

// MatchesSearch reports whether an order matches a free-text search. The
// query matches case-insensitively against the customer name and the item
// categories, and as a substring of the shortest decimal form of the total.
// A blank query matches everything.
func MatchesSearch(order dto.OrderDetails, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	lower := strings.ToLower(query)

	if strings.Contains(strings.ToLower(order.CustomerName), lower) {
		return true
	}
	if strings.Contains(strconv.FormatFloat(order.TotalAmount, 'f', -1, 64), query) {
		return true
	}
	for _, item := range order.Items {
		if strings.Contains(strings.ToLower(item.Category), lower) {
			return true
		}
	}
	return false
}
