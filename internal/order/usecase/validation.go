package usecase

import (
	"fmt"
	"strings"

	"github.com/KareemMohsenAli/kitchenProducts/internal/domain"
	"github.com/KareemMohsenAli/kitchenProducts/internal/dto"
	apperrors "github.com/KareemMohsenAli/kitchenProducts/internal/errors"
)

// validateOrderRequest rejects a request before any store call is made. The
// numeric fields of an item only have to be present; their values go
// through the ledger's parse-or-zero policy.
func validateOrderRequest(req dto.OrderRequest) error {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(req.CustomerName) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customerName",
			Message: "customerName must not be empty",
		})
	}

	if len(req.Items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	for idx, item := range req.Items {
		required := []struct {
			name  string
			value domain.NumberInput
		}{
			{"width", item.Width},
			{"length", item.Length},
			{"quantity", item.Quantity},
			{"pricePerMeter", item.PricePerMeter},
		}
		for _, f := range required {
			if strings.TrimSpace(string(f.value)) == "" {
				details = append(details, apperrors.ValidationDetail{
					Field:   fmt.Sprintf("items[%d].%s", idx, f.name),
					Message: f.name + " is required",
				})
			}
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}
