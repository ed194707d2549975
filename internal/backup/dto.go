package backup

import (
	"time"

	"github.com/KareemMohsenAli/kitchenProducts/internal/domain"
)

// Snapshot is the backup file format.
type Snapshot struct {
	Users      []domain.User  `json:"users"`
	Orders     []domain.Order `json:"orders"`
	ExportDate time.Time      `json:"exportDate"`
}

type ImportResult struct {
	Users  int `json:"users"`
	Orders int `json:"orders"`
	// LegacyOrders counts orders read from the single-payment shape whose
	// payment totals were recomputed.
	LegacyOrders int `json:"legacyOrders"`
}
