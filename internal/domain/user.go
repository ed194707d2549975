package domain

import "time"

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserSummary is a user together with the number of orders it owns.
type UserSummary struct {
	User
	OrderCount int `json:"orderCount"`
}

// UnknownUserLabel is shown for orders whose user no longer exists.
func UnknownUserLabel(userID int64) string {
	return "Unknown User (ID: " + formatID(userID) + ")"
}
