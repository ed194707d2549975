package domain

import "encoding/json"

type ItemStatus string

const (
	ItemStatusWorking ItemStatus = "working"
	ItemStatusDone    ItemStatus = "done"
)

type OrderItem struct {
	Width         float64    `json:"width"`
	Length        float64    `json:"length"`
	Area          float64    `json:"area"`
	Quantity      float64    `json:"quantity"`
	Category      string     `json:"category"`
	PricePerMeter float64    `json:"pricePerMeter"`
	Total         float64    `json:"total"`
	Description   string     `json:"description"`
	Status        ItemStatus `json:"status"`
}

// UnmarshalJSON accepts records written before items carried a status or a
// description: a missing status loads as working and the old notes field is
// read into Description.
func (i *OrderItem) UnmarshalJSON(data []byte) error {
	type itemAlias OrderItem
	var raw struct {
		itemAlias
		Notes *string `json:"notes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*i = OrderItem(raw.itemAlias)
	if i.Description == "" && raw.Notes != nil {
		i.Description = *raw.Notes
	}
	if i.Status == "" {
		i.Status = ItemStatusWorking
	}
	return nil
}
