package shopping

import "github.com/opst/mealplanner/pkg/utils/rfctime"

// Purchasable is an item or an ingredient.
//
// Type is "item" or "ingredient".
type Purchasable struct {
	Type string `json:"type"`
	Id   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

type Detail struct {
	Id          int64           `json:"id"`
	UserId      int64           `json:"userId"`
	Purchasable Purchasable     `json:"purchasable"`
	Quantity    float64         `json:"quantity"`
	Unit        string          `json:"unit,omitempty"`
	Purchased   bool            `json:"purchased"`
	CreatedAt   rfctime.RFC3339 `json:"createdAt"`
	UpdatedAt   rfctime.RFC3339 `json:"updatedAt"`
}

// PurchasableRef refers a purchasable with type and id, or with name.
//
// A name is resolved to an item, creating it if needed.
type PurchasableRef struct {
	Type string `json:"type,omitempty"`
	Id   int64  `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type AddParam struct {
	Purchasable PurchasableRef `json:"purchasable"`

	// amount, like "2", "1/2" or "1 1/2 cup". Empty means 1.
	Quantity string `json:"quantity,omitempty"`
	Unit     string `json:"unit,omitempty"`
}

// UpdateParam changes an entry. Omitted fields are left as they are.
type UpdateParam struct {
	Quantity  *float64 `json:"quantity,omitempty"`
	Unit      *string  `json:"unit,omitempty"`
	Purchased *bool    `json:"purchased,omitempty"`
}
