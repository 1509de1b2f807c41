package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// --- JWT & Auth ---

type JwtClaims struct {
	UserID  string `json:"userId"`
	Role    string `json:"role"`
	GroupID string `json:"groupId"`
	jwt.RegisteredClaims
}

// --- Core Models ---

// Company is one tenant company inside a group. External revenue records are
// keyed by the company's synced sale-product identifiers, not by the company
// row itself.
type Company struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ItemKind distinguishes the two families of trackable inventory items.
type ItemKind string

const (
	ItemRawMaterial ItemKind = "raw_material"
	ItemResale      ItemKind = "resale"
)

// ProductLink ties a trackable item to one synced sale product. For raw
// materials QuantityPerUnit is how much of the material one sold unit
// consumes; resale links are 1:1.
type ProductLink struct {
	SaleProductID   string  `json:"sale_product_id"`
	QuantityPerUnit float64 `json:"quantity_per_unit"`
}

// TrackableItem is an inventory item whose consumption can be projected: a
// raw material or a resale product, with its links to synced sale products.
type TrackableItem struct {
	ID         string        `json:"id"`
	GroupID    string        `json:"group_id"`
	Name       string        `json:"name"`
	Unit       string        `json:"unit"`
	Kind       ItemKind      `json:"kind"`
	LossFactor float64       `json:"loss_factor"` // percentage, raw materials only
	Links      []ProductLink `json:"links"`
}

// HistoryRow is one raw revenue/consumption record from the synced history.
type HistoryRow struct {
	Date     time.Time `json:"date"`
	Amount   float64   `json:"amount"`
	EntityID string    `json:"entity_id"`
}

// StockRow is one physical stock record linked to a trackable item.
type StockRow struct {
	Quantity         float64 `json:"quantity"`
	MinQuantity      float64 `json:"min_quantity"`
	ConversionFactor float64 `json:"conversion_factor"`
	PurchaseUnit     string  `json:"purchase_unit"`
}
