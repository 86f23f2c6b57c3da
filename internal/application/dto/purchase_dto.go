package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseLineRequest body para POST /api/purchases/lines.
type CreatePurchaseLineRequest struct {
	OrderRef   string          `json:"order_ref" validate:"required"`
	ItemName   string          `json:"item_name" validate:"required"`
	Category   string          `json:"category"`
	Unit       string          `json:"unit"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	OrderedQty int64           `json:"ordered_qty" validate:"required,gt=0"`
}

// PostDeliveryRequest body para POST /api/purchases/lines/:id/post.
// Quantity en cero ingresa todo lo pendiente de la línea.
type PostDeliveryRequest struct {
	Quantity int64  `json:"quantity" validate:"omitempty,gt=0"`
	Notes    string `json:"notes"`
}

// PurchaseLineResponse línea de compra con avance de recepción.
type PurchaseLineResponse struct {
	ID         string          `json:"id"`
	OrderRef   string          `json:"order_ref"`
	ItemName   string          `json:"item_name"`
	Category   string          `json:"category,omitempty"`
	Unit       string          `json:"unit,omitempty"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	OrderedQty int64           `json:"ordered_qty"`
	PostedQty  int64           `json:"posted_qty"`
	Remaining  int64           `json:"remaining"`
	CreatedAt  time.Time       `json:"created_at"`
}
