package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DistributeRequest body para POST /api/inventory/distributions.
// El artículo se resuelve por nombre (comparación case-insensitive exacta).
type DistributeRequest struct {
	ItemName   string `json:"item_name" validate:"required"`
	Quantity   int64  `json:"quantity" validate:"required,gt=0"`
	Department string `json:"department" validate:"required"`
	Notes      string `json:"notes"`
}

// DamageRequest body para POST /api/inventory/damages.
type DamageRequest struct {
	ItemName string `json:"item_name" validate:"required"`
	Quantity int64  `json:"quantity" validate:"required,gt=0"`
	Notes    string `json:"notes"`
}

// AdjustRequest body para POST /api/inventory/adjustments.
// Quantity es el delta con signo (positivo suma, negativo resta).
type AdjustRequest struct {
	ItemName string `json:"item_name" validate:"required"`
	Quantity int64  `json:"quantity" validate:"required"`
	Notes    string `json:"notes"`
}

// ItemResponse artículo de inventario.
type ItemResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Unit      string          `json:"unit"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	StockQty  int64           `json:"stock_qty"`
	MinStock  int64           `json:"min_stock"`
	LowStock  bool            `json:"low_stock"`
	Active    bool            `json:"active"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// MovementResponse entrada del libro de movimientos.
type MovementResponse struct {
	ID         string    `json:"id"`
	ItemID     string    `json:"item_id"`
	ItemName   string    `json:"item_name"`
	Type       string    `json:"type"`
	Quantity   int64     `json:"quantity"`
	UserName   string    `json:"user_name"`
	Notes      string    `json:"notes,omitempty"`
	Department string    `json:"department,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// FulfillmentResponse resultado de un despacho/daño/ajuste: artículo resultante
// y la entrada del libro que lo registró.
type FulfillmentResponse struct {
	Item     ItemResponse     `json:"item"`
	Movement MovementResponse `json:"movement"`
}

// LowStockSuggestionDTO artículo bajo punto de reorden con cantidad sugerida de pedido.
type LowStockSuggestionDTO struct {
	ItemID            string          `json:"item_id"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	CurrentStock      int64           `json:"current_stock"`
	MinStock          int64           `json:"min_stock"`
	SuggestedOrderQty int64           `json:"suggested_order_qty"` // MinStock*2 - CurrentStock
	EstimatedCost     decimal.Decimal `json:"estimated_cost"`
	Priority          int             `json:"priority"` // 1 = más urgente
}

// ReconciliationRowDTO discrepancia libro vs inventario de un artículo.
type ReconciliationRowDTO struct {
	ItemID     string `json:"item_id"`
	Name       string `json:"name"`
	StockQty   int64  `json:"stock_qty"`
	LedgerSum  int64  `json:"ledger_sum"`
	Difference int64  `json:"difference"` // StockQty - LedgerSum; 0 = consistente
}
