package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseLine es una línea de orden de compra entregada, origen de las
// entradas de inventario. PostedQty acumula lo ya ingresado: no puede superar
// OrderedQty (evita doble abono de la misma entrega).
type PurchaseLine struct {
	ID         string
	OrderRef   string // referencia de la orden de compra
	ItemName   string
	Category   string
	Unit       string
	UnitCost   decimal.Decimal
	OrderedQty int64
	PostedQty  int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Remaining devuelve la cantidad pendiente de ingresar a inventario.
func (l *PurchaseLine) Remaining() int64 {
	return l.OrderedQty - l.PostedQty
}
