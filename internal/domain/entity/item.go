package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo del inventario del hotel.
// StockQty nunca es negativo; el motor de despacho valida antes de confirmar.
// Category es el departamento dueño/consumidor (lencería, cocina, mantenimiento...).
type Item struct {
	ID        string
	Name      string
	Category  string
	Unit      string          // unidad de medida: pieza, kg, litro...
	UnitCost  decimal.Decimal // costo unitario de la última compra
	StockQty  int64
	MinStock  int64 // punto de reorden: en o por debajo se marca stock bajo
	Active    bool  // baja lógica; nunca se elimina físicamente con historial
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LowStock indica si el artículo está en o por debajo del punto de reorden.
func (i *Item) LowStock() bool {
	return i.StockQty <= i.MinStock
}
