package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeStockIn     = "stock_in"    // entrada por recepción de compra
	MovementTypeDistributed = "distributed" // salida por despacho a departamento
	MovementTypeAdjustment  = "adjustment"  // ajuste manual (signo libre)
	MovementTypeDamage      = "damage"      // baja por daño/rotura
)

// ValidMovementType verifica que el tipo sea uno de los conocidos.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeStockIn, MovementTypeDistributed, MovementTypeAdjustment, MovementTypeDamage:
		return true
	}
	return false
}

// Movement es una entrada del libro de movimientos (append-only, nunca se
// actualiza ni borra: es el rastro de auditoría de cada cambio de stock).
// Quantity es el delta con signo: positivo en entradas, negativo en salidas.
type Movement struct {
	ID         string
	ItemID     string
	ItemName   string
	Type       string
	Quantity   int64
	UserName   string // actor que ejecutó el movimiento
	Notes      string
	Department string // departamento destino (vacío en entradas/ajustes)
	CreatedAt  time.Time
}
