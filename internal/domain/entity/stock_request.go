package entity

import "time"

// Estados de una solicitud de stock.
// pending es el único estado no terminal; approved y rejected son terminales.
// El archivado es una dimensión aparte, solo de visualización: no reabre la solicitud.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// StockRequest es una solicitud de stock de un departamento.
// ItemID se resuelve al crear si el nombre coincide con inventario; puede quedar
// vacío para solicitudes de artículos aún no ingresados (se resuelve por nombre
// al aprobar).
type StockRequest struct {
	ID          string
	Department  string
	RequestedBy string
	ItemName    string
	ItemID      string // opcional: referencia resuelta al artículo
	Quantity    int64
	Unit        string
	Reason      string
	Status      string
	Archived    bool
	Notes       string // notas de resolución (aprobación o rechazo)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Pending indica si la solicitud sigue sin resolver.
func (r *StockRequest) Pending() bool {
	return r.Status == RequestStatusPending
}
