package dto

import "time"

// CreateRequestRequest body para POST /api/requests.
type CreateRequestRequest struct {
	ItemName string `json:"item_name" validate:"required"`
	Quantity int64  `json:"quantity" validate:"required,gt=0"`
	Unit     string `json:"unit"`
	Reason   string `json:"reason"`
}

// ApproveRequestRequest body para POST /api/requests/:id/approve.
// FulfilledQty en cero despacha la cantidad solicitada original.
type ApproveRequestRequest struct {
	FulfilledQty int64  `json:"fulfilled_qty" validate:"omitempty,gt=0"`
	Notes        string `json:"notes"`
}

// RejectRequestRequest body para POST /api/requests/:id/reject.
type RejectRequestRequest struct {
	Reason string `json:"reason"`
}

// ArchiveRequestRequest body para POST /api/requests/:id/archive.
type ArchiveRequestRequest struct {
	Archived bool `json:"archived"`
}

// StockRequestResponse solicitud de stock.
type StockRequestResponse struct {
	ID          string    `json:"id"`
	Department  string    `json:"department"`
	RequestedBy string    `json:"requested_by"`
	ItemName    string    `json:"item_name"`
	ItemID      string    `json:"item_id,omitempty"`
	Quantity    int64     `json:"quantity"`
	Unit        string    `json:"unit,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	Status      string    `json:"status"`
	Archived    bool      `json:"archived"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
