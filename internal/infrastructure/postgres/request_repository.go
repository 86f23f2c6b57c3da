package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/hotel-stock-api/internal/domain"
	"github.com/jhoicas/hotel-stock-api/internal/domain/entity"
	"github.com/jhoicas/hotel-stock-api/internal/domain/repository"
)

var _ repository.RequestRepository = (*RequestRepo)(nil)

const requestColumns = "id, department, requested_by, item_name, item_id, quantity, unit, reason, status, archived, notes, created_at, updated_at"

// RequestRepo implementación de RequestRepository sobre PostgreSQL (usable con pool o tx).
type RequestRepo struct {
	q Querier
}

// NewRequestRepository construye el adaptador de solicitudes. Pasar pool o tx (Querier).
func NewRequestRepository(q Querier) *RequestRepo {
	return &RequestRepo{q: q}
}

// Create persiste una solicitud nueva.
func (r *RequestRepo) Create(ctx context.Context, req *entity.StockRequest) error {
	query := `
		INSERT INTO requests (id, department, requested_by, item_name, item_id, quantity, unit, reason, status, archived, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	itemID := (*string)(nil)
	if req.ItemID != "" {
		itemID = &req.ItemID
	}
	_, err := r.q.Exec(ctx, query,
		req.ID, req.Department, req.RequestedBy, req.ItemName, itemID,
		req.Quantity, req.Unit, req.Reason, req.Status, req.Archived, req.Notes,
		req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID. Devuelve nil si no existe.
func (r *RequestRepo) GetByID(ctx context.Context, id string) (*entity.StockRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`
	var s entity.StockRequest
	var itemID *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Department, &s.RequestedBy, &s.ItemName, &itemID, &s.Quantity,
		&s.Unit, &s.Reason, &s.Status, &s.Archived, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get request: %w", err)
	}
	if itemID != nil {
		s.ItemID = *itemID
	}
	return &s, nil
}

// List devuelve solicitudes, las más recientes primero.
func (r *RequestRepo) List(ctx context.Context, department string, includeArchived bool, limit, offset int) ([]*entity.StockRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE 1=1`
	args := []any{}
	pos := 1
	if department != "" {
		query += fmt.Sprintf(" AND department = $%d", pos)
		args = append(args, department)
		pos++
	}
	if !includeArchived {
		query += " AND NOT archived"
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockRequest
	for rows.Next() {
		var s entity.StockRequest
		var itemID *string
		if err := rows.Scan(&s.ID, &s.Department, &s.RequestedBy, &s.ItemName, &itemID,
			&s.Quantity, &s.Unit, &s.Reason, &s.Status, &s.Archived, &s.Notes,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		if itemID != nil {
			s.ItemID = *itemID
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Resolve marca la solicitud como approved/rejected solo si sigue pending
// (update condicional). Cero filas afectadas con la solicitud existente
// significa que otra sesión la resolvió primero: ErrAlreadyResolved.
func (r *RequestRepo) Resolve(ctx context.Context, id, status, notes string) error {
	query := `
		UPDATE requests SET status = $2, notes = $3, updated_at = now()
		WHERE id = $1 AND status = 'pending'`
	tag, err := r.q.Exec(ctx, query, id, status, notes)
	if err != nil {
		return fmt.Errorf("resolve request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		existing, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		return domain.ErrAlreadyResolved
	}
	return nil
}

// SetArchived marca/desmarca el archivado (solo visualización, no toca la resolución).
func (r *RequestRepo) SetArchived(ctx context.Context, id string, archived bool) error {
	query := `UPDATE requests SET archived = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, archived)
	if err != nil {
		return fmt.Errorf("archive request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la solicitud definitivamente.
func (r *RequestRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
