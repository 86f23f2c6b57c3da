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

var _ repository.PurchaseLineRepository = (*PurchaseLineRepo)(nil)

const lineColumns = "id, order_ref, item_name, category, unit, unit_cost, ordered_qty, posted_qty, created_at, updated_at"

// PurchaseLineRepo implementación de PurchaseLineRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseLineRepo struct {
	q Querier
}

// NewPurchaseLineRepository construye el adaptador de líneas de compra. Pasar pool o tx (Querier).
func NewPurchaseLineRepository(q Querier) *PurchaseLineRepo {
	return &PurchaseLineRepo{q: q}
}

// Create persiste una línea de compra entregada.
func (r *PurchaseLineRepo) Create(ctx context.Context, line *entity.PurchaseLine) error {
	query := `
		INSERT INTO purchase_lines (id, order_ref, item_name, category, unit, unit_cost, ordered_qty, posted_qty, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		line.ID, line.OrderRef, line.ItemName, line.Category, line.Unit,
		line.UnitCost, line.OrderedQty, line.PostedQty, line.CreatedAt, line.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase line: %w", err)
	}
	return nil
}

// GetByID obtiene una línea por ID. Devuelve nil si no existe.
func (r *PurchaseLineRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseLine, error) {
	query := `SELECT ` + lineColumns + ` FROM purchase_lines WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get purchase line")
}

// GetForUpdate como GetByID pero bloquea la fila (SELECT FOR UPDATE) para
// serializar el control de sobre-recepción.
func (r *PurchaseLineRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseLine, error) {
	query := `SELECT ` + lineColumns + ` FROM purchase_lines WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get purchase line for update")
}

// AddPostedQty acumula lo ya ingresado. La guarda posted_qty + qty <= ordered_qty
// en el WHERE (y el CHECK de la tabla) rechaza el doble abono.
func (r *PurchaseLineRepo) AddPostedQty(ctx context.Context, id string, qty int64) error {
	query := `
		UPDATE purchase_lines SET posted_qty = posted_qty + $2, updated_at = now()
		WHERE id = $1 AND posted_qty + $2 <= ordered_qty`
	tag, err := r.q.Exec(ctx, query, id, qty)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrOverPosting
		}
		return fmt.Errorf("add posted qty: %w", err)
	}
	if tag.RowsAffected() == 0 {
		existing, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		return &domain.OverPostingError{
			Ordered:   existing.OrderedQty,
			Posted:    existing.PostedQty,
			Attempted: qty,
		}
	}
	return nil
}

// List devuelve líneas de compra, las más recientes primero, opcionalmente por orden.
func (r *PurchaseLineRepo) List(ctx context.Context, orderRef string, limit, offset int) ([]*entity.PurchaseLine, error) {
	query := `SELECT ` + lineColumns + ` FROM purchase_lines WHERE 1=1`
	args := []any{}
	pos := 1
	if orderRef != "" {
		query += fmt.Sprintf(" AND order_ref = $%d", pos)
		args = append(args, orderRef)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseLine
	for rows.Next() {
		var l entity.PurchaseLine
		if err := rows.Scan(&l.ID, &l.OrderRef, &l.ItemName, &l.Category, &l.Unit,
			&l.UnitCost, &l.OrderedQty, &l.PostedQty, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func (r *PurchaseLineRepo) scanOne(row pgx.Row, op string) (*entity.PurchaseLine, error) {
	var l entity.PurchaseLine
	err := row.Scan(&l.ID, &l.OrderRef, &l.ItemName, &l.Category, &l.Unit,
		&l.UnitCost, &l.OrderedQty, &l.PostedQty, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &l, nil
}
