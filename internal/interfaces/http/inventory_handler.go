package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-stock-api/internal/application/dto"
	"github.com/jhoicas/hotel-stock-api/internal/application/fulfillment"
	"github.com/jhoicas/hotel-stock-api/internal/application/inventory"
	"github.com/jhoicas/hotel-stock-api/internal/domain/repository"
)

// InventoryHandler maneja despachos, daños, ajustes y el libro de movimientos (protegido).
type InventoryHandler struct {
	engine *fulfillment.Engine
	uc     *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(engine *fulfillment.Engine, uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{engine: engine, uc: uc}
}

// Distribute despacha stock a un departamento (acción push del administrador).
func (h *InventoryHandler) Distribute(c *fiber.Ctx) error {
	var in dto.DistributeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validationError(c, in); err != nil {
		return err
	}
	res, err := h.engine.Distribute(c.Context(), fulfillment.Input{
		ItemName:   in.ItemName,
		Quantity:   in.Quantity,
		Actor:      GetActor(c),
		Department: in.Department,
		Notes:      in.Notes,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toFulfillmentResponse(res))
}

// RegisterDamage da de baja stock dañado.
func (h *InventoryHandler) RegisterDamage(c *fiber.Ctx) error {
	var in dto.DamageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validationError(c, in); err != nil {
		return err
	}
	res, err := h.engine.RegisterDamage(c.Context(), fulfillment.Input{
		ItemName:   in.ItemName,
		Quantity:   in.Quantity,
		Actor:      GetActor(c),
		Department: GetDepartment(c),
		Notes:      in.Notes,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toFulfillmentResponse(res))
}

// Adjust aplica un ajuste manual con signo (solo admin).
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validationError(c, in); err != nil {
		return err
	}
	res, err := h.engine.Adjust(c.Context(), fulfillment.Input{
		ItemName: in.ItemName,
		Quantity: in.Quantity,
		Actor:    GetActor(c),
		Notes:    in.Notes,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toFulfillmentResponse(res))
}

// ListMovements devuelve el historial del libro, el más reciente primero.
// Filtros: type, item_id, from, to (RFC 3339), limit, offset.
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	filter := repository.MovementFilter{
		Type:   c.Query("type"),
		ItemID: c.Query("item_id"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC 3339)"})
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC 3339)"})
		}
		filter.To = &t
	}
	movements, err := h.uc.ListMovements(c.Context(), filter)
	if err != nil {
		return domainError(c, err)
	}
	resp := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		resp = append(resp, toMovementResponse(m))
	}
	return c.JSON(fiber.Map{"total": len(resp), "movements": resp})
}

// Reconciliation devuelve las discrepancias libro vs inventario (vacío = consistente).
func (h *InventoryHandler) Reconciliation(c *fiber.Ctx) error {
	rows, err := h.uc.Reconcile(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"consistent": len(rows) == 0, "discrepancies": rows})
}
