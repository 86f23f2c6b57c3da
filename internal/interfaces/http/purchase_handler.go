package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/hotel-stock-api/internal/application/dto"
	"github.com/jhoicas/hotel-stock-api/internal/application/fulfillment"
	"github.com/jhoicas/hotel-stock-api/internal/domain/entity"
	"github.com/jhoicas/hotel-stock-api/internal/domain/repository"
)

// PurchaseHandler maneja líneas de compra y su recepción a inventario (protegido).
type PurchaseHandler struct {
	engine   *fulfillment.Engine
	lineRepo repository.PurchaseLineRepository
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(engine *fulfillment.Engine, lineRepo repository.PurchaseLineRepository) *PurchaseHandler {
	return &PurchaseHandler{engine: engine, lineRepo: lineRepo}
}

// CreateLine registra una línea de compra entregada, pendiente de ingresar.
func (h *PurchaseHandler) CreateLine(c *fiber.Ctx) error {
	var in dto.CreatePurchaseLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validationError(c, in); err != nil {
		return err
	}
	now := time.Now()
	line := &entity.PurchaseLine{
		ID:         uuid.New().String(),
		OrderRef:   in.OrderRef,
		ItemName:   in.ItemName,
		Category:   in.Category,
		Unit:       in.Unit,
		UnitCost:   in.UnitCost,
		OrderedQty: in.OrderedQty,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := h.lineRepo.Create(c.Context(), line); err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPurchaseLineResponse(line))
}

// ListLines devuelve líneas de compra, opcionalmente por referencia de orden.
func (h *PurchaseHandler) ListLines(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	lines, err := h.lineRepo.List(c.Context(), c.Query("order_ref"), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	resp := make([]dto.PurchaseLineResponse, 0, len(lines))
	for _, line := range lines {
		resp = append(resp, toPurchaseLineResponse(line))
	}
	return c.JSON(fiber.Map{"total": len(resp), "lines": resp})
}

// PostDelivery acredita a inventario una entrega (cantidad parcial o todo lo pendiente).
func (h *PurchaseHandler) PostDelivery(c *fiber.Ctx) error {
	var in dto.PostDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validationError(c, in); err != nil {
		return err
	}
	res, err := h.engine.PostDelivery(c.Context(), fulfillment.PostDeliveryInput{
		LineID:   c.Params("id"),
		Quantity: in.Quantity,
		Actor:    GetActor(c),
		Notes:    in.Notes,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"item":     toItemResponse(res.Item),
		"movement": toMovementResponse(res.Movement),
		"line":     toPurchaseLineResponse(res.Line),
	})
}
