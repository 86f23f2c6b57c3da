package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-stock-api/internal/application/dto"
	"github.com/jhoicas/hotel-stock-api/internal/application/requests"
	"github.com/jhoicas/hotel-stock-api/internal/domain/entity"
)

// RequestHandler maneja las solicitudes de stock de los departamentos (protegido).
type RequestHandler struct {
	uc *requests.UseCase
}

// NewRequestHandler construye el handler.
func NewRequestHandler(uc *requests.UseCase) *RequestHandler {
	return &RequestHandler{uc: uc}
}

// Create registra una solicitud pendiente del departamento del actor.
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validationError(c, in); err != nil {
		return err
	}
	department := GetDepartment(c)
	if department == "" {
		// Un admin puede solicitar a nombre de cualquier departamento
		department = c.Query("department")
	}
	if department == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "departamento requerido"})
	}
	req, err := h.uc.Create(c.Context(), requests.CreateInput{
		Department:  department,
		RequestedBy: GetActor(c),
		ItemName:    in.ItemName,
		Quantity:    in.Quantity,
		Unit:        in.Unit,
		Reason:      in.Reason,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRequestResponse(req))
}

// List devuelve solicitudes, las más recientes primero. Un usuario de
// departamento solo ve las suyas; admin/almacén ven todas.
func (h *RequestHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	department := c.Query("department")
	if GetRole(c) == entity.RoleDepartamento {
		department = GetDepartment(c)
	}
	includeArchived := c.QueryBool("include_archived", false)
	list, err := h.uc.List(c.Context(), department, includeArchived, page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	resp := make([]dto.StockRequestResponse, 0, len(list))
	for _, req := range list {
		resp = append(resp, toRequestResponse(req))
	}
	return c.JSON(fiber.Map{"total": len(resp), "requests": resp})
}

// GetByID devuelve una solicitud.
func (h *RequestHandler) GetByID(c *fiber.Ctx) error {
	req, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toRequestResponse(req))
}

// Approve aprueba y despacha en una sola transacción. Si el despacho falla la
// solicitud sigue pendiente y el caller recibe el motivo.
func (h *RequestHandler) Approve(c *fiber.Ctx) error {
	var in dto.ApproveRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validationError(c, in); err != nil {
		return err
	}
	res, err := h.uc.Approve(c.Context(), c.Params("id"), in.FulfilledQty, in.Notes, GetActor(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toFulfillmentResponse(res))
}

// Reject rechaza una solicitud pendiente (sin efecto en inventario).
func (h *RequestHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Reject(c.Context(), c.Params("id"), in.Reason); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "solicitud rechazada"})
}

// Archive marca/desmarca el archivado (solo visualización).
func (h *RequestHandler) Archive(c *fiber.Ctx) error {
	var in dto.ArchiveRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.ToggleArchive(c.Context(), c.Params("id"), in.Archived); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "solicitud actualizada"})
}

// Delete elimina la solicitud definitivamente (limpieza, solo admin).
func (h *RequestHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "solicitud eliminada"})
}
