package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/reports"
	"github.com/jhoicas/Compras-api/internal/application/request"
)

// RequestHandler maneja el ciclo de vida de las solicitudes de compra.
type RequestHandler struct {
	uc    *request.UseCase
	sheet *reports.SheetUseCase
}

// NewRequestHandler construye el handler de solicitudes.
func NewRequestHandler(uc *request.UseCase, sheet *reports.SheetUseCase) *RequestHandler {
	return &RequestHandler{uc: uc, sheet: sheet}
}

// Create godoc
// @Summary      Crear solicitud de compra (Draft)
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRequestRequest  true  "title, description, items"
// @Success      201   {object}  dto.RequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/requests [post]
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar solicitudes
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado (DRAFT, SUBMITTED, ...)"
// @Param        limit   query  int     false  "Máximo de resultados (default 50)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.RequestListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/requests [get]
func (h *RequestHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("status"), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener solicitud con sus líneas
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.RequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requests/{id} [get]
func (h *RequestHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar solicitud (solo Draft; reemplaza todas las líneas)
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la solicitud"
// @Param        body  body  dto.UpdateRequestRequest true  "title, description, items"
// @Success      200   {object}  dto.RequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id} [put]
func (h *RequestHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar una línea a la solicitud
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID de la solicitud"
// @Param        body  body  dto.RequestItemInput  true  "product_id, warehouse_id, quantity, unit_price opcional"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/items [post]
func (h *RequestHandler) AddItem(c *fiber.Ctx) error {
	var in dto.RequestItemInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddItem(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// History godoc
// @Summary      Historial de transiciones de la solicitud
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {array}   dto.RequestHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/history [get]
func (h *RequestHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar la hoja de pedido en PDF
// @Tags         requests
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/pdf [get]
func (h *RequestHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.sheet.DownloadRequestPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// Submit godoc
// @Summary      Enviar solicitud a revisión (Draft → Submitted)
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true   "ID de la solicitud"
// @Param        body  body  dto.TransitionRequest  false  "comment opcional"
// @Success      200   {object}  dto.RequestResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/submit [post]
func (h *RequestHandler) Submit(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Submit)
}

// Approve godoc
// @Summary      Aprobar solicitud (Submitted → Approved)
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true   "ID de la solicitud"
// @Param        body  body  dto.TransitionRequest  false  "comment opcional"
// @Success      200   {object}  dto.RequestResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/approve [post]
func (h *RequestHandler) Approve(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Approve)
}

// MarkItemsReceived godoc
// @Summary      Marcar ítems recibidos (Approved → ItemsReceived; PENDING → INCOME)
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true   "ID de la solicitud"
// @Param        body  body  dto.TransitionRequest  false  "comment opcional"
// @Success      200   {object}  dto.RequestResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/receive [post]
func (h *RequestHandler) MarkItemsReceived(c *fiber.Ctx) error {
	return h.transition(c, h.uc.MarkItemsReceived)
}

// MarkItemsInstalled godoc
// @Summary      Marcar ítems instalados (ItemsReceived → ItemsInstalled)
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true   "ID de la solicitud"
// @Param        body  body  dto.TransitionRequest  false  "comment opcional"
// @Success      200   {object}  dto.RequestResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/install [post]
func (h *RequestHandler) MarkItemsInstalled(c *fiber.Ctx) error {
	return h.transition(c, h.uc.MarkItemsInstalled)
}

// Complete godoc
// @Summary      Completar solicitud (ItemsInstalled → Completed)
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true   "ID de la solicitud"
// @Param        body  body  dto.TransitionRequest  false  "comment opcional"
// @Success      200   {object}  dto.RequestResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/complete [post]
func (h *RequestHandler) Complete(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Complete)
}

// Cancel godoc
// @Summary      Cancelar solicitud (cualquier estado no terminal)
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true   "ID de la solicitud"
// @Param        body  body  dto.TransitionRequest  false  "comment opcional"
// @Success      200   {object}  dto.RequestResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/cancel [post]
func (h *RequestHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Cancel)
}

// Reject godoc
// @Summary      Rechazar solicitud (Submitted → Rejected)
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true   "ID de la solicitud"
// @Param        body  body  dto.TransitionRequest  false  "comment opcional"
// @Success      200   {object}  dto.RequestResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/reject [post]
func (h *RequestHandler) Reject(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Reject)
}

// transition parsea el comment opcional y delega en la acción del caso de uso.
func (h *RequestHandler) transition(
	c *fiber.Ctx,
	action func(ctx context.Context, requestID, actorID, comment string) (*dto.RequestResponse, error),
) error {
	var in dto.TransitionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := action(c.Context(), c.Params("id"), GetUserID(c), in.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
