package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/application/dto"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/application/resolution"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain"
)

// ResolutionHandler maneja las peticiones HTTP del pipeline de resolución de líneas.
type ResolutionHandler struct {
	resolveUC *resolution.ResolveLineUseCase
	confirmUC *resolution.ConfirmMatchUseCase
}

// NewResolutionHandler construye el handler.
func NewResolutionHandler(resolveUC *resolution.ResolveLineUseCase, confirmUC *resolution.ConfirmMatchUseCase) *ResolutionHandler {
	return &ResolutionHandler{resolveUC: resolveUC, confirmUC: confirmUC}
}

// Resolve godoc
// @Summary      Resolver una línea cruda de pedido
// @Description  Parsea la línea, genera candidatos, los puntúa y asigna el tier de decisión. No muta stock ni precios.
// @Tags         lines
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResolveLineRequest  true  "Línea cruda"
// @Success      200   {object}  dto.ResolutionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/lines/resolve [post]
func (h *ResolutionHandler) Resolve(c *fiber.Ctx) error {
	var in dto.ResolveLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.resolveUC.ResolveLine(c.UserContext(), in.RawText)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "raw_text es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.NewResolutionResponse(result))
}

// GetResolution godoc
// @Summary      Obtener una resolución auditada
// @Tags         lines
// @Produce      json
// @Param        id   path  string  true  "ID de la resolución"
// @Success      200  {object}  dto.ResolutionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lines/resolutions/{id} [get]
func (h *ResolutionHandler) GetResolution(c *fiber.Ctx) error {
	id := c.Params("id")
	result, err := h.resolveUC.GetResolution(c.UserContext(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "resolución no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.NewResolutionResponse(result))
}

// Confirm godoc
// @Summary      Confirmar la coincidencia elegida
// @Description  Reserva stock en dos fases, calcula el precio del segmento y crea la línea resuelta.
// @Tags         lines
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConfirmMatchRequest  true  "Coincidencia elegida"
// @Success      201   {object}  dto.OrderLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/lines/confirm [post]
func (h *ResolutionHandler) Confirm(c *fiber.Ctx) error {
	var in dto.ConfirmMatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	line, err := h.confirmUC.ConfirmMatch(c.UserContext(), resolution.ConfirmInput{
		ResolutionID:    in.ResolutionID,
		ProductID:       in.ProductID,
		Quantity:        in.Quantity,
		Unit:            in.Unit,
		CustomerSegment: in.CustomerSegment,
		Confidence:      in.Confidence,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id, quantity y customer_segment son requeridos"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado o inactivo"})
		case errors.Is(err, domain.ErrPricingRuleNotFound):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "PRICING_RULE_NOT_FOUND", Message: "el segmento no tiene regla de precios"})
		case errors.Is(err, domain.ErrInvalidPricingContext):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_PRICING_CONTEXT", Message: "regla de precios inválida"})
		case errors.Is(err, domain.ErrReservationConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "RESERVATION_CONFLICT", Message: "el stock cambió durante la reserva, reintente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewOrderLineResponse(line))
}

// Void godoc
// @Summary      Anular una línea confirmada
// @Description  Libera la reserva de la línea y la marca anulada.
// @Tags         lines
// @Produce      json
// @Param        id   path  string  true  "ID de la línea"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orderlines/{id}/void [post]
func (h *ResolutionHandler) Void(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.confirmUC.Void(c.UserContext(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "línea no encontrada"})
		case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrReservationNotActive):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la línea no está en estado confirmado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
