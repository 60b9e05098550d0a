package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/application/dto"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/application/stock"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain"
)

// StockHandler maneja las consultas de stock y el ciclo de vida de reservas.
type StockHandler struct {
	availability *stock.AvailabilityUseCase
	reservations *stock.ReservationUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(availability *stock.AvailabilityUseCase, reservations *stock.ReservationUseCase) *StockHandler {
	return &StockHandler{availability: availability, reservations: reservations}
}

// Position godoc
// @Summary      Posición de stock de un producto
// @Description  Lotes y totales; con qty se agrega la vista previa del plan de cumplimiento.
// @Tags         stock
// @Produce      json
// @Param        productID  path   string  true   "ID del producto"
// @Param        qty        query  string  false  "Cantidad a consultar"
// @Param        unit       query  string  false  "Unidad de la cantidad"
// @Success      200  {object}  dto.StockPositionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/{productID} [get]
func (h *StockHandler) Position(c *fiber.Ctx) error {
	productID := c.Params("productID")
	qty := decimal.Zero
	if raw := c.Query("qty"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil || parsed.LessThan(decimal.Zero) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "qty inválida"})
		}
		qty = parsed
	}
	pos, err := h.availability.Check(c.UserContext(), productID, qty, c.Query("unit"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "productID es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.NewStockPositionResponse(pos))
}

// ConfirmReservation godoc
// @Summary      Confirmar una reserva activa (fase 2: venta)
// @Tags         reservations
// @Produce      json
// @Param        id   path  string  true  "ID de la reserva"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/reservations/{id}/confirm [post]
func (h *StockHandler) ConfirmReservation(c *fiber.Ctx) error {
	return h.transition(c, h.reservations.Confirm)
}

// ReleaseReservation godoc
// @Summary      Liberar una reserva activa (la orden se abortó)
// @Tags         reservations
// @Produce      json
// @Param        id   path  string  true  "ID de la reserva"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/reservations/{id}/release [post]
func (h *StockHandler) ReleaseReservation(c *fiber.Ctx) error {
	return h.transition(c, h.reservations.Release)
}

func (h *StockHandler) transition(c *fiber.Ctx, apply func(ctx context.Context, reservationID string) error) error {
	id := c.Params("id")
	if err := apply(c.UserContext(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "reserva no encontrada"})
		case errors.Is(err, domain.ErrReservationNotActive):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_ACTIVE", Message: "la reserva no está activa"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
