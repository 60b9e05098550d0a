package resolution

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/application/stock"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/pricing"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/repository"
	"github.com/JBeggs/fambrifarms-backend-sub000/pkg/logger"
)

// ConfirmInput entrada para confirmar una coincidencia (elección automática
// en tier auto o elección humana en los demás tiers).
type ConfirmInput struct {
	ResolutionID    string
	ProductID       string
	Quantity        decimal.Decimal
	Unit            string // vacío = unidad de venta del producto
	CustomerSegment string
	Confidence      float64 // score del candidato elegido; 0 en elección manual
}

// ConfirmMatchUseCase materializa una coincidencia confirmada: reserva el
// stock en dos fases, calcula el precio de venta con la regla del segmento y
// crea la línea de pedido resuelta. La anulación revierte los efectos.
type ConfirmMatchUseCase struct {
	catalogRepo  repository.CatalogRepository
	pricingRepo  repository.PricingRuleRepository
	lineRepo     repository.OrderLineRepository
	reservations *stock.ReservationUseCase
	log          *logger.Logger
}

// NewConfirmMatchUseCase construye el caso de uso.
func NewConfirmMatchUseCase(
	catalogRepo repository.CatalogRepository,
	pricingRepo repository.PricingRuleRepository,
	lineRepo repository.OrderLineRepository,
	reservations *stock.ReservationUseCase,
	log *logger.Logger,
) *ConfirmMatchUseCase {
	return &ConfirmMatchUseCase{
		catalogRepo:  catalogRepo,
		pricingRepo:  pricingRepo,
		lineRepo:     lineRepo,
		reservations: reservations,
		log:          log,
	}
}

// ConfirmMatch reserva, precia y crea la línea resuelta.
//
// La regla de precios se valida ANTES de reservar: una configuración de
// precios rota es fatal y no debe dejar stock comprometido. Si la creación de
// la línea falla después de reservar, la reserva se libera (mejor esfuerzo,
// el estado de dos fases lo permite).
func (uc *ConfirmMatchUseCase) ConfirmMatch(ctx context.Context, in ConfirmInput) (*entity.OrderLine, error) {
	if in.ProductID == "" || !in.Quantity.GreaterThan(decimal.Zero) || in.CustomerSegment == "" {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.catalogRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, domain.ErrNotFound
	}

	unit := in.Unit
	if unit == "" {
		unit = product.Unit
	}

	rule, err := uc.pricingRepo.GetBySegment(ctx, in.CustomerSegment)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, domain.ErrPricingRuleNotFound
	}
	unitPrice, err := pricing.Price(product.BasePrice, *rule)
	if err != nil {
		return nil, err
	}

	reservation, err := uc.reservations.Reserve(ctx, in.ProductID, in.Quantity, unit)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	line := &entity.OrderLine{
		ID:            uuid.New().String(),
		ProductID:     in.ProductID,
		ReservationID: reservation.ID,
		Quantity:      in.Quantity,
		Unit:          unit,
		UnitPrice:     unitPrice,
		LineTotal:     unitPrice.Mul(in.Quantity),
		Confidence:    in.Confidence,
		Method:        reservation.Method,
		Shortfall:     reservation.Shortfall,
		Status:        entity.OrderLineConfirmed,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.lineRepo.Create(ctx, line); err != nil {
		if relErr := uc.reservations.Release(ctx, reservation.ID); relErr != nil {
			uc.log.Error().Err(relErr).Str("reservation_id", reservation.ID).
				Msg("no se pudo liberar la reserva tras fallo de persistencia")
		}
		return nil, err
	}

	uc.log.Info().
		Str("order_line_id", line.ID).
		Str("product_id", line.ProductID).
		Str("resolution_id", in.ResolutionID).
		Str("method", string(line.Method)).
		Str("unit_price", line.UnitPrice.String()).
		Msg("línea confirmada")
	return line, nil
}

// Void anula una línea confirmada: libera su reserva y la marca anulada,
// revirtiendo los efectos de stock y precio.
func (uc *ConfirmMatchUseCase) Void(ctx context.Context, lineID string) error {
	if lineID == "" {
		return domain.ErrInvalidInput
	}
	line, err := uc.lineRepo.GetByID(ctx, lineID)
	if err != nil {
		return err
	}
	if line == nil {
		return domain.ErrNotFound
	}
	if line.Status != entity.OrderLineConfirmed {
		return domain.ErrConflict
	}
	if err := uc.reservations.Release(ctx, line.ReservationID); err != nil {
		return err
	}
	return uc.lineRepo.UpdateStatus(ctx, lineID, entity.OrderLineVoided)
}
