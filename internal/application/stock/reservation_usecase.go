package stock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/repository"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/stockplan"
	"github.com/JBeggs/fambrifarms-backend-sub000/pkg/logger"
)

// ReservationUseCase implementa el ciclo de dos fases sobre el stock:
// reservar tentativamente y luego confirmar (venta definitiva) o liberar
// (la orden se abortó después de reservar pero antes del commit).
//
// Dos líneas concurrentes contra el mismo producto se serializan en la base:
// el decremento condicional del repositorio pierde la carrera devolviendo
// ErrReservationConflict y aquí se reintenta una única vez con lotes frescos.
type ReservationUseCase struct {
	tx  TxRunner
	log *logger.Logger
}

// NewReservationUseCase construye el caso de uso.
func NewReservationUseCase(tx TxRunner, log *logger.Logger) *ReservationUseCase {
	return &ReservationUseCase{tx: tx, log: log}
}

// Reserve planifica el cumplimiento y reserva cada lote contribuyente de
// forma individual. Si el stock no cubre, la reserva queda con método
// procurement_needed y el faltante registrado para el colaborador de compras.
func (uc *ReservationUseCase) Reserve(ctx context.Context, productID string, qty decimal.Decimal, unit string) (*entity.Reservation, error) {
	if productID == "" || !qty.GreaterThan(decimal.Zero) || unit == "" {
		return nil, domain.ErrInvalidInput
	}

	res, err := uc.tryReserve(ctx, productID, qty, unit)
	if errors.Is(err, domain.ErrReservationConflict) {
		// el stock cambió bajo nuestros pies: re-leer lotes y reintentar una vez
		uc.log.Warn().Str("product_id", productID).Msg("conflicto de reserva, reintentando")
		res, err = uc.tryReserve(ctx, productID, qty, unit)
	}
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("reservation_id", res.ID).
		Str("product_id", productID).
		Str("method", string(res.Method)).
		Str("quantity", res.Quantity.String()).
		Str("shortfall", res.Shortfall.String()).
		Msg("stock reservado")
	return res, nil
}

func (uc *ReservationUseCase) tryReserve(ctx context.Context, productID string, qty decimal.Decimal, unit string) (*entity.Reservation, error) {
	var res *entity.Reservation
	err := uc.tx.Run(ctx, func(lotRepo repository.StockLotRepository, reservationRepo repository.ReservationRepository) error {
		lots, err := lotRepo.ListByProduct(ctx, productID)
		if err != nil {
			return err
		}
		plan := stockplan.PlanFulfillment(lots, qty, unit)

		// cada lote contribuyente se reserva individualmente; un conflicto
		// revierte la transacción completa
		for _, alloc := range plan.Allocations {
			if err := lotRepo.ReserveQuantity(ctx, alloc.LotID, alloc.Quantity); err != nil {
				return err
			}
		}

		now := time.Now()
		res = &entity.Reservation{
			ID:          uuid.New().String(),
			ProductID:   productID,
			Quantity:    plan.Reservable,
			Unit:        unit,
			Method:      plan.Method,
			Allocations: plan.Allocations,
			Shortfall:   plan.Shortfall,
			Status:      entity.ReservationActive,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return reservationRepo.Create(ctx, res)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Confirm convierte la reserva en venta: el reservado de cada lote se consume
// de forma permanente (fase 2).
func (uc *ReservationUseCase) Confirm(ctx context.Context, reservationID string) error {
	return uc.transition(ctx, reservationID, entity.ReservationConfirmed,
		func(ctx context.Context, lotRepo repository.StockLotRepository, alloc entity.LotAllocation) error {
			return lotRepo.SellQuantity(ctx, alloc.LotID, alloc.Quantity)
		})
}

// Release devuelve lo reservado al disponible de cada lote (la orden se abortó).
func (uc *ReservationUseCase) Release(ctx context.Context, reservationID string) error {
	return uc.transition(ctx, reservationID, entity.ReservationReleased,
		func(ctx context.Context, lotRepo repository.StockLotRepository, alloc entity.LotAllocation) error {
			return lotRepo.ReleaseQuantity(ctx, alloc.LotID, alloc.Quantity)
		})
}

// transition aplica la operación por lote y el cambio de estado en una sola
// transacción. Solo las reservas activas pueden transicionar.
func (uc *ReservationUseCase) transition(
	ctx context.Context,
	reservationID, newStatus string,
	apply func(ctx context.Context, lotRepo repository.StockLotRepository, alloc entity.LotAllocation) error,
) error {
	if reservationID == "" {
		return domain.ErrInvalidInput
	}
	return uc.tx.Run(ctx, func(lotRepo repository.StockLotRepository, reservationRepo repository.ReservationRepository) error {
		res, err := reservationRepo.GetByID(ctx, reservationID)
		if err != nil {
			return err
		}
		if res == nil {
			return domain.ErrNotFound
		}
		if res.Status != entity.ReservationActive {
			return domain.ErrReservationNotActive
		}
		for _, alloc := range res.Allocations {
			if err := apply(ctx, lotRepo, alloc); err != nil {
				return err
			}
		}
		return reservationRepo.UpdateStatus(ctx, reservationID, newStatus)
	})
}
