package stock

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/repository"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/stockplan"
)

// AvailabilityUseCase responde consultas de disponibilidad sin mutar nada:
// un producto sin stock sigue siendo sugerible, solo se informa el plan.
type AvailabilityUseCase struct {
	lotRepo repository.StockLotRepository
}

// NewAvailabilityUseCase construye el caso de uso de consulta.
func NewAvailabilityUseCase(lotRepo repository.StockLotRepository) *AvailabilityUseCase {
	return &AvailabilityUseCase{lotRepo: lotRepo}
}

// Position es la foto agregada del stock de un producto más, opcionalmente,
// el plan de cumplimiento para una cantidad consultada.
type Position struct {
	ProductID string
	Available decimal.Decimal
	Reserved  decimal.Decimal
	Lots      []entity.StockLot
	Plan      *stockplan.Plan // nil si no se consultó cantidad
}

// Check devuelve lotes y totales del producto; con qty > 0 agrega la vista
// previa del plan de cumplimiento (informativa, nada se reserva aquí).
func (uc *AvailabilityUseCase) Check(ctx context.Context, productID string, qty decimal.Decimal, unit string) (*Position, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	lots, err := uc.lotRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	pos := &Position{ProductID: productID, Available: decimal.Zero, Reserved: decimal.Zero, Lots: lots}
	for _, l := range lots {
		pos.Available = pos.Available.Add(l.Available)
		pos.Reserved = pos.Reserved.Add(l.Reserved)
	}
	if qty.GreaterThan(decimal.Zero) {
		plan := stockplan.PlanFulfillment(lots, qty, unit)
		pos.Plan = &plan
	}
	return pos, nil
}
