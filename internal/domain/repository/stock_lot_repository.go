package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
)

// StockLotRepository define el puerto para lotes de stock. Las mutaciones de
// cantidades se serializan en la base: ReserveQuantity usa un decremento
// condicional (available >= qty) y devuelve ErrReservationConflict cuando otra
// reserva concurrente ganó la carrera, para que el caller re-lea y reintente.
type StockLotRepository interface {
	Create(ctx context.Context, lot *entity.StockLot) error
	// GetByID devuelve nil, nil si el lote no existe.
	GetByID(ctx context.Context, lotID string) (*entity.StockLot, error)
	// ListByProduct devuelve los lotes del producto, incluidos los agotados.
	ListByProduct(ctx context.Context, productID string) ([]entity.StockLot, error)
	// ReserveQuantity mueve qty de disponible a reservado de forma atómica.
	ReserveQuantity(ctx context.Context, lotID string, qty decimal.Decimal) error
	// ReleaseQuantity devuelve qty de reservado a disponible.
	ReleaseQuantity(ctx context.Context, lotID string, qty decimal.Decimal) error
	// SellQuantity consume qty del reservado de forma permanente.
	SellQuantity(ctx context.Context, lotID string, qty decimal.Decimal) error
}
