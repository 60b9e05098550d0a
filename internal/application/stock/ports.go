package stock

import (
	"context"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que reservar los lotes y registrar
// la reserva sea atómico frente a peticiones concurrentes del mismo producto.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotRepo repository.StockLotRepository,
		reservationRepo repository.ReservationRepository,
	) error) error
}
