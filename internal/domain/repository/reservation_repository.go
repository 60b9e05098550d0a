package repository

import (
	"context"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
)

// ReservationRepository define el puerto de persistencia de reservas.
type ReservationRepository interface {
	Create(ctx context.Context, r *entity.Reservation) error
	// GetByID devuelve nil, nil si la reserva no existe.
	GetByID(ctx context.Context, id string) (*entity.Reservation, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
