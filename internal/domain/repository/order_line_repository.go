package repository

import (
	"context"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
)

// OrderLineRepository define el puerto de persistencia de líneas resueltas.
type OrderLineRepository interface {
	Create(ctx context.Context, line *entity.OrderLine) error
	// GetByID devuelve nil, nil si la línea no existe.
	GetByID(ctx context.Context, id string) (*entity.OrderLine, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
