package repository

import (
	"context"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
)

// ResolutionRepository define el puerto de auditoría de resoluciones: cada
// resultado consumido se persiste con su desglose de scores para trazabilidad.
type ResolutionRepository interface {
	Create(ctx context.Context, result *entity.ResolutionResult) error
	// GetByID devuelve nil, nil si la resolución no existe.
	GetByID(ctx context.Context, id string) (*entity.ResolutionResult, error)
}
