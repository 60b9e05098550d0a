package repository

import (
	"context"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
)

// PricingRuleRepository define el puerto de lectura del almacén de reglas de
// precios (administrado externamente). La ausencia de regla para un segmento
// es un error fatal de configuración que el caso de uso hace explícito.
type PricingRuleRepository interface {
	// GetBySegment devuelve nil, nil si el segmento no tiene regla.
	GetBySegment(ctx context.Context, customerSegment string) (*entity.PricingRule, error)
	Upsert(ctx context.Context, rule *entity.PricingRule) error
}
