package entity

import (
	"github.com/shopspring/decimal"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain"
)

// VolatilityLevel es el nivel categórico de variación reciente de precios de mercado.
type VolatilityLevel string

const (
	VolatilityStable   VolatilityLevel = "stable"
	VolatilityVolatile VolatilityLevel = "volatile"
	VolatilityHigh     VolatilityLevel = "highly_volatile"
	VolatilityExtreme  VolatilityLevel = "extremely_volatile"
)

// PricingRule es el contexto de precios administrado externamente para un
// segmento de cliente. Entrada de solo lectura del motor de precios.
type PricingRule struct {
	CustomerSegment         string
	Volatility              VolatilityLevel
	BaseMarkupPct           decimal.Decimal
	VolatilityAdjustmentPct decimal.Decimal
	CategoryAdjustmentPct   decimal.Decimal
	MinimumMarginPct        decimal.Decimal
	TrendMultiplier         decimal.Decimal
}

// AppliesVolatilityAdjustment indica si el nivel de volatilidad activa el ajuste.
func (r PricingRule) AppliesVolatilityAdjustment() bool {
	switch r.Volatility {
	case VolatilityVolatile, VolatilityHigh, VolatilityExtreme:
		return true
	}
	return false
}

// Validate verifica que la regla sea usable. Una regla inválida es un error
// fatal de configuración: defaultear en silencio cobraría mal a un cliente.
func (r PricingRule) Validate() error {
	if r.CustomerSegment == "" {
		return domain.ErrInvalidPricingContext
	}
	switch r.Volatility {
	case VolatilityStable, VolatilityVolatile, VolatilityHigh, VolatilityExtreme:
	default:
		return domain.ErrInvalidPricingContext
	}
	if r.MinimumMarginPct.LessThan(decimal.Zero) || !r.TrendMultiplier.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidPricingContext
	}
	return nil
}
