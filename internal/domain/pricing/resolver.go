package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Price calcula el precio unitario de venta desde el costo base y la regla de
// precios del segmento (función pura de dominio, determinista y sin efectos).
//
//	markupTotal% = (base% + ajusteVolatilidad%* + ajusteCategoria%) × multiplicadorTendencia
//	candidato    = costo × (1 + markupTotal%/100)
//	piso         = costo × (1 + margenMínimo%/100)
//	precio       = max(candidato, piso)
//
// *el ajuste por volatilidad solo aplica en mercados volátiles o peores.
// El piso de margen nunca se viola, sin importar la combinación de ajustes.
func Price(costBasis decimal.Decimal, rule entity.PricingRule) (decimal.Decimal, error) {
	if err := rule.Validate(); err != nil {
		return decimal.Zero, err
	}

	markup := rule.BaseMarkupPct
	if rule.AppliesVolatilityAdjustment() {
		markup = markup.Add(rule.VolatilityAdjustmentPct)
	}
	markup = markup.Add(rule.CategoryAdjustmentPct).Mul(rule.TrendMultiplier)

	candidate := costBasis.Mul(decimal.NewFromInt(1).Add(markup.Div(hundred)))
	floor := costBasis.Mul(decimal.NewFromInt(1).Add(rule.MinimumMarginPct.Div(hundred)))

	if candidate.LessThan(floor) {
		return floor.Round(2), nil
	}
	return candidate.Round(2), nil
}
