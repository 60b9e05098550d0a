package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/repository"
)

var _ repository.PricingRuleRepository = (*PricingRuleRepo)(nil)

// PricingRuleRepo implementación del puerto PricingRuleRepository sobre PostgreSQL (usable con pool o tx).
type PricingRuleRepo struct {
	q Querier
}

// NewPricingRuleRepository construye el adaptador de persistencia para reglas de precios. Pasar pool o tx (Querier).
func NewPricingRuleRepository(q Querier) *PricingRuleRepo {
	return &PricingRuleRepo{q: q}
}

// GetBySegment obtiene la regla de precios de un segmento de cliente.
func (r *PricingRuleRepo) GetBySegment(ctx context.Context, customerSegment string) (*entity.PricingRule, error) {
	query := `
		SELECT customer_segment, volatility, base_markup_pct, volatility_adjustment_pct,
		       category_adjustment_pct, minimum_margin_pct, trend_multiplier
		FROM pricing_rules WHERE customer_segment = $1`
	var (
		rule       entity.PricingRule
		volatility string
	)
	err := r.q.QueryRow(ctx, query, customerSegment).Scan(
		&rule.CustomerSegment, &volatility, &rule.BaseMarkupPct, &rule.VolatilityAdjustmentPct,
		&rule.CategoryAdjustmentPct, &rule.MinimumMarginPct, &rule.TrendMultiplier,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pricing rule: %w", err)
	}
	rule.Volatility = entity.VolatilityLevel(volatility)
	return &rule, nil
}

// Upsert inserta o reemplaza la regla de un segmento.
func (r *PricingRuleRepo) Upsert(ctx context.Context, rule *entity.PricingRule) error {
	query := `
		INSERT INTO pricing_rules (customer_segment, volatility, base_markup_pct, volatility_adjustment_pct,
		                           category_adjustment_pct, minimum_margin_pct, trend_multiplier)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (customer_segment) DO UPDATE SET
			volatility = EXCLUDED.volatility,
			base_markup_pct = EXCLUDED.base_markup_pct,
			volatility_adjustment_pct = EXCLUDED.volatility_adjustment_pct,
			category_adjustment_pct = EXCLUDED.category_adjustment_pct,
			minimum_margin_pct = EXCLUDED.minimum_margin_pct,
			trend_multiplier = EXCLUDED.trend_multiplier`
	_, err := r.q.Exec(ctx, query,
		rule.CustomerSegment, string(rule.Volatility), rule.BaseMarkupPct, rule.VolatilityAdjustmentPct,
		rule.CategoryAdjustmentPct, rule.MinimumMarginPct, rule.TrendMultiplier,
	)
	if err != nil {
		return fmt.Errorf("upsert pricing rule: %w", err)
	}
	return nil
}
