package stockplan

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
)

// Plan describe cómo cubrir una cantidad solicitada desde los lotes actuales,
// sin mutar nada: reservar es responsabilidad de la capa de aplicación.
type Plan struct {
	Method      entity.FulfillmentMethod
	Allocations []entity.LotAllocation // qué tomar de cada lote, lotes chicos primero
	Reservable  decimal.Decimal        // total cubrible desde stock
	Shortfall   decimal.Decimal        // pedido − reservable; > 0 solo con procurement_needed
}

// PlanFulfillment decide el método de cumplimiento para requested en unit:
//
//   - exact_match: un solo lote con el empaque justo (disponible == pedido), consumido completo
//   - combination: varios lotes sumados, asignados de menor a mayor disponible
//   - partial_use: una fracción de un único lote a granel más grande
//   - procurement_needed: el stock no alcanza; el faltante va al colaborador de compras
//
// Determinista: lotes ordenados por disponible ascendente y luego por ID.
// Lotes de otra unidad no participan (la conversión de unidades es externa).
func PlanFulfillment(lots []entity.StockLot, requested decimal.Decimal, unit string) Plan {
	plan := Plan{Method: entity.FulfillProcurement, Reservable: decimal.Zero, Shortfall: decimal.Zero}
	if !requested.GreaterThan(decimal.Zero) {
		return plan
	}

	usable := make([]entity.StockLot, 0, len(lots))
	for _, l := range lots {
		if l.Unit == unit && l.Available.GreaterThan(decimal.Zero) {
			usable = append(usable, l)
		}
	}
	sort.Slice(usable, func(i, j int) bool {
		if !usable[i].Available.Equal(usable[j].Available) {
			return usable[i].Available.LessThan(usable[j].Available)
		}
		return usable[i].ID < usable[j].ID
	})

	// empaque justo: un lote cuyo disponible es exactamente lo pedido
	for _, l := range usable {
		if l.Available.Equal(requested) {
			plan.Method = entity.FulfillExact
			plan.Allocations = []entity.LotAllocation{{LotID: l.ID, Quantity: requested}}
			plan.Reservable = requested
			return plan
		}
	}

	// asignación golosa de menor a mayor: vacía lotes chicos antes de
	// fraccionar uno grande
	remaining := requested
	for _, l := range usable {
		if !remaining.GreaterThan(decimal.Zero) {
			break
		}
		take := decimal.Min(l.Available, remaining)
		plan.Allocations = append(plan.Allocations, entity.LotAllocation{LotID: l.ID, Quantity: take})
		plan.Reservable = plan.Reservable.Add(take)
		remaining = remaining.Sub(take)
	}

	switch {
	case remaining.GreaterThan(decimal.Zero):
		plan.Method = entity.FulfillProcurement
		plan.Shortfall = remaining
	case len(plan.Allocations) > 1:
		plan.Method = entity.FulfillCombination
	default:
		// un solo lote más grande, consumido en fracción
		plan.Method = entity.FulfillPartialUse
	}
	return plan
}
