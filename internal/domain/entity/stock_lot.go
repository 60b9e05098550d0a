package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain"
)

// StockLot es un lote físico de un producto en bodega. Este núcleo solo muta
// Available y Reserved vía reservar/liberar/vender; el total en mano lo
// administra recepción/producción (colaborador externo).
// Invariantes: Available >= 0 y Reserved >= 0 en todo momento.
type StockLot struct {
	ID        string
	ProductID string
	Available decimal.Decimal // cantidad disponible para reservar
	Reserved  decimal.Decimal // cantidad reservada pendiente de venta o liberación
	Unit      string
	UpdatedAt time.Time
}

// OnHand devuelve el total del lote (disponible + reservado).
func (l StockLot) OnHand() decimal.Decimal {
	return l.Available.Add(l.Reserved)
}

// Reserve mueve qty de disponible a reservado (fase 1 del patrón de dos fases).
func (l *StockLot) Reserve(qty decimal.Decimal) error {
	if !qty.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if l.Available.LessThan(qty) {
		return domain.ErrInsufficientStock
	}
	l.Available = l.Available.Sub(qty)
	l.Reserved = l.Reserved.Add(qty)
	return nil
}

// Release devuelve qty de reservado a disponible (la orden se abortó antes del commit).
func (l *StockLot) Release(qty decimal.Decimal) error {
	if !qty.GreaterThan(decimal.Zero) || l.Reserved.LessThan(qty) {
		return domain.ErrInvalidInput
	}
	l.Reserved = l.Reserved.Sub(qty)
	l.Available = l.Available.Add(qty)
	return nil
}

// Sell consume qty del reservado de forma permanente (fase 2: la reserva se
// convierte en venta; Available no cambia porque ya se descontó al reservar).
func (l *StockLot) Sell(qty decimal.Decimal) error {
	if !qty.GreaterThan(decimal.Zero) || l.Reserved.LessThan(qty) {
		return domain.ErrInvalidInput
	}
	l.Reserved = l.Reserved.Sub(qty)
	return nil
}
