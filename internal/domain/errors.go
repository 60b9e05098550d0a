package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrReservationConflict   = errors.New("conflicto de reserva concurrente: el stock cambió")
	ErrReservationNotActive  = errors.New("la reserva no está activa")
	ErrPricingRuleNotFound   = errors.New("no existe regla de precios para el segmento")
	ErrInvalidPricingContext = errors.New("contexto de precios inválido")
)
