package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/repository"
)

var _ repository.StockLotRepository = (*StockLotRepo)(nil)

// StockLotRepo implementación del puerto StockLotRepository sobre PostgreSQL (usable con pool o tx).
type StockLotRepo struct {
	q Querier
}

// NewStockLotRepository construye el adaptador de persistencia para lotes. Pasar pool o tx (Querier).
func NewStockLotRepository(q Querier) *StockLotRepo {
	return &StockLotRepo{q: q}
}

const stockLotColumns = `id, product_id, available, reserved, unit, updated_at`

// Create persiste un nuevo lote de stock.
func (r *StockLotRepo) Create(ctx context.Context, lot *entity.StockLot) error {
	query := `
		INSERT INTO stock_lots (id, product_id, available, reserved, unit, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		lot.ID, lot.ProductID, lot.Available, lot.Reserved, lot.Unit, lot.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *StockLotRepo) GetByID(ctx context.Context, lotID string) (*entity.StockLot, error) {
	query := `SELECT ` + stockLotColumns + ` FROM stock_lots WHERE id = $1`
	var l entity.StockLot
	err := r.q.QueryRow(ctx, query, lotID).Scan(
		&l.ID, &l.ProductID, &l.Available, &l.Reserved, &l.Unit, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock lot: %w", err)
	}
	return &l, nil
}

// ListByProduct devuelve los lotes del producto, incluidos los agotados.
func (r *StockLotRepo) ListByProduct(ctx context.Context, productID string) ([]entity.StockLot, error) {
	query := `SELECT ` + stockLotColumns + ` FROM stock_lots WHERE product_id = $1 ORDER BY available`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock lots: %w", err)
	}
	defer rows.Close()

	var lots []entity.StockLot
	for rows.Next() {
		var l entity.StockLot
		if err := rows.Scan(&l.ID, &l.ProductID, &l.Available, &l.Reserved, &l.Unit, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock lot: %w", err)
		}
		lots = append(lots, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stock lots: %w", err)
	}
	return lots, nil
}

// ReserveQuantity mueve qty de disponible a reservado. El WHERE condicional
// serializa reservas concurrentes: cero filas afectadas significa que el lote
// ya no tiene esa cantidad disponible.
func (r *StockLotRepo) ReserveQuantity(ctx context.Context, lotID string, qty decimal.Decimal) error {
	query := `
		UPDATE stock_lots
		SET available = available - $2, reserved = reserved + $2, updated_at = now()
		WHERE id = $1 AND available >= $2`
	tag, err := r.q.Exec(ctx, query, lotID, qty)
	if err != nil {
		return fmt.Errorf("reserve quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReservationConflict
	}
	return nil
}

// ReleaseQuantity devuelve qty de reservado a disponible.
func (r *StockLotRepo) ReleaseQuantity(ctx context.Context, lotID string, qty decimal.Decimal) error {
	query := `
		UPDATE stock_lots
		SET available = available + $2, reserved = reserved - $2, updated_at = now()
		WHERE id = $1 AND reserved >= $2`
	tag, err := r.q.Exec(ctx, query, lotID, qty)
	if err != nil {
		return fmt.Errorf("release quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReservationConflict
	}
	return nil
}

// SellQuantity consume qty del reservado de forma permanente.
func (r *StockLotRepo) SellQuantity(ctx context.Context, lotID string, qty decimal.Decimal) error {
	query := `
		UPDATE stock_lots
		SET reserved = reserved - $2, updated_at = now()
		WHERE id = $1 AND reserved >= $2`
	tag, err := r.q.Exec(ctx, query, lotID, qty)
	if err != nil {
		return fmt.Errorf("sell quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReservationConflict
	}
	return nil
}
