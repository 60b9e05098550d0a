package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/repository"
)

var _ repository.OrderLineRepository = (*OrderLineRepo)(nil)

// OrderLineRepo implementación del puerto OrderLineRepository sobre PostgreSQL (usable con pool o tx).
type OrderLineRepo struct {
	q Querier
}

// NewOrderLineRepository construye el adaptador de persistencia para líneas de pedido. Pasar pool o tx (Querier).
func NewOrderLineRepository(q Querier) *OrderLineRepo {
	return &OrderLineRepo{q: q}
}

const orderLineColumns = `id, product_id, reservation_id, quantity, unit, unit_price, line_total,
		confidence, method, shortfall, status, created_at, updated_at`

// Create persiste una nueva línea de pedido confirmada.
func (r *OrderLineRepo) Create(ctx context.Context, line *entity.OrderLine) error {
	query := `
		INSERT INTO order_lines (id, product_id, reservation_id, quantity, unit, unit_price, line_total,
		                         confidence, method, shortfall, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		line.ID, line.ProductID, line.ReservationID, line.Quantity, line.Unit,
		line.UnitPrice, line.LineTotal, line.Confidence, string(line.Method),
		line.Shortfall, line.Status, line.CreatedAt, line.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order line: %w", err)
	}
	return nil
}

// GetByID obtiene una línea de pedido por ID.
func (r *OrderLineRepo) GetByID(ctx context.Context, id string) (*entity.OrderLine, error) {
	query := `SELECT ` + orderLineColumns + ` FROM order_lines WHERE id = $1`
	var (
		line   entity.OrderLine
		method string
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&line.ID, &line.ProductID, &line.ReservationID, &line.Quantity, &line.Unit,
		&line.UnitPrice, &line.LineTotal, &line.Confidence, &method,
		&line.Shortfall, &line.Status, &line.CreatedAt, &line.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order line: %w", err)
	}
	line.Method = entity.FulfillmentMethod(method)
	return &line, nil
}

// UpdateStatus cambia el estado de una línea de pedido.
func (r *OrderLineRepo) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE order_lines SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update order line status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
