package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/repository"
)

var _ repository.ReservationRepository = (*ReservationRepo)(nil)

// ReservationRepo implementación del puerto ReservationRepository sobre PostgreSQL (usable con pool o tx).
type ReservationRepo struct {
	q Querier
}

// NewReservationRepository construye el adaptador de persistencia para reservas. Pasar pool o tx (Querier).
func NewReservationRepository(q Querier) *ReservationRepo {
	return &ReservationRepo{q: q}
}

// Create persiste una nueva reserva con sus asignaciones por lote (jsonb).
func (r *ReservationRepo) Create(ctx context.Context, res *entity.Reservation) error {
	allocations, err := json.Marshal(res.Allocations)
	if err != nil {
		return fmt.Errorf("marshal allocations: %w", err)
	}
	query := `
		INSERT INTO reservations (id, product_id, quantity, unit, method, allocations, shortfall, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(ctx, query,
		res.ID, res.ProductID, res.Quantity, res.Unit, string(res.Method),
		allocations, res.Shortfall, res.Status, res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert reservation: %w", err)
	}
	return nil
}

// GetByID obtiene una reserva por ID.
func (r *ReservationRepo) GetByID(ctx context.Context, id string) (*entity.Reservation, error) {
	query := `
		SELECT id, product_id, quantity, unit, method, allocations, shortfall, status, created_at, updated_at
		FROM reservations WHERE id = $1`
	var (
		res         entity.Reservation
		method      string
		allocations []byte
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&res.ID, &res.ProductID, &res.Quantity, &res.Unit, &method,
		&allocations, &res.Shortfall, &res.Status, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	res.Method = entity.FulfillmentMethod(method)
	if err := json.Unmarshal(allocations, &res.Allocations); err != nil {
		return nil, fmt.Errorf("unmarshal allocations: %w", err)
	}
	return &res, nil
}

// UpdateStatus cambia el estado de una reserva.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE reservations SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
