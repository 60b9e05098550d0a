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

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo implementación del puerto CatalogRepository sobre PostgreSQL (usable con pool o tx).
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador de persistencia para el catálogo. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

const catalogColumns = `id, name, unit, base_price, active, created_at, updated_at`

// Create persiste una nueva entrada de catálogo.
func (r *CatalogRepo) Create(ctx context.Context, e *entity.CatalogEntry) error {
	query := `
		INSERT INTO catalog_entries (id, name, unit, base_price, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Name, e.Unit, e.BasePrice, e.Active, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert catalog entry: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID.
func (r *CatalogRepo) GetByID(ctx context.Context, id string) (*entity.CatalogEntry, error) {
	query := `SELECT ` + catalogColumns + ` FROM catalog_entries WHERE id = $1`
	var e entity.CatalogEntry
	err := r.q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Name, &e.Unit, &e.BasePrice, &e.Active, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get catalog entry: %w", err)
	}
	return &e, nil
}

// ListActive devuelve todas las entradas activas (insumo para reconstruir el índice).
func (r *CatalogRepo) ListActive(ctx context.Context) ([]entity.CatalogEntry, error) {
	query := `SELECT ` + catalogColumns + ` FROM catalog_entries WHERE active ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active catalog entries: %w", err)
	}
	defer rows.Close()
	return scanCatalogEntries(rows)
}

// List devuelve una página de entradas, activas o no.
func (r *CatalogRepo) List(ctx context.Context, limit, offset int) ([]entity.CatalogEntry, error) {
	query := `SELECT ` + catalogColumns + ` FROM catalog_entries ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list catalog entries: %w", err)
	}
	defer rows.Close()
	return scanCatalogEntries(rows)
}

// SetActive activa o desactiva una entrada.
func (r *CatalogRepo) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE catalog_entries SET active = $2, updated_at = now() WHERE id = $1`,
		id, active,
	)
	if err != nil {
		return fmt.Errorf("set catalog entry active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCatalogEntries(rows pgx.Rows) ([]entity.CatalogEntry, error) {
	var entries []entity.CatalogEntry
	for rows.Next() {
		var e entity.CatalogEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Unit, &e.BasePrice, &e.Active, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan catalog entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog entries: %w", err)
	}
	return entries, nil
}
