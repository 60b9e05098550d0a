package repository

import (
	"context"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
)

// CatalogRepository define el puerto de persistencia del catálogo de productos.
// El CRUD completo vive en la capa externa; este núcleo solo necesita leer las
// entradas activas para reconstruir el índice y resolver confirmaciones.
type CatalogRepository interface {
	Create(ctx context.Context, entry *entity.CatalogEntry) error
	// GetByID devuelve nil, nil si la entrada no existe.
	GetByID(ctx context.Context, id string) (*entity.CatalogEntry, error)
	// ListActive devuelve todas las entradas activas (insumo del índice).
	ListActive(ctx context.Context) ([]entity.CatalogEntry, error)
	List(ctx context.Context, limit, offset int) ([]entity.CatalogEntry, error)
	SetActive(ctx context.Context, id string, active bool) error
}
