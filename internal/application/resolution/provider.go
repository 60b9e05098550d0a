package resolution

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/matching"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/repository"
	"github.com/JBeggs/fambrifarms-backend-sub000/pkg/logger"
)

// IndexProvider mantiene el snapshot vigente del índice de catálogo y lo
// reconstruye periódicamente. El intercambio es atómico: un lector ve siempre
// el índice viejo completo o el nuevo completo, nunca uno parcial. Nada de
// estado global: el provider se inyecta a quien lo necesite.
type IndexProvider struct {
	repo    repository.CatalogRepository
	log     *logger.Logger
	current atomic.Pointer[matching.Index]
}

// NewIndexProvider construye el provider. El índice inicial está vacío hasta
// el primer Rebuild.
func NewIndexProvider(repo repository.CatalogRepository, log *logger.Logger) *IndexProvider {
	p := &IndexProvider{repo: repo, log: log}
	p.current.Store(matching.BuildIndex(nil))
	return p
}

// Current devuelve el snapshot vigente.
func (p *IndexProvider) Current() *matching.Index {
	return p.current.Load()
}

// Rebuild carga las entradas activas y reemplaza el snapshot de forma atómica.
func (p *IndexProvider) Rebuild(ctx context.Context) error {
	entries, err := p.repo.ListActive(ctx)
	if err != nil {
		return err
	}
	idx := matching.BuildIndex(entries)
	p.current.Store(idx)
	p.log.Info().Int("entries", idx.Size()).Msg("índice de catálogo reconstruido")
	return nil
}

// Run reconstruye el índice cada interval hasta que el contexto se cancele.
// Un fallo de reconstrucción deja el snapshot anterior en servicio.
func (p *IndexProvider) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Rebuild(ctx); err != nil {
				p.log.Error().Err(err).Msg("reconstrucción periódica del índice")
			}
		}
	}
}
