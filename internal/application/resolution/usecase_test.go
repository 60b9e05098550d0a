package resolution_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/application/resolution"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/matching"
	"github.com/JBeggs/fambrifarms-backend-sub000/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeCatalogRepo struct {
	entries map[string]*entity.CatalogEntry
}

func newFakeCatalogRepo(entries ...entity.CatalogEntry) *fakeCatalogRepo {
	r := &fakeCatalogRepo{entries: make(map[string]*entity.CatalogEntry)}
	for i := range entries {
		e := entries[i]
		r.entries[e.ID] = &e
	}
	return r
}

func (r *fakeCatalogRepo) Create(_ context.Context, e *entity.CatalogEntry) error {
	cp := *e
	r.entries[e.ID] = &cp
	return nil
}

func (r *fakeCatalogRepo) GetByID(_ context.Context, id string) (*entity.CatalogEntry, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeCatalogRepo) ListActive(_ context.Context) ([]entity.CatalogEntry, error) {
	var out []entity.CatalogEntry
	for _, e := range r.entries {
		if e.Active {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) List(_ context.Context, _, _ int) ([]entity.CatalogEntry, error) {
	var out []entity.CatalogEntry
	for _, e := range r.entries {
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeCatalogRepo) SetActive(_ context.Context, id string, active bool) error {
	e, ok := r.entries[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.Active = active
	return nil
}

type fakeResolutionRepo struct {
	results map[string]*entity.ResolutionResult
}

func newFakeResolutionRepo() *fakeResolutionRepo {
	return &fakeResolutionRepo{results: make(map[string]*entity.ResolutionResult)}
}

func (r *fakeResolutionRepo) Create(_ context.Context, result *entity.ResolutionResult) error {
	cp := *result
	r.results[result.ID] = &cp
	return nil
}

func (r *fakeResolutionRepo) GetByID(_ context.Context, id string) (*entity.ResolutionResult, error) {
	res, ok := r.results[id]
	if !ok {
		return nil, nil
	}
	cp := *res
	return &cp, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Pipeline de resolución de punta a punta sobre el índice en memoria
// ──────────────────────────────────────────────────────────────────────────────

func entry(id, name, unit, price string) entity.CatalogEntry {
	p, err := decimal.NewFromString(price)
	if err != nil {
		panic(err)
	}
	return entity.CatalogEntry{ID: id, Name: name, Unit: unit, BasePrice: p, Active: true}
}

func newResolveUseCase(t *testing.T, entries ...entity.CatalogEntry) (*resolution.ResolveLineUseCase, *fakeResolutionRepo) {
	t.Helper()
	catalogRepo := newFakeCatalogRepo(entries...)
	provider := resolution.NewIndexProvider(catalogRepo, logger.Discard())
	require.NoError(t, provider.Rebuild(context.Background()))

	auditRepo := newFakeResolutionRepo()
	scorer := matching.NewScorer(matching.DefaultWeights(), matching.DefaultAliases())
	policy := matching.NewPolicy(matching.DefaultThresholds(), 0)
	return resolution.NewResolveLineUseCase(provider, auditRepo, scorer, policy, logger.Discard()), auditRepo
}

func TestResolveLine_LineaCompletaEsAuto(t *testing.T) {
	uc, auditRepo := newResolveUseCase(t,
		entry("rosemary", "Rosemary (200g packet)", "packet", "18.50"),
		entry("thyme", "Thyme (100g packet)", "packet", "15.00"),
	)

	result, err := uc.ResolveLine(context.Background(), "1 * packet rosemary 200g")
	require.NoError(t, err)

	assert.Equal(t, entity.TierAuto, result.Tier)
	require.NotNil(t, result.BestMatch)
	assert.Equal(t, "rosemary", result.BestMatch.EntryID)
	assert.InDelta(t, 75, result.BestMatch.TotalScore, 0.001)

	// la resolución queda auditada con su desglose
	stored, err := auditRepo.GetByID(context.Background(), result.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.TierAuto, stored.Tier)
}

func TestResolveLine_TypoEsListaDeSugerencias(t *testing.T) {
	uc, _ := newResolveUseCase(t,
		entry("tomatoes", "Tomatoes", "kg", "22"),
		entry("cherry", "Cherry Tomatoes", "punnet", "28"),
		entry("cocktail", "Cocktail Tomatoes", "punnet", "26.50"),
	)

	result, err := uc.ResolveLine(context.Background(), "tomatoe")
	require.NoError(t, err)

	assert.Equal(t, entity.TierSuggestionList, result.Tier)
	assert.Nil(t, result.BestMatch)
	assert.Len(t, result.Suggestions, 3, "las tres variantes aparecen en la lista")
}

func TestResolveLine_SinParecidoEsNone(t *testing.T) {
	uc, _ := newResolveUseCase(t, entry("tomatoes", "Tomatoes", "kg", "22"))

	result, err := uc.ResolveLine(context.Background(), "industrial bearing grease")
	require.NoError(t, err)

	assert.Equal(t, entity.TierNone, result.Tier, `"sin coincidencia" no es un error`)
	assert.Nil(t, result.BestMatch)
}

func TestResolveLine_EntradaVacia(t *testing.T) {
	uc, _ := newResolveUseCase(t, entry("tomatoes", "Tomatoes", "kg", "22"))

	_, err := uc.ResolveLine(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetResolution_NoExiste(t *testing.T) {
	uc, _ := newResolveUseCase(t, entry("tomatoes", "Tomatoes", "kg", "22"))

	_, err := uc.GetResolution(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIndexProvider_IntercambioAtomico(t *testing.T) {
	catalogRepo := newFakeCatalogRepo(entry("tomatoes", "Tomatoes", "kg", "22"))
	provider := resolution.NewIndexProvider(catalogRepo, logger.Discard())

	assert.Equal(t, 0, provider.Current().Size(), "el índice inicial está vacío")

	require.NoError(t, provider.Rebuild(context.Background()))
	first := provider.Current()
	assert.Equal(t, 1, first.Size())

	// una entrada nueva no aparece hasta el próximo rebuild
	require.NoError(t, catalogRepo.Create(context.Background(), ptrEntry(entry("broccoli", "Broccoli", "head", "16"))))
	assert.Equal(t, 1, provider.Current().Size())

	require.NoError(t, provider.Rebuild(context.Background()))
	assert.Equal(t, 2, provider.Current().Size())
	assert.Equal(t, 1, first.Size(), "el snapshot viejo es inmutable")
}

func ptrEntry(e entity.CatalogEntry) *entity.CatalogEntry { return &e }
