package resolution_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/application/resolution"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/application/stock"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/repository"
	"github.com/JBeggs/fambrifarms-backend-sub000/pkg/logger"
)

type fakeLotRepo struct {
	lots map[string]*entity.StockLot
}

func newFakeLotRepo(lots ...entity.StockLot) *fakeLotRepo {
	r := &fakeLotRepo{lots: make(map[string]*entity.StockLot)}
	for i := range lots {
		l := lots[i]
		r.lots[l.ID] = &l
	}
	return r
}

func (r *fakeLotRepo) Create(_ context.Context, lot *entity.StockLot) error {
	cp := *lot
	r.lots[lot.ID] = &cp
	return nil
}

func (r *fakeLotRepo) GetByID(_ context.Context, lotID string) (*entity.StockLot, error) {
	l, ok := r.lots[lotID]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLotRepo) ListByProduct(_ context.Context, productID string) ([]entity.StockLot, error) {
	var out []entity.StockLot
	for _, l := range r.lots {
		if l.ProductID == productID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeLotRepo) ReserveQuantity(_ context.Context, lotID string, qty decimal.Decimal) error {
	l, ok := r.lots[lotID]
	if !ok || l.Available.LessThan(qty) {
		return domain.ErrReservationConflict
	}
	l.Available = l.Available.Sub(qty)
	l.Reserved = l.Reserved.Add(qty)
	return nil
}

func (r *fakeLotRepo) ReleaseQuantity(_ context.Context, lotID string, qty decimal.Decimal) error {
	l, ok := r.lots[lotID]
	if !ok || l.Reserved.LessThan(qty) {
		return domain.ErrReservationConflict
	}
	l.Reserved = l.Reserved.Sub(qty)
	l.Available = l.Available.Add(qty)
	return nil
}

func (r *fakeLotRepo) SellQuantity(_ context.Context, lotID string, qty decimal.Decimal) error {
	l, ok := r.lots[lotID]
	if !ok || l.Reserved.LessThan(qty) {
		return domain.ErrReservationConflict
	}
	l.Reserved = l.Reserved.Sub(qty)
	return nil
}

type fakeReservationRepo struct {
	reservations map[string]*entity.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{reservations: make(map[string]*entity.Reservation)}
}

func (r *fakeReservationRepo) Create(_ context.Context, res *entity.Reservation) error {
	cp := *res
	r.reservations[res.ID] = &cp
	return nil
}

func (r *fakeReservationRepo) GetByID(_ context.Context, id string) (*entity.Reservation, error) {
	res, ok := r.reservations[id]
	if !ok {
		return nil, nil
	}
	cp := *res
	return &cp, nil
}

func (r *fakeReservationRepo) UpdateStatus(_ context.Context, id, status string) error {
	res, ok := r.reservations[id]
	if !ok {
		return domain.ErrNotFound
	}
	res.Status = status
	return nil
}

type fakeTxRunner struct {
	lotRepo *fakeLotRepo
	resRepo *fakeReservationRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	lotRepo repository.StockLotRepository,
	reservationRepo repository.ReservationRepository,
) error) error {
	return fn(f.lotRepo, f.resRepo)
}

type fakePricingRepo struct {
	rules map[string]*entity.PricingRule
}

func newFakePricingRepo(rules ...entity.PricingRule) *fakePricingRepo {
	r := &fakePricingRepo{rules: make(map[string]*entity.PricingRule)}
	for i := range rules {
		rule := rules[i]
		r.rules[rule.CustomerSegment] = &rule
	}
	return r
}

func (r *fakePricingRepo) GetBySegment(_ context.Context, segment string) (*entity.PricingRule, error) {
	rule, ok := r.rules[segment]
	if !ok {
		return nil, nil
	}
	cp := *rule
	return &cp, nil
}

func (r *fakePricingRepo) Upsert(_ context.Context, rule *entity.PricingRule) error {
	cp := *rule
	r.rules[rule.CustomerSegment] = &cp
	return nil
}

type fakeOrderLineRepo struct {
	lines      map[string]*entity.OrderLine
	failCreate bool
}

func newFakeOrderLineRepo() *fakeOrderLineRepo {
	return &fakeOrderLineRepo{lines: make(map[string]*entity.OrderLine)}
}

func (r *fakeOrderLineRepo) Create(_ context.Context, line *entity.OrderLine) error {
	if r.failCreate {
		return domain.ErrDuplicate
	}
	cp := *line
	r.lines[line.ID] = &cp
	return nil
}

func (r *fakeOrderLineRepo) GetByID(_ context.Context, id string) (*entity.OrderLine, error) {
	line, ok := r.lines[id]
	if !ok {
		return nil, nil
	}
	cp := *line
	return &cp, nil
}

func (r *fakeOrderLineRepo) UpdateStatus(_ context.Context, id, status string) error {
	line, ok := r.lines[id]
	if !ok {
		return domain.ErrNotFound
	}
	line.Status = status
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// ConfirmMatch: reserva en dos fases + precio del segmento + línea resuelta
// ──────────────────────────────────────────────────────────────────────────────

type confirmFixture struct {
	uc       *resolution.ConfirmMatchUseCase
	lotRepo  *fakeLotRepo
	resRepo  *fakeReservationRepo
	lineRepo *fakeOrderLineRepo
}

func newConfirmFixture(products []entity.CatalogEntry, lots []entity.StockLot, rules []entity.PricingRule) confirmFixture {
	lotRepo := newFakeLotRepo(lots...)
	resRepo := newFakeReservationRepo()
	lineRepo := newFakeOrderLineRepo()
	reservations := stock.NewReservationUseCase(&fakeTxRunner{lotRepo: lotRepo, resRepo: resRepo}, logger.Discard())
	uc := resolution.NewConfirmMatchUseCase(
		newFakeCatalogRepo(products...),
		newFakePricingRepo(rules...),
		lineRepo,
		reservations,
		logger.Discard(),
	)
	return confirmFixture{uc: uc, lotRepo: lotRepo, resRepo: resRepo, lineRepo: lineRepo}
}

func volatileRule(segment string) entity.PricingRule {
	return entity.PricingRule{
		CustomerSegment:         segment,
		Volatility:              entity.VolatilityVolatile,
		BaseMarkupPct:           decimal.NewFromInt(25),
		VolatilityAdjustmentPct: decimal.NewFromInt(10),
		CategoryAdjustmentPct:   decimal.Zero,
		MinimumMarginPct:        decimal.NewFromInt(15),
		TrendMultiplier:         decimal.NewFromInt(1),
	}
}

func kgLot(id, productID, available string) entity.StockLot {
	qty, err := decimal.NewFromString(available)
	if err != nil {
		panic(err)
	}
	return entity.StockLot{ID: id, ProductID: productID, Available: qty, Reserved: decimal.Zero, Unit: "kg"}
}

func TestConfirmMatch_CaminoFeliz(t *testing.T) {
	fx := newConfirmFixture(
		[]entity.CatalogEntry{entry("p1", "Tomatoes", "kg", "20")},
		[]entity.StockLot{kgLot("a", "p1", "2"), kgLot("b", "p1", "5")},
		[]entity.PricingRule{volatileRule("restaurant_standard")},
	)

	line, err := fx.uc.ConfirmMatch(context.Background(), resolution.ConfirmInput{
		ResolutionID:    "res-1",
		ProductID:       "p1",
		Quantity:        decimal.NewFromInt(3),
		CustomerSegment: "restaurant_standard",
		Confidence:      75,
	})
	require.NoError(t, err)

	// precio: 20 × (1 + 35%) = 27.00; total: 27 × 3 = 81
	assert.Equal(t, "27", line.UnitPrice.String())
	assert.Equal(t, "81", line.LineTotal.String())
	assert.Equal(t, "kg", line.Unit, "sin unidad explícita se usa la unidad de venta")
	assert.Equal(t, entity.FulfillCombination, line.Method)
	assert.Equal(t, entity.OrderLineConfirmed, line.Status)
	assert.Equal(t, 75.0, line.Confidence)

	// la reserva quedó activa con el stock movido
	stored, _ := fx.resRepo.GetByID(context.Background(), line.ReservationID)
	require.NotNil(t, stored)
	assert.Equal(t, entity.ReservationActive, stored.Status)
	assert.True(t, fx.lotRepo.lots["a"].Available.IsZero())
}

// La regla de precios se valida ANTES de reservar: una configuración rota no
// debe dejar stock comprometido.
func TestConfirmMatch_SinReglaDePreciosNoReserva(t *testing.T) {
	fx := newConfirmFixture(
		[]entity.CatalogEntry{entry("p1", "Tomatoes", "kg", "20")},
		[]entity.StockLot{kgLot("a", "p1", "5")},
		nil,
	)

	_, err := fx.uc.ConfirmMatch(context.Background(), resolution.ConfirmInput{
		ProductID:       "p1",
		Quantity:        decimal.NewFromInt(3),
		CustomerSegment: "unknown_segment",
	})

	assert.ErrorIs(t, err, domain.ErrPricingRuleNotFound)
	assert.True(t, decimal.NewFromInt(5).Equal(fx.lotRepo.lots["a"].Available),
		"el stock queda intacto")
	assert.Empty(t, fx.resRepo.reservations)
}

func TestConfirmMatch_ProductoInactivoOInexistente(t *testing.T) {
	inactive := entry("p2", "Old Tomatoes", "kg", "20")
	inactive.Active = false
	fx := newConfirmFixture(
		[]entity.CatalogEntry{inactive},
		nil,
		[]entity.PricingRule{volatileRule("restaurant_standard")},
	)

	for _, productID := range []string{"p2", "ghost"} {
		_, err := fx.uc.ConfirmMatch(context.Background(), resolution.ConfirmInput{
			ProductID:       productID,
			Quantity:        decimal.NewFromInt(1),
			CustomerSegment: "restaurant_standard",
		})
		assert.ErrorIs(t, err, domain.ErrNotFound, productID)
	}
}

// Si la línea no se puede persistir tras reservar, la reserva se libera.
func TestConfirmMatch_FalloDePersistenciaLiberaLaReserva(t *testing.T) {
	fx := newConfirmFixture(
		[]entity.CatalogEntry{entry("p1", "Tomatoes", "kg", "20")},
		[]entity.StockLot{kgLot("a", "p1", "5")},
		[]entity.PricingRule{volatileRule("restaurant_standard")},
	)
	fx.lineRepo.failCreate = true

	_, err := fx.uc.ConfirmMatch(context.Background(), resolution.ConfirmInput{
		ProductID:       "p1",
		Quantity:        decimal.NewFromInt(3),
		CustomerSegment: "restaurant_standard",
	})

	require.Error(t, err)
	assert.True(t, decimal.NewFromInt(5).Equal(fx.lotRepo.lots["a"].Available),
		"el disponible vuelve tras liberar la reserva")
}

// El faltante de stock no bloquea la confirmación: la línea sale con
// procurement_needed y el faltante visible para compras.
func TestConfirmMatch_ConFaltante(t *testing.T) {
	fx := newConfirmFixture(
		[]entity.CatalogEntry{entry("p1", "Tomatoes", "kg", "20")},
		[]entity.StockLot{kgLot("a", "p1", "2")},
		[]entity.PricingRule{volatileRule("restaurant_standard")},
	)

	line, err := fx.uc.ConfirmMatch(context.Background(), resolution.ConfirmInput{
		ProductID:       "p1",
		Quantity:        decimal.NewFromInt(7),
		CustomerSegment: "restaurant_standard",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.FulfillProcurement, line.Method)
	assert.True(t, decimal.NewFromInt(5).Equal(line.Shortfall))
}

func TestVoid_RevierteLineaYReserva(t *testing.T) {
	fx := newConfirmFixture(
		[]entity.CatalogEntry{entry("p1", "Tomatoes", "kg", "20")},
		[]entity.StockLot{kgLot("a", "p1", "5")},
		[]entity.PricingRule{volatileRule("restaurant_standard")},
	)

	line, err := fx.uc.ConfirmMatch(context.Background(), resolution.ConfirmInput{
		ProductID:       "p1",
		Quantity:        decimal.NewFromInt(3),
		CustomerSegment: "restaurant_standard",
	})
	require.NoError(t, err)

	require.NoError(t, fx.uc.Void(context.Background(), line.ID))

	stored, _ := fx.lineRepo.GetByID(context.Background(), line.ID)
	assert.Equal(t, entity.OrderLineVoided, stored.Status)
	assert.True(t, decimal.NewFromInt(5).Equal(fx.lotRepo.lots["a"].Available),
		"anular devuelve el stock reservado")

	// una línea ya anulada no puede anularse otra vez
	assert.ErrorIs(t, fx.uc.Void(context.Background(), line.ID), domain.ErrConflict)
}

func TestVoid_LineaInexistente(t *testing.T) {
	fx := newConfirmFixture(nil, nil, nil)

	assert.ErrorIs(t, fx.uc.Void(context.Background(), "ghost"), domain.ErrNotFound)
}
