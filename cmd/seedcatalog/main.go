package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/infrastructure/postgres"
	"github.com/JBeggs/fambrifarms-backend-sub000/pkg/config"
)

// Carga de demostración: catálogo de finca, lotes de stock y reglas de
// precios por segmento. Idempotente a nivel de nombre: las entradas
// duplicadas se saltan.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("cargar configuración: %v", err)
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatalf("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	catalogRepo := postgres.NewCatalogRepository(pool)
	lotRepo := postgres.NewStockLotRepository(pool)
	pricingRepo := postgres.NewPricingRuleRepository(pool)

	type seedEntry struct {
		name  string
		unit  string
		price string
		lots  []string // cantidades disponibles, en la unidad de venta
	}
	entries := []seedEntry{
		{"Rosemary (200g packet)", "packet", "18.50", []string{"40"}},
		{"Thyme (100g packet)", "packet", "15.00", []string{"25"}},
		{"Tomatoes", "kg", "22.00", []string{"2", "5"}},
		{"Cherry Tomatoes", "punnet", "28.00", []string{"30"}},
		{"Cocktail Tomatoes", "punnet", "26.50", []string{"18"}},
		{"Broccoli", "head", "16.00", []string{"50"}},
		{"Cauliflower", "head", "17.50", []string{"35"}},
		{"Aubergine (box)", "box", "95.00", []string{"12"}},
		{"Coriander (bunch)", "bunch", "9.50", []string{"60"}},
		{"Rocket (200g)", "packet", "21.00", []string{"22"}},
		{"Avocados (soft)", "box", "120.00", []string{"8"}},
		{"Sweet Corn", "each", "6.00", []string{"200"}},
		{"Carrots (10kg bag)", "bag", "78.00", []string{"15"}},
		{"Red Onions", "kg", "19.00", []string{"3", "40"}},
	}

	now := time.Now()
	created := 0
	for _, s := range entries {
		price, err := decimal.NewFromString(s.price)
		if err != nil {
			log.Fatalf("precio inválido %q: %v", s.price, err)
		}
		e := &entity.CatalogEntry{
			ID:        uuid.New().String(),
			Name:      s.name,
			Unit:      s.unit,
			BasePrice: price,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := catalogRepo.Create(ctx, e); err != nil {
			log.Printf("saltando %q: %v", s.name, err)
			continue
		}
		for _, q := range s.lots {
			qty, err := decimal.NewFromString(q)
			if err != nil {
				log.Fatalf("cantidad inválida %q: %v", q, err)
			}
			lot := &entity.StockLot{
				ID:        uuid.New().String(),
				ProductID: e.ID,
				Available: qty,
				Reserved:  decimal.Zero,
				Unit:      s.unit,
				UpdatedAt: now,
			}
			if err := lotRepo.Create(ctx, lot); err != nil {
				log.Fatalf("crear lote de %q: %v", s.name, err)
			}
		}
		created++
	}

	rules := []entity.PricingRule{
		{
			CustomerSegment:         "restaurant_standard",
			Volatility:              entity.VolatilityVolatile,
			BaseMarkupPct:           decimal.NewFromInt(25),
			VolatilityAdjustmentPct: decimal.NewFromInt(10),
			CategoryAdjustmentPct:   decimal.Zero,
			MinimumMarginPct:        decimal.NewFromInt(15),
			TrendMultiplier:         decimal.NewFromInt(1),
		},
		{
			CustomerSegment:         "restaurant_premium",
			Volatility:              entity.VolatilityStable,
			BaseMarkupPct:           decimal.NewFromInt(35),
			VolatilityAdjustmentPct: decimal.Zero,
			CategoryAdjustmentPct:   decimal.NewFromInt(5),
			MinimumMarginPct:        decimal.NewFromInt(20),
			TrendMultiplier:         decimal.NewFromInt(1),
		},
		{
			CustomerSegment:         "wholesale",
			Volatility:              entity.VolatilityStable,
			BaseMarkupPct:           decimal.NewFromInt(12),
			VolatilityAdjustmentPct: decimal.Zero,
			CategoryAdjustmentPct:   decimal.Zero,
			MinimumMarginPct:        decimal.NewFromInt(8),
			TrendMultiplier:         decimal.NewFromInt(1),
		},
	}
	for i := range rules {
		if err := pricingRepo.Upsert(ctx, &rules[i]); err != nil {
			log.Fatalf("upsert regla %q: %v", rules[i].CustomerSegment, err)
		}
	}

	log.Printf("seed completado: %d entradas de catálogo, %d reglas de precios", created, len(rules))
}
