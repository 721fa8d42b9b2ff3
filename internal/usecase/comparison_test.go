package usecase

import (
	"reflect"
	"testing"

	"github.com/chesuper/engine/internal/domain"
)

func promo(v float64) *float64 {
	return &v
}

// fixtureComparison builds the cached pair used across recompute tests:
// three stores whose relative order flips between pricing modes, plus a
// two-basket optimization plan.
func fixtureComparison() (*domain.ComparisonResult, *domain.OptimizationResult) {
	comparison := &domain.ComparisonResult{
		PromoInicialActivada: false,
		Comparativa: []domain.ComparisonEntry{
			{
				Bandera:          "Coto",
				TotalInicial:     200,
				ItemsEncontrados: 1,
				Detalle: []domain.DetalleItem{
					{EAN: "1", Nombre: "Leche", Quantity: 2, PrecioLista: 100, PrecioPromoA: promo(80)},
				},
			},
			{
				Bandera:          "Carrefour",
				TotalInicial:     190,
				ItemsEncontrados: 1,
				Detalle: []domain.DetalleItem{
					{EAN: "1", Nombre: "Leche", Quantity: 2, PrecioLista: 95, PrecioPromoA: nil},
				},
			},
			{
				Bandera:          "La Gallega",
				ItemsEncontrados: 0,
				ItemsFaltantes:   1,
				NoEncontrados:    []domain.MissingItem{{Nombre: "Leche"}},
			},
		},
	}

	optimization := &domain.OptimizationResult{
		TotalOptimizado: 230,
		Canastas: []domain.Canasta{
			{
				Bandera:      "Coto",
				TotalCanasta: 200,
				Detalle: []domain.DetalleItem{
					{EAN: "1", Nombre: "Leche", Quantity: 2, PrecioLista: 100, PrecioPromoA: promo(80)},
				},
			},
			{
				Bandera:      "Carrefour",
				TotalCanasta: 30,
				Detalle: []domain.DetalleItem{
					{EAN: "2", Nombre: "Pan", Quantity: 1, PrecioLista: 30, PrecioPromoA: nil},
				},
			},
		},
	}

	return comparison, optimization
}

func storeTotal(t *testing.T, d *Derived, bandera string) float64 {
	t.Helper()
	for _, st := range d.Stores {
		if st.Bandera == bandera {
			return st.Total
		}
	}
	t.Fatalf("store %q not in derived output", bandera)
	return 0
}

func TestRecompute(t *testing.T) {
	t.Run("nil while unpopulated", func(t *testing.T) {
		c := NewComparisonCache()
		if d := c.Recompute(true); d != nil {
			t.Errorf("Recompute() = %+v, want nil", d)
		}
	})

	t.Run("list vs promo totals", func(t *testing.T) {
		c := NewComparisonCache()
		c.Set(fixtureComparison())

		withoutPromos := c.Recompute(false)
		if got := storeTotal(t, withoutPromos, "Coto"); got != 200 {
			t.Errorf("Coto total without promos = %v, want 200", got)
		}

		withPromos := c.Recompute(true)
		if got := storeTotal(t, withPromos, "Coto"); got != 160 {
			t.Errorf("Coto total with promos = %v, want 160", got)
		}
	})

	t.Run("nil promo always falls back to list price", func(t *testing.T) {
		c := NewComparisonCache()
		c.Set(fixtureComparison())

		for _, usePromos := range []bool{false, true} {
			d := c.Recompute(usePromos)
			if got := storeTotal(t, d, "Carrefour"); got != 190 {
				t.Errorf("Carrefour total (usePromos=%v) = %v, want 190", usePromos, got)
			}
		}
	})

	t.Run("ordering is cheapest first and flips with the mode", func(t *testing.T) {
		c := NewComparisonCache()
		c.Set(fixtureComparison())

		// La Gallega matched nothing: total 0, always first.
		withoutPromos := c.Recompute(false)
		wantOrder := []string{"La Gallega", "Carrefour", "Coto"}
		for i, bandera := range wantOrder {
			if withoutPromos.Stores[i].Bandera != bandera {
				t.Errorf("Stores[%d] = %q, want %q", i, withoutPromos.Stores[i].Bandera, bandera)
			}
		}

		withPromos := c.Recompute(true)
		wantOrder = []string{"La Gallega", "Coto", "Carrefour"}
		for i, bandera := range wantOrder {
			if withPromos.Stores[i].Bandera != bandera {
				t.Errorf("Stores[%d] = %q, want %q", i, withPromos.Stores[i].Bandera, bandera)
			}
		}
	})

	t.Run("both modes order the same store set", func(t *testing.T) {
		c := NewComparisonCache()
		c.Set(fixtureComparison())

		names := func(d *Derived) map[string]bool {
			set := map[string]bool{}
			for _, st := range d.Stores {
				set[st.Bandera] = true
			}
			return set
		}
		if !reflect.DeepEqual(names(c.Recompute(false)), names(c.Recompute(true))) {
			t.Error("store sets differ between pricing modes")
		}
	})

	t.Run("ties keep original response order", func(t *testing.T) {
		c := NewComparisonCache()
		c.Set(&domain.ComparisonResult{
			Comparativa: []domain.ComparisonEntry{
				{Bandera: "Jumbo", Detalle: []domain.DetalleItem{{EAN: "1", Quantity: 1, PrecioLista: 50}}},
				{Bandera: "Libertad", Detalle: []domain.DetalleItem{{EAN: "1", Quantity: 1, PrecioLista: 50}}},
			},
		}, nil)

		d := c.Recompute(false)
		if d.Stores[0].Bandera != "Jumbo" || d.Stores[1].Bandera != "Libertad" {
			t.Errorf("tie order = [%s %s], want [Jumbo Libertad]", d.Stores[0].Bandera, d.Stores[1].Bandera)
		}
	})

	t.Run("idempotent for a fixed mode", func(t *testing.T) {
		c := NewComparisonCache()
		c.Set(fixtureComparison())

		first := c.Recompute(true)
		second := c.Recompute(true)
		if !reflect.DeepEqual(first, second) {
			t.Error("consecutive Recompute(true) outputs differ")
		}
	})

	t.Run("does not mutate the cached payloads", func(t *testing.T) {
		comparison, optimization := fixtureComparison()
		c := NewComparisonCache()
		c.Set(comparison, optimization)

		c.Recompute(true)
		c.Recompute(false)

		if comparison.Comparativa[0].Detalle[0].PrecioLista != 100 {
			t.Error("precio_lista mutated")
		}
		if *comparison.Comparativa[0].Detalle[0].PrecioPromoA != 80 {
			t.Error("precio_promo_a mutated")
		}
		if comparison.Comparativa[0].TotalInicial != 200 {
			t.Error("total_inicial mutated")
		}
	})

	t.Run("optimization totals", func(t *testing.T) {
		c := NewComparisonCache()
		c.Set(fixtureComparison())

		withoutPromos := c.Recompute(false)
		if !withoutPromos.HasOptimization {
			t.Fatal("HasOptimization = false")
		}
		if withoutPromos.TotalOptimizado != 230 {
			t.Errorf("TotalOptimizado without promos = %v, want 230", withoutPromos.TotalOptimizado)
		}

		withPromos := c.Recompute(true)
		// Coto basket drops to 160, Carrefour basket stays at 30.
		if withPromos.TotalOptimizado != 190 {
			t.Errorf("TotalOptimizado with promos = %v, want 190", withPromos.TotalOptimizado)
		}
		if withPromos.Baskets[0].Total != 160 {
			t.Errorf("Baskets[0].Total = %v, want 160", withPromos.Baskets[0].Total)
		}
	})

	t.Run("missing optimization yields no baskets", func(t *testing.T) {
		comparison, _ := fixtureComparison()
		c := NewComparisonCache()
		c.Set(comparison, nil)

		d := c.Recompute(false)
		if d.HasOptimization || len(d.Baskets) != 0 || d.TotalOptimizado != 0 {
			t.Errorf("derived optimization = %+v, want empty", d)
		}
	})
}

func TestComparisonCacheLifecycle(t *testing.T) {
	c := NewComparisonCache()

	if c.Populated() {
		t.Error("new cache reports populated")
	}

	comparison, optimization := fixtureComparison()
	comparison.PromoInicialActivada = true
	c.Set(comparison, optimization)

	if !c.Populated() {
		t.Error("cache not populated after Set")
	}
	if !c.InitialPromo() {
		t.Error("InitialPromo() = false, want true")
	}

	if _, ok := c.Entry("Coto"); !ok {
		t.Error("Entry(Coto) not found")
	}
	if _, ok := c.Entry("Dia"); ok {
		t.Error("Entry(Dia) unexpectedly found")
	}

	c.Clear()
	if c.Populated() {
		t.Error("cache populated after Clear")
	}
	if d := c.Recompute(true); d != nil {
		t.Error("Recompute after Clear should be nil")
	}
}
