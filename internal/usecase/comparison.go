package usecase

import (
	"sort"

	"github.com/chesuper/engine/internal/domain"
)

// ComparisonCache holds the most recent comparison/optimization response
// pair. It is replaced wholesale on every successful compare and cleared
// when the user leaves the results view; while empty, pricing-mode toggles
// are no-ops.
type ComparisonCache struct {
	comparison   *domain.ComparisonResult
	optimization *domain.OptimizationResult
	initialPromo bool
}

// NewComparisonCache creates an empty cache
func NewComparisonCache() *ComparisonCache {
	return &ComparisonCache{}
}

// Set replaces the cached pair, capturing the pricing mode the server used
// for the initial totals
func (c *ComparisonCache) Set(comparison *domain.ComparisonResult, optimization *domain.OptimizationResult) {
	c.comparison = comparison
	c.optimization = optimization
	if comparison != nil {
		c.initialPromo = comparison.PromoInicialActivada
	}
}

// Clear drops the cached pair
func (c *ComparisonCache) Clear() {
	c.comparison = nil
	c.optimization = nil
	c.initialPromo = false
}

// Populated reports whether a comparison has been cached
func (c *ComparisonCache) Populated() bool {
	return c.comparison != nil
}

// InitialPromo returns the pricing mode that produced the initial render
func (c *ComparisonCache) InitialPromo() bool {
	return c.initialPromo
}

// Entry returns the cached comparison entry for a store name
func (c *ComparisonCache) Entry(bandera string) (domain.ComparisonEntry, bool) {
	if c.comparison == nil {
		return domain.ComparisonEntry{}, false
	}
	for _, entry := range c.comparison.Comparativa {
		if entry.Bandera == bandera {
			return entry, true
		}
	}
	return domain.ComparisonEntry{}, false
}

// LineCost is one detail line priced under a pricing mode
type LineCost struct {
	EAN       string  `json:"ean"`
	Nombre    string  `json:"nombre"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Cost      float64 `json:"cost"`
}

// StoreTotals is one store's recomputed comparison card
type StoreTotals struct {
	Bandera          string               `json:"bandera"`
	Total            float64              `json:"total"`
	ItemsEncontrados int                  `json:"itemsEncontrados"`
	ItemsFaltantes   int                  `json:"itemsFaltantes"`
	Lines            []LineCost           `json:"lines"`
	NoEncontrados    []domain.MissingItem `json:"noEncontrados"`
}

// BasketTotals is one optimization basket's recomputed totals
type BasketTotals struct {
	Bandera string     `json:"bandera"`
	Total   float64    `json:"total"`
	Lines   []LineCost `json:"lines"`
}

// Derived is the network-free recomputation output: every displayed total
// and the cheapest-first store ordering under one pricing mode
type Derived struct {
	UsePromos       bool           `json:"usePromos"`
	Stores          []StoreTotals  `json:"stores"`
	Baskets         []BasketTotals `json:"baskets"`
	TotalOptimizado float64        `json:"totalOptimizado"`
	HasOptimization bool           `json:"hasOptimization"`
}

// Recompute re-derives all totals and the store ordering from the cached
// payloads under the given pricing mode. It is pure with respect to the
// cache: the raw detalle and price fields are never mutated, and repeated
// calls with the same flag yield identical output. Returns nil while the
// cache is unpopulated.
func (c *ComparisonCache) Recompute(usePromos bool) *Derived {
	if c.comparison == nil {
		return nil
	}

	d := &Derived{
		UsePromos: usePromos,
		Stores:    make([]StoreTotals, 0, len(c.comparison.Comparativa)),
	}

	for _, entry := range c.comparison.Comparativa {
		st := StoreTotals{
			Bandera:          entry.Bandera,
			ItemsEncontrados: entry.ItemsEncontrados,
			ItemsFaltantes:   entry.ItemsFaltantes,
			Lines:            priceLines(entry.Detalle, usePromos),
			NoEncontrados:    entry.NoEncontrados,
		}
		for _, line := range st.Lines {
			st.Total += line.Cost
		}
		d.Stores = append(d.Stores, st)
	}

	// Cheapest first; ties keep the original response order.
	sort.SliceStable(d.Stores, func(i, j int) bool {
		return d.Stores[i].Total < d.Stores[j].Total
	})

	if c.optimization != nil {
		d.HasOptimization = len(c.optimization.Canastas) > 0
		d.Baskets = make([]BasketTotals, 0, len(c.optimization.Canastas))
		for _, canasta := range c.optimization.Canastas {
			bt := BasketTotals{
				Bandera: canasta.Bandera,
				Lines:   priceLines(canasta.Detalle, usePromos),
			}
			for _, line := range bt.Lines {
				bt.Total += line.Cost
			}
			d.Baskets = append(d.Baskets, bt)
			d.TotalOptimizado += bt.Total
		}
	}

	return d
}

// effectiveUnitPrice selects the promotional price only when the mode asks
// for it and the store actually has one; a nil promo always falls back to
// the list price
func effectiveUnitPrice(item domain.DetalleItem, usePromos bool) float64 {
	if usePromos && item.PrecioPromoA != nil {
		return *item.PrecioPromoA
	}
	return item.PrecioLista
}

// priceLines prices each detail line under the pricing mode, using the
// quantity snapshotted into the detalle at request time
func priceLines(detalle []domain.DetalleItem, usePromos bool) []LineCost {
	lines := make([]LineCost, len(detalle))
	for i, item := range detalle {
		unit := effectiveUnitPrice(item, usePromos)
		lines[i] = LineCost{
			EAN:       item.EAN,
			Nombre:    item.Nombre,
			Quantity:  item.Quantity,
			UnitPrice: unit,
			Cost:      unit * float64(item.Quantity),
		}
	}
	return lines
}
