package usecase

import "github.com/chesuper/engine/internal/domain"

// ViewState is the complete derived state of the rendering surface. It is
// rebuilt on demand from the cart store, the last applied catalog page and
// the recomputed comparison totals; the delivery layer serves it verbatim.
type ViewState struct {
	Cart    CartView     `json:"cart"`
	Catalog *CatalogView `json:"catalog,omitempty"`
	Results *Derived     `json:"results,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// CartView is the cart panel: lines in display order plus the summary
type CartView struct {
	Lines      []domain.CartLine `json:"lines"`
	Totals     domain.CartTotals `json:"totals"`
	CanCompare bool              `json:"canCompare"`
}

// CatalogView is the current product listing with cart quantities overlaid
type CatalogView struct {
	Query          string        `json:"q,omitempty"`
	Categoria      string        `json:"categoria,omitempty"`
	TotalAvailable int           `json:"totalProductosDisponibles"`
	Products       []ProductView `json:"products"`
}

// ProductView is one catalog product plus its live cart quantity
type ProductView struct {
	domain.Producto
	Quantity int `json:"quantity"`
}

// buildCatalogView overlays the current cart quantities on a raw catalog
// page. The overlay is computed at read time, so quantity-only cart changes
// never require a new catalog query.
func buildCatalogView(page *domain.ProductPage, query domain.ProductQuery, quantity func(ean string) int) *CatalogView {
	if page == nil {
		return nil
	}
	view := &CatalogView{
		Query:          query.Query,
		Categoria:      query.Categoria,
		TotalAvailable: page.TotalProductosDisponibles,
		Products:       make([]ProductView, len(page.Productos)),
	}
	for i, p := range page.Productos {
		view.Products[i] = ProductView{Producto: p, Quantity: quantity(p.EAN)}
	}
	return view
}
