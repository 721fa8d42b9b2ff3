package domain

// ComparisonRequest is the body sent to /api/comparar and /api/optimizar
type ComparisonRequest struct {
	Items     []CartItemRef `json:"items"`
	UsePromos bool          `json:"use_promos"`
}

// DetalleItem is one matched cart line inside a store result or basket.
// Quantity is the cart quantity frozen at request time; PrecioPromoA is nil
// when the store has no promotional price for the product.
type DetalleItem struct {
	EAN          string   `json:"ean"`
	Nombre       string   `json:"nombre"`
	Quantity     int      `json:"quantity"`
	PrecioLista  float64  `json:"precio_lista"`
	PrecioPromoA *float64 `json:"precio_promo_a"`
}

// MissingItem is a cart product the store does not carry
type MissingItem struct {
	Nombre string `json:"nombre"`
}

// ComparisonEntry is one supermarket's result for the compared cart
type ComparisonEntry struct {
	Bandera          string        `json:"bandera"`
	TotalInicial     float64       `json:"total_inicial"`
	ItemsEncontrados int           `json:"items_encontrados"`
	ItemsFaltantes   int           `json:"items_faltantes"`
	Detalle          []DetalleItem `json:"detalle"`
	NoEncontrados    []MissingItem `json:"no_encontrados"`
}

// ComparisonResult is the full /api/comparar payload. PromoInicialActivada
// records the pricing mode the server priced TotalInicial with.
type ComparisonResult struct {
	Comparativa          []ComparisonEntry `json:"comparativa"`
	PromoInicialActivada bool              `json:"promo_inicial_activada"`
}

// Canasta is one store-scoped basket of the optimized purchase plan
type Canasta struct {
	Bandera      string        `json:"bandera"`
	TotalCanasta float64       `json:"total_canasta"`
	Detalle      []DetalleItem `json:"detalle"`
}

// OptimizationResult is the full /api/optimizar payload. Each cart item
// appears in exactly one basket; that partition is the server's invariant
// and is trusted, not verified, here.
type OptimizationResult struct {
	TotalOptimizado float64   `json:"total_optimizado"`
	Canastas        []Canasta `json:"canastas"`
}
