package domain

// Producto is one catalog product as returned by the Che Súper API
type Producto struct {
	EAN       string `json:"ean"`
	Nombre    string `json:"nombre"`
	Marca     string `json:"marca"`
	ImagenURL string `json:"imagen_url"`
}

// ProductPage is one page of catalog results
type ProductPage struct {
	TotalProductosDisponibles int        `json:"total_productos_disponibles"`
	Productos                 []Producto `json:"productos"`
}

// ProductQuery holds the filters for a catalog request.
// Zero-valued optional fields are omitted from the request.
type ProductQuery struct {
	Page             int
	Query            string
	Categoria        string
	MinSupermercados int
	Limit            int
}
