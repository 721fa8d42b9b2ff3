package domain

// CartLine is one product entry in the shopping cart, keyed by EAN
type CartLine struct {
	EAN      string `json:"ean"`
	Nombre   string `json:"nombre"`
	Marca    string `json:"marca"`
	Quantity int    `json:"quantity"`
}

// CartItemRef is the slim cart item shape sent to the comparison services
type CartItemRef struct {
	EAN      string `json:"ean"`
	Quantity int    `json:"quantity"`
}

// CartTotals summarizes the cart for the summary panel
type CartTotals struct {
	DistinctProducts int `json:"distinctProducts"`
	TotalUnits       int `json:"totalUnits"`
}
