package domain

// QuoteLine is one cart line repriced against the current catalog.
type QuoteLine struct {
	ItemID    string  `json:"itemId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
}

// Quote is a priced summary of the whole cart.
type Quote struct {
	Lines      []QuoteLine `json:"lines"`
	TotalItems int         `json:"totalItems"`
	TotalPrice float64     `json:"totalPrice"`
}
