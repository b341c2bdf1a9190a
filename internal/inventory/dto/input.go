package dto

// BinAllocationInput is one (bin, quantity) slice of a line request. BinID is
// kept verbatim: it is the storage key for book_bins and bins rows.
type BinAllocationInput struct {
	BinID    string `json:"binId"`
	Quantity int    `json:"quantity"`
}

// AllocateLineInput is the allocation request for one book in an order.
type AllocateLineInput struct {
	BookID    int                  `json:"productId"`
	Quantity  int                  `json:"quantity"`
	UnitPrice float64              `json:"unitPrice"`
	Note      string               `json:"note"`
	Bins      []BinAllocationInput `json:"bins"`
}
