package dto

import "github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"

type StockFilters struct {
	BookID   int
	LowStock bool // quantity <= min_stock
	Page     int
	PageSize int
}

// BinStockRow is the per-book breakdown of one bin, with the display code
// alongside the raw storage key.
type BinStockRow struct {
	model.BookBin
	BinCode string `json:"bin_code"`
}

type BinDetail struct {
	Bin    model.Bin     `json:"bin"`
	Stocks []BinStockRow `json:"stocks"`
}
