package inventory

import (
	"context"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/inventory/dto"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"
	"github.com/jmoiron/sqlx"
)

// Repository is the transactional store for the three related counters: per
// (book, bin) quantity, per-bin current total, and per-book aggregate stock.
// Methods taking a *sqlx.Tx participate in the caller's transaction; the
// ForUpdate reads lock the row so sufficiency checks happen after the lock,
// not before. Bin keys are used exactly as supplied, never coerced.
type Repository interface {
	// Row-locked reads. A nil result means the row does not exist.
	GetBookBinForUpdate(ctx context.Context, tx *sqlx.Tx, bookID int, binID string) (*model.BookBin, error)
	GetBinForUpdate(ctx context.Context, tx *sqlx.Tx, binID string) (*model.Bin, error)
	GetStockForUpdate(ctx context.Context, tx *sqlx.Tx, bookID int) (*model.Stock, error)

	// Counter adjustments. Adjust* fail on a negative result instead of
	// clamping; UpsertBookBin recreates a deleted row on restore.
	AdjustBookBin(ctx context.Context, tx *sqlx.Tx, bookID int, binID string, delta int) error
	UpsertBookBin(ctx context.Context, tx *sqlx.Tx, bookID int, binID string, delta int) error
	AdjustBinQuantity(ctx context.Context, tx *sqlx.Tx, binID string, delta int) error
	AdjustStock(ctx context.Context, tx *sqlx.Tx, bookID int, delta int) error

	// Allocation bookkeeping written alongside the counter moves.
	CreateOrderDetail(ctx context.Context, tx *sqlx.Tx, detail *model.ExportOrderDetail) error
	CreateOrderBin(ctx context.Context, tx *sqlx.Tx, orderBin *model.ExportOrderBin) error
	ListOrderBins(ctx context.Context, tx *sqlx.Tx, orderID int) ([]model.ExportOrderBin, error)

	// Warehouse read screens.
	ListBins(ctx context.Context) ([]model.Bin, error)
	GetBin(ctx context.Context, binID string) (*model.Bin, error)
	ListBinStocks(ctx context.Context, binID string) ([]model.BookBin, error)
	ListStocks(ctx context.Context, filters *dto.StockFilters) ([]model.Stock, int, error)
	GetStock(ctx context.Context, bookID int) (*model.Stock, error)
}
