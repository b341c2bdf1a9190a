package inventory

import (
	"context"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/inventory/dto"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"
	"github.com/jmoiron/sqlx"
)

// UseCase is the allocation engine plus the warehouse read operations.
// Allocate and Reverse run entirely inside the caller's transaction: any
// failure after mutation starts rolls the whole batch back with the caller.
type UseCase interface {
	Allocate(ctx context.Context, tx *sqlx.Tx, orderID int, lines []dto.AllocateLineInput) error
	Reverse(ctx context.Context, tx *sqlx.Tx, orderID int) error

	ListBins(ctx context.Context) ([]model.Bin, error)
	GetBinDetail(ctx context.Context, binID string) (*dto.BinDetail, error)
	ListStocks(ctx context.Context, filters *dto.StockFilters) ([]model.Stock, int, error)
	GetStock(ctx context.Context, bookID int) (*model.Stock, error)
}
