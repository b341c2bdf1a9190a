package usecase

import (
	"context"
	"sort"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/apperrors"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/inventory"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/inventory/dto"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/pkg/logger"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type inventoryUseCase struct {
	repo   inventory.Repository
	logger logger.ZapLogger
}

func NewInventoryUseCase(repo inventory.Repository, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		logger: log,
	}
}

type binRequest struct {
	bookID   int
	binID    string
	quantity int
}

// Allocate validates every line and bin of the request under row locks, and
// only then applies the paired decrements (book_bins + bins + stocks) and
// writes the export_order_bins / export_order_details rows. Validation order:
// input shape, then bin-level sufficiency, then aggregate sufficiency. No
// mutation happens until everything has passed.
func (uc *inventoryUseCase) Allocate(ctx context.Context, tx *sqlx.Tx, orderID int, lines []dto.AllocateLineInput) error {
	if len(lines) == 0 {
		return apperrors.New(apperrors.KindValidation, "order has no items")
	}

	requests, totals, err := validateLines(lines)
	if err != nil {
		return err
	}

	// Lock bin rows before checking sufficiency so a concurrent allocator of
	// the same (book, bin) pair serializes here and re-reads the committed
	// value. Deterministic lock order avoids deadlock between two orders.
	sort.Slice(requests, func(i, j int) bool {
		if requests[i].bookID != requests[j].bookID {
			return requests[i].bookID < requests[j].bookID
		}
		return requests[i].binID < requests[j].binID
	})

	lockedBins := map[string]bool{}
	for _, req := range requests {
		if !lockedBins[req.binID] {
			bin, err := uc.repo.GetBinForUpdate(ctx, tx, req.binID)
			if err != nil {
				return err
			}
			if bin == nil {
				return apperrors.Newf(apperrors.KindNotFound, "bin %s not found", req.binID)
			}
			lockedBins[req.binID] = true
		}

		bookBin, err := uc.repo.GetBookBinForUpdate(ctx, tx, req.bookID, req.binID)
		if err != nil {
			return err
		}
		if bookBin == nil {
			return apperrors.Newf(apperrors.KindNotFound,
				"book %d has no stock record in bin %s", req.bookID, req.binID)
		}
		if bookBin.Quantity < req.quantity {
			return apperrors.Newf(apperrors.KindInsufficientBinStock,
				"insufficient stock in bin %s for book %d: available %d, requested %d",
				req.binID, req.bookID, bookBin.Quantity, req.quantity)
		}
	}

	bookIDs := make([]int, 0, len(totals))
	for bookID := range totals {
		bookIDs = append(bookIDs, bookID)
	}
	sort.Ints(bookIDs)

	for _, bookID := range bookIDs {
		stock, err := uc.repo.GetStockForUpdate(ctx, tx, bookID)
		if err != nil {
			return err
		}
		if stock == nil {
			return apperrors.Newf(apperrors.KindNotFound, "no aggregate stock for book %d", bookID)
		}
		if stock.Quantity < totals[bookID] {
			return apperrors.Newf(apperrors.KindInsufficientAggregateStock,
				"insufficient aggregate stock for book %d: available %d, requested %d",
				bookID, stock.Quantity, totals[bookID])
		}
	}

	// All checks passed; begin mutation. A failure from here on aborts the
	// caller's transaction, so nothing is ever half applied.
	for _, line := range lines {
		for _, bin := range line.Bins {
			if err := uc.repo.AdjustBookBin(ctx, tx, line.BookID, bin.BinID, -bin.Quantity); err != nil {
				return err
			}
			if err := uc.repo.AdjustBinQuantity(ctx, tx, bin.BinID, -bin.Quantity); err != nil {
				return err
			}
			if err := uc.repo.CreateOrderBin(ctx, tx, &model.ExportOrderBin{
				ExportOrderID: orderID,
				BookID:        line.BookID,
				BinID:         bin.BinID,
				Quantity:      bin.Quantity,
			}); err != nil {
				return err
			}
		}

		if err := uc.repo.AdjustStock(ctx, tx, line.BookID, -line.Quantity); err != nil {
			return err
		}

		note := (*string)(nil)
		if line.Note != "" {
			n := line.Note
			note = &n
		}
		if err := uc.repo.CreateOrderDetail(ctx, tx, &model.ExportOrderDetail{
			ExportOrderID: orderID,
			BookID:        line.BookID,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			Note:          note,
		}); err != nil {
			return err
		}
	}

	uc.logger.Debug("allocated export order inventory",
		zap.Int("order_id", orderID), zap.Int("lines", len(lines)))
	return nil
}

// Reverse restores every counter touched by the order's allocations:
// book_bins rows get their quantity back (recreated if the row was removed
// in the meantime), bins and stocks are incremented by the same amounts.
// Callers invoke it at most once per allocation set and normally delete the
// export_order_bins rows right after. Bin capacity is intentionally not
// re-checked here: returned stock goes back to the bin it came from even if
// the bin was refilled past its stated maximum since the allocation.
func (uc *inventoryUseCase) Reverse(ctx context.Context, tx *sqlx.Tx, orderID int) error {
	rows, err := uc.repo.ListOrderBins(ctx, tx, orderID)
	if err != nil {
		return err
	}

	totals := map[int]int{}
	for _, row := range rows {
		if err := uc.repo.UpsertBookBin(ctx, tx, row.BookID, row.BinID, row.Quantity); err != nil {
			return err
		}
		if err := uc.repo.AdjustBinQuantity(ctx, tx, row.BinID, row.Quantity); err != nil {
			return err
		}
		totals[row.BookID] += row.Quantity
	}

	bookIDs := make([]int, 0, len(totals))
	for bookID := range totals {
		bookIDs = append(bookIDs, bookID)
	}
	sort.Ints(bookIDs)

	for _, bookID := range bookIDs {
		if err := uc.repo.AdjustStock(ctx, tx, bookID, totals[bookID]); err != nil {
			return err
		}
	}

	uc.logger.Debug("reversed export order inventory",
		zap.Int("order_id", orderID), zap.Int("allocations", len(rows)))
	return nil
}

// validateLines checks the request shape: positive quantities and prices, one
// line per book, one slice per (book, bin), bin identifiers that resolve, and
// per-line bin quantities summing to the line quantity. It returns the flat
// (book, bin) requests and the per-book totals.
func validateLines(lines []dto.AllocateLineInput) ([]binRequest, map[int]int, error) {
	requests := make([]binRequest, 0, len(lines))
	totals := make(map[int]int, len(lines))
	seenBooks := map[int]bool{}

	for _, line := range lines {
		if line.BookID <= 0 {
			return nil, nil, apperrors.New(apperrors.KindValidation, "item is missing a book id")
		}
		if seenBooks[line.BookID] {
			return nil, nil, apperrors.Newf(apperrors.KindValidation,
				"book %d appears in more than one item", line.BookID)
		}
		seenBooks[line.BookID] = true

		if line.Quantity <= 0 {
			return nil, nil, apperrors.Newf(apperrors.KindValidation,
				"quantity for book %d must be positive", line.BookID)
		}
		if line.UnitPrice <= 0 {
			return nil, nil, apperrors.Newf(apperrors.KindValidation,
				"price for book %d must be positive", line.BookID)
		}
		if len(line.Bins) == 0 {
			return nil, nil, apperrors.Newf(apperrors.KindValidation,
				"item for book %d has no bin source", line.BookID)
		}

		seenBins := map[string]bool{}
		binSum := 0
		for _, bin := range line.Bins {
			if _, err := inventory.ResolveBinKey(bin.BinID); err != nil {
				return nil, nil, err
			}
			if seenBins[bin.BinID] {
				return nil, nil, apperrors.Newf(apperrors.KindValidation,
					"bin %s listed twice for book %d", bin.BinID, line.BookID)
			}
			seenBins[bin.BinID] = true

			if bin.Quantity <= 0 {
				return nil, nil, apperrors.Newf(apperrors.KindValidation,
					"bin %s quantity for book %d must be positive", bin.BinID, line.BookID)
			}
			binSum += bin.Quantity
			requests = append(requests, binRequest{
				bookID:   line.BookID,
				binID:    bin.BinID,
				quantity: bin.Quantity,
			})
		}

		if binSum != line.Quantity {
			return nil, nil, apperrors.Newf(apperrors.KindValidation,
				"bin quantities for book %d sum to %d, expected %d", line.BookID, binSum, line.Quantity)
		}
		totals[line.BookID] = line.Quantity
	}

	return requests, totals, nil
}

func (uc *inventoryUseCase) ListBins(ctx context.Context) ([]model.Bin, error) {
	return uc.repo.ListBins(ctx)
}

func (uc *inventoryUseCase) GetBinDetail(ctx context.Context, binID string) (*dto.BinDetail, error) {
	bin, err := uc.repo.GetBin(ctx, binID)
	if err != nil {
		return nil, err
	}
	if bin == nil {
		return nil, apperrors.Newf(apperrors.KindNotFound, "bin %s not found", binID)
	}

	rows, err := uc.repo.ListBinStocks(ctx, binID)
	if err != nil {
		return nil, err
	}

	stocks := make([]dto.BinStockRow, 0, len(rows))
	for _, row := range rows {
		code := row.BinID
		if canonical, err := inventory.ResolveBinKey(row.BinID); err == nil {
			code = inventory.FormatBinCode(canonical)
		}
		stocks = append(stocks, dto.BinStockRow{BookBin: row, BinCode: code})
	}

	return &dto.BinDetail{Bin: *bin, Stocks: stocks}, nil
}

func (uc *inventoryUseCase) ListStocks(ctx context.Context, filters *dto.StockFilters) ([]model.Stock, int, error) {
	return uc.repo.ListStocks(ctx, filters)
}

func (uc *inventoryUseCase) GetStock(ctx context.Context, bookID int) (*model.Stock, error) {
	stock, err := uc.repo.GetStock(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, apperrors.Newf(apperrors.KindNotFound, "no aggregate stock for book %d", bookID)
	}
	return stock, nil
}
