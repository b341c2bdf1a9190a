package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/apperrors"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/inventory"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/inventory/dto"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/pkg/logger"
	"github.com/jmoiron/sqlx"
)

// fakeRepo keeps the three counters in memory and applies the same
// fail-on-negative rules as the postgres implementation. Tests run the
// engine against it with a nil transaction.
type fakeRepo struct {
	bins     map[string]*model.Bin
	bookBins map[string]int
	stocks   map[int]*model.Stock

	orderBins    []model.ExportOrderBin
	orderDetails []model.ExportOrderDetail
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		bins:     map[string]*model.Bin{},
		bookBins: map[string]int{},
		stocks:   map[int]*model.Stock{},
	}
}

func bbKey(bookID int, binID string) string {
	return fmt.Sprintf("%d|%s", bookID, binID)
}

func (f *fakeRepo) addBin(binID string, current int) {
	f.bins[binID] = &model.Bin{ID: binID, Name: "Bin " + binID, MaxQuantity: 1000, CurrentQuantity: current}
}

func (f *fakeRepo) addBookBin(bookID int, binID string, qty int) {
	f.bookBins[bbKey(bookID, binID)] = qty
}

func (f *fakeRepo) addStock(bookID, qty int) {
	f.stocks[bookID] = &model.Stock{BookID: bookID, Quantity: qty}
}

func (f *fakeRepo) GetBookBinForUpdate(_ context.Context, _ *sqlx.Tx, bookID int, binID string) (*model.BookBin, error) {
	qty, ok := f.bookBins[bbKey(bookID, binID)]
	if !ok {
		return nil, nil
	}
	return &model.BookBin{BinID: binID, BookID: bookID, Quantity: qty}, nil
}

func (f *fakeRepo) GetBinForUpdate(_ context.Context, _ *sqlx.Tx, binID string) (*model.Bin, error) {
	bin, ok := f.bins[binID]
	if !ok {
		return nil, nil
	}
	return bin, nil
}

func (f *fakeRepo) GetStockForUpdate(_ context.Context, _ *sqlx.Tx, bookID int) (*model.Stock, error) {
	stock, ok := f.stocks[bookID]
	if !ok {
		return nil, nil
	}
	return stock, nil
}

func (f *fakeRepo) AdjustBookBin(_ context.Context, _ *sqlx.Tx, bookID int, binID string, delta int) error {
	key := bbKey(bookID, binID)
	qty, ok := f.bookBins[key]
	if !ok {
		return apperrors.Newf(apperrors.KindNotFound, "book %d has no stock record in bin %s", bookID, binID)
	}
	if qty+delta < 0 {
		return apperrors.Newf(apperrors.KindInsufficientBinStock,
			"insufficient stock in bin %s for book %d", binID, bookID)
	}
	f.bookBins[key] = qty + delta
	return nil
}

func (f *fakeRepo) UpsertBookBin(_ context.Context, _ *sqlx.Tx, bookID int, binID string, delta int) error {
	f.bookBins[bbKey(bookID, binID)] += delta
	return nil
}

func (f *fakeRepo) AdjustBinQuantity(_ context.Context, _ *sqlx.Tx, binID string, delta int) error {
	bin, ok := f.bins[binID]
	if !ok {
		return apperrors.Newf(apperrors.KindNotFound, "bin %s not found", binID)
	}
	if bin.CurrentQuantity+delta < 0 {
		return apperrors.Newf(apperrors.KindInsufficientBinStock, "bin %s would go negative", binID)
	}
	bin.CurrentQuantity += delta
	return nil
}

func (f *fakeRepo) AdjustStock(_ context.Context, _ *sqlx.Tx, bookID int, delta int) error {
	stock, ok := f.stocks[bookID]
	if !ok {
		return apperrors.Newf(apperrors.KindNotFound, "no aggregate stock for book %d", bookID)
	}
	if stock.Quantity+delta < 0 {
		return apperrors.Newf(apperrors.KindInsufficientAggregateStock,
			"aggregate stock for book %d would go negative", bookID)
	}
	stock.Quantity += delta
	return nil
}

func (f *fakeRepo) CreateOrderDetail(_ context.Context, _ *sqlx.Tx, detail *model.ExportOrderDetail) error {
	detail.ID = len(f.orderDetails) + 1
	f.orderDetails = append(f.orderDetails, *detail)
	return nil
}

func (f *fakeRepo) CreateOrderBin(_ context.Context, _ *sqlx.Tx, orderBin *model.ExportOrderBin) error {
	orderBin.ID = len(f.orderBins) + 1
	f.orderBins = append(f.orderBins, *orderBin)
	return nil
}

func (f *fakeRepo) ListOrderBins(_ context.Context, _ *sqlx.Tx, orderID int) ([]model.ExportOrderBin, error) {
	var rows []model.ExportOrderBin
	for _, row := range f.orderBins {
		if row.ExportOrderID == orderID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (f *fakeRepo) ListBins(_ context.Context) ([]model.Bin, error) {
	var bins []model.Bin
	for _, bin := range f.bins {
		bins = append(bins, *bin)
	}
	return bins, nil
}

func (f *fakeRepo) GetBin(_ context.Context, binID string) (*model.Bin, error) {
	bin, ok := f.bins[binID]
	if !ok {
		return nil, nil
	}
	return bin, nil
}

func (f *fakeRepo) ListBinStocks(_ context.Context, binID string) ([]model.BookBin, error) {
	var rows []model.BookBin
	for key, qty := range f.bookBins {
		var bookID int
		var id string
		fmt.Sscanf(key, "%d|%s", &bookID, &id)
		if id == binID {
			rows = append(rows, model.BookBin{BinID: id, BookID: bookID, Quantity: qty})
		}
	}
	return rows, nil
}

func (f *fakeRepo) ListStocks(_ context.Context, _ *dto.StockFilters) ([]model.Stock, int, error) {
	var stocks []model.Stock
	for _, s := range f.stocks {
		stocks = append(stocks, *s)
	}
	return stocks, len(stocks), nil
}

func (f *fakeRepo) GetStock(_ context.Context, bookID int) (*model.Stock, error) {
	stock, ok := f.stocks[bookID]
	if !ok {
		return nil, nil
	}
	return stock, nil
}

var _ inventory.Repository = (*fakeRepo)(nil)

func testLogger() logger.ZapLogger {
	return logger.NewZapLogger(&logger.ZapLoggerConfig{Level: "error", Encoding: "json"})
}

func seededRepo() *fakeRepo {
	repo := newFakeRepo()
	repo.addBin("1", 30)
	repo.addBin("2", 20)
	repo.addBookBin(10, "1", 15)
	repo.addBookBin(10, "2", 10)
	repo.addBookBin(20, "1", 8)
	repo.addStock(10, 25)
	repo.addStock(20, 8)
	return repo
}

func line(bookID, qty int, bins ...dto.BinAllocationInput) dto.AllocateLineInput {
	return dto.AllocateLineInput{BookID: bookID, Quantity: qty, UnitPrice: 9.5, Bins: bins}
}

func TestAllocateHappyPath(t *testing.T) {
	repo := seededRepo()
	uc := NewInventoryUseCase(repo, testLogger())

	err := uc.Allocate(context.Background(), nil, 1, []dto.AllocateLineInput{
		line(10, 12,
			dto.BinAllocationInput{BinID: "1", Quantity: 7},
			dto.BinAllocationInput{BinID: "2", Quantity: 5},
		),
		line(20, 3, dto.BinAllocationInput{BinID: "1", Quantity: 3}),
	})
	if err != nil {
		t.Fatalf("Allocate returned error: %v", err)
	}

	if got := repo.bookBins[bbKey(10, "1")]; got != 8 {
		t.Errorf("book 10 bin 1 quantity = %d, want 8", got)
	}
	if got := repo.bookBins[bbKey(10, "2")]; got != 5 {
		t.Errorf("book 10 bin 2 quantity = %d, want 5", got)
	}
	if got := repo.bookBins[bbKey(20, "1")]; got != 5 {
		t.Errorf("book 20 bin 1 quantity = %d, want 5", got)
	}
	if got := repo.bins["1"].CurrentQuantity; got != 20 {
		t.Errorf("bin 1 current quantity = %d, want 20", got)
	}
	if got := repo.bins["2"].CurrentQuantity; got != 15 {
		t.Errorf("bin 2 current quantity = %d, want 15", got)
	}
	if got := repo.stocks[10].Quantity; got != 13 {
		t.Errorf("aggregate stock for book 10 = %d, want 13", got)
	}
	if got := repo.stocks[20].Quantity; got != 5 {
		t.Errorf("aggregate stock for book 20 = %d, want 5", got)
	}
	if len(repo.orderBins) != 3 {
		t.Errorf("order bin rows = %d, want 3", len(repo.orderBins))
	}
	if len(repo.orderDetails) != 2 {
		t.Errorf("order detail rows = %d, want 2", len(repo.orderDetails))
	}
}

func TestAllocateValidation(t *testing.T) {
	tests := []struct {
		name  string
		lines []dto.AllocateLineInput
		kind  apperrors.Kind
	}{
		{
			name:  "no items",
			lines: nil,
			kind:  apperrors.KindValidation,
		},
		{
			name:  "zero quantity",
			lines: []dto.AllocateLineInput{line(10, 0, dto.BinAllocationInput{BinID: "1", Quantity: 0})},
			kind:  apperrors.KindValidation,
		},
		{
			name: "bin sum mismatch",
			lines: []dto.AllocateLineInput{
				line(10, 10,
					dto.BinAllocationInput{BinID: "1", Quantity: 4},
					dto.BinAllocationInput{BinID: "2", Quantity: 5},
				),
			},
			kind: apperrors.KindValidation,
		},
		{
			name: "duplicate book lines",
			lines: []dto.AllocateLineInput{
				line(10, 5, dto.BinAllocationInput{BinID: "1", Quantity: 5}),
				line(10, 3, dto.BinAllocationInput{BinID: "2", Quantity: 3}),
			},
			kind: apperrors.KindValidation,
		},
		{
			name: "duplicate bin in line",
			lines: []dto.AllocateLineInput{
				line(10, 10,
					dto.BinAllocationInput{BinID: "1", Quantity: 5},
					dto.BinAllocationInput{BinID: "1", Quantity: 5},
				),
			},
			kind: apperrors.KindValidation,
		},
		{
			name:  "unresolvable bin key",
			lines: []dto.AllocateLineInput{line(10, 5, dto.BinAllocationInput{BinID: "shelf", Quantity: 5})},
			kind:  apperrors.KindInvalidBinIdentifier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := seededRepo()
			uc := NewInventoryUseCase(repo, testLogger())

			err := uc.Allocate(context.Background(), nil, 1, tt.lines)
			if err == nil {
				t.Fatal("Allocate returned nil error")
			}
			if !apperrors.IsKind(err, tt.kind) {
				t.Errorf("error kind = %v, want %v (err: %v)", apperrors.KindOf(err), tt.kind, err)
			}
			assertUntouched(t, repo)
		})
	}
}

func TestAllocateInsufficientBinStock(t *testing.T) {
	repo := seededRepo()
	uc := NewInventoryUseCase(repo, testLogger())

	err := uc.Allocate(context.Background(), nil, 1, []dto.AllocateLineInput{
		line(10, 20, dto.BinAllocationInput{BinID: "1", Quantity: 20}),
	})
	if !apperrors.IsKind(err, apperrors.KindInsufficientBinStock) {
		t.Fatalf("error kind = %v, want KindInsufficientBinStock (err: %v)", apperrors.KindOf(err), err)
	}
	assertUntouched(t, repo)
}

func TestAllocateInsufficientAggregateStock(t *testing.T) {
	// Bins individually hold enough but the aggregate is lower than their sum.
	repo := seededRepo()
	repo.stocks[10].Quantity = 10
	uc := NewInventoryUseCase(repo, testLogger())

	err := uc.Allocate(context.Background(), nil, 1, []dto.AllocateLineInput{
		line(10, 20,
			dto.BinAllocationInput{BinID: "1", Quantity: 12},
			dto.BinAllocationInput{BinID: "2", Quantity: 8},
		),
	})
	if !apperrors.IsKind(err, apperrors.KindInsufficientAggregateStock) {
		t.Fatalf("error kind = %v, want KindInsufficientAggregateStock (err: %v)", apperrors.KindOf(err), err)
	}

	if got := repo.bookBins[bbKey(10, "1")]; got != 15 {
		t.Errorf("book 10 bin 1 quantity = %d, want untouched 15", got)
	}
	if got := repo.stocks[10].Quantity; got != 10 {
		t.Errorf("aggregate stock = %d, want untouched 10", got)
	}
}

func TestAllocateUnknownBin(t *testing.T) {
	repo := seededRepo()
	uc := NewInventoryUseCase(repo, testLogger())

	err := uc.Allocate(context.Background(), nil, 1, []dto.AllocateLineInput{
		line(10, 5, dto.BinAllocationInput{BinID: "9", Quantity: 5}),
	})
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("error kind = %v, want KindNotFound (err: %v)", apperrors.KindOf(err), err)
	}
	assertUntouched(t, repo)
}

func TestAllocateMissingBookBinRow(t *testing.T) {
	repo := seededRepo()
	uc := NewInventoryUseCase(repo, testLogger())

	// Bin 2 exists but book 20 has no row in it.
	err := uc.Allocate(context.Background(), nil, 1, []dto.AllocateLineInput{
		line(20, 5, dto.BinAllocationInput{BinID: "2", Quantity: 5}),
	})
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("error kind = %v, want KindNotFound (err: %v)", apperrors.KindOf(err), err)
	}
	assertUntouched(t, repo)
}

func TestReverseRestoresCounters(t *testing.T) {
	repo := seededRepo()
	uc := NewInventoryUseCase(repo, testLogger())

	lines := []dto.AllocateLineInput{
		line(10, 12,
			dto.BinAllocationInput{BinID: "1", Quantity: 7},
			dto.BinAllocationInput{BinID: "2", Quantity: 5},
		),
		line(20, 3, dto.BinAllocationInput{BinID: "1", Quantity: 3}),
	}
	if err := uc.Allocate(context.Background(), nil, 7, lines); err != nil {
		t.Fatalf("Allocate returned error: %v", err)
	}
	if err := uc.Reverse(context.Background(), nil, 7); err != nil {
		t.Fatalf("Reverse returned error: %v", err)
	}

	assertUntouched(t, repo)
}

func TestReverseRecreatesDeletedBookBinRow(t *testing.T) {
	repo := seededRepo()
	uc := NewInventoryUseCase(repo, testLogger())

	if err := uc.Allocate(context.Background(), nil, 7, []dto.AllocateLineInput{
		line(10, 15, dto.BinAllocationInput{BinID: "1", Quantity: 15}),
	}); err != nil {
		t.Fatalf("Allocate returned error: %v", err)
	}

	// Simulate the (book, bin) row being removed once it hit zero.
	delete(repo.bookBins, bbKey(10, "1"))

	if err := uc.Reverse(context.Background(), nil, 7); err != nil {
		t.Fatalf("Reverse returned error: %v", err)
	}

	if got := repo.bookBins[bbKey(10, "1")]; got != 15 {
		t.Errorf("recreated book bin quantity = %d, want 15", got)
	}
	if got := repo.stocks[10].Quantity; got != 25 {
		t.Errorf("aggregate stock = %d, want 25", got)
	}
}

func TestReverseIgnoresBinCapacity(t *testing.T) {
	repo := seededRepo()
	uc := NewInventoryUseCase(repo, testLogger())

	if err := uc.Allocate(context.Background(), nil, 7, []dto.AllocateLineInput{
		line(10, 10, dto.BinAllocationInput{BinID: "1", Quantity: 10}),
	}); err != nil {
		t.Fatalf("Allocate returned error: %v", err)
	}

	// The bin was refilled past its stated maximum while the order was open.
	repo.bins["1"].MaxQuantity = 25
	repo.bins["1"].CurrentQuantity = 25

	if err := uc.Reverse(context.Background(), nil, 7); err != nil {
		t.Fatalf("Reverse returned error: %v", err)
	}
	if got := repo.bins["1"].CurrentQuantity; got != 35 {
		t.Errorf("bin current quantity = %d, want 35", got)
	}
}

func TestReverseNoAllocations(t *testing.T) {
	repo := seededRepo()
	uc := NewInventoryUseCase(repo, testLogger())

	if err := uc.Reverse(context.Background(), nil, 99); err != nil {
		t.Fatalf("Reverse of order without allocations returned error: %v", err)
	}
	assertUntouched(t, repo)
}

func TestGetBinDetail(t *testing.T) {
	repo := seededRepo()
	uc := NewInventoryUseCase(repo, testLogger())

	detail, err := uc.GetBinDetail(context.Background(), "1")
	if err != nil {
		t.Fatalf("GetBinDetail returned error: %v", err)
	}
	if detail.Bin.ID != "1" {
		t.Errorf("bin id = %q, want 1", detail.Bin.ID)
	}
	if len(detail.Stocks) != 2 {
		t.Fatalf("bin stock rows = %d, want 2", len(detail.Stocks))
	}
	for _, row := range detail.Stocks {
		if row.BinCode != "B1" {
			t.Errorf("bin code = %q, want B1", row.BinCode)
		}
	}

	if _, err := uc.GetBinDetail(context.Background(), "9"); !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Errorf("missing bin error kind = %v, want KindNotFound", apperrors.KindOf(err))
	}
}

func TestGetStock(t *testing.T) {
	repo := seededRepo()
	uc := NewInventoryUseCase(repo, testLogger())

	stock, err := uc.GetStock(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetStock returned error: %v", err)
	}
	if stock.Quantity != 25 {
		t.Errorf("stock quantity = %d, want 25", stock.Quantity)
	}

	if _, err := uc.GetStock(context.Background(), 99); !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Errorf("missing stock error kind = %v, want KindNotFound", apperrors.KindOf(err))
	}
}

// assertUntouched checks the counters are back at (or still at) the seeded
// values.
func assertUntouched(t *testing.T, repo *fakeRepo) {
	t.Helper()
	if got := repo.bookBins[bbKey(10, "1")]; got != 15 {
		t.Errorf("book 10 bin 1 quantity = %d, want 15", got)
	}
	if got := repo.bookBins[bbKey(10, "2")]; got != 10 {
		t.Errorf("book 10 bin 2 quantity = %d, want 10", got)
	}
	if got := repo.bookBins[bbKey(20, "1")]; got != 8 {
		t.Errorf("book 20 bin 1 quantity = %d, want 8", got)
	}
	if got := repo.bins["1"].CurrentQuantity; got != 30 {
		t.Errorf("bin 1 current quantity = %d, want 30", got)
	}
	if got := repo.bins["2"].CurrentQuantity; got != 20 {
		t.Errorf("bin 2 current quantity = %d, want 20", got)
	}
	if got := repo.stocks[10].Quantity; got != 25 {
		t.Errorf("aggregate stock for book 10 = %d, want 25", got)
	}
	if got := repo.stocks[20].Quantity; got != 8 {
		t.Errorf("aggregate stock for book 20 = %d, want 8", got)
	}
}
