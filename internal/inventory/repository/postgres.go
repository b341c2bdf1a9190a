package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/apperrors"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/inventory/dto"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetBookBinForUpdate(ctx context.Context, tx *sqlx.Tx, bookID int, binID string) (*model.BookBin, error) {
	var row model.BookBin
	query := `SELECT bin_id, book_id, quantity FROM book_bins WHERE book_id = $1 AND bin_id = $2 FOR UPDATE`
	err := tx.GetContext(ctx, &row, query, bookID, binID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *PGRepository) GetBinForUpdate(ctx context.Context, tx *sqlx.Tx, binID string) (*model.Bin, error) {
	var bin model.Bin
	query := `SELECT * FROM bins WHERE id = $1 FOR UPDATE`
	err := tx.GetContext(ctx, &bin, query, binID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &bin, nil
}

func (r *PGRepository) GetStockForUpdate(ctx context.Context, tx *sqlx.Tx, bookID int) (*model.Stock, error) {
	var stock model.Stock
	query := `SELECT * FROM stocks WHERE book_id = $1 FOR UPDATE`
	err := tx.GetContext(ctx, &stock, query, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &stock, nil
}

func (r *PGRepository) AdjustBookBin(ctx context.Context, tx *sqlx.Tx, bookID int, binID string, delta int) error {
	var quantity int
	query := `
        UPDATE book_bins SET quantity = quantity + $1
        WHERE book_id = $2 AND bin_id = $3
        RETURNING quantity
    `
	err := tx.GetContext(ctx, &quantity, query, delta, bookID, binID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.Newf(apperrors.KindNotFound, "no stock record for book %d in bin %s", bookID, binID)
		}
		return err
	}
	if quantity < 0 {
		return apperrors.Newf(apperrors.KindInsufficientBinStock,
			"bin %s stock for book %d would go negative (result %d)", binID, bookID, quantity)
	}
	return nil
}

func (r *PGRepository) UpsertBookBin(ctx context.Context, tx *sqlx.Tx, bookID int, binID string, delta int) error {
	query := `
        INSERT INTO book_bins (bin_id, book_id, quantity)
        VALUES ($1, $2, $3)
        ON CONFLICT (bin_id, book_id)
        DO UPDATE SET quantity = book_bins.quantity + EXCLUDED.quantity
    `
	_, err := tx.ExecContext(ctx, query, binID, bookID, delta)
	return err
}

func (r *PGRepository) AdjustBinQuantity(ctx context.Context, tx *sqlx.Tx, binID string, delta int) error {
	var quantity int
	query := `
        UPDATE bins SET current_quantity = current_quantity + $1, updated_at = now()
        WHERE id = $2
        RETURNING current_quantity
    `
	err := tx.GetContext(ctx, &quantity, query, delta, binID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.Newf(apperrors.KindNotFound, "bin %s not found", binID)
		}
		return err
	}
	if quantity < 0 {
		return apperrors.Newf(apperrors.KindInsufficientBinStock,
			"bin %s total quantity would go negative (result %d)", binID, quantity)
	}
	return nil
}

func (r *PGRepository) AdjustStock(ctx context.Context, tx *sqlx.Tx, bookID int, delta int) error {
	var quantity int
	query := `
        UPDATE stocks SET quantity = quantity + $1, updated_at = now()
        WHERE book_id = $2
        RETURNING quantity
    `
	err := tx.GetContext(ctx, &quantity, query, delta, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.Newf(apperrors.KindNotFound, "no aggregate stock for book %d", bookID)
		}
		return err
	}
	if quantity < 0 {
		return apperrors.Newf(apperrors.KindInsufficientAggregateStock,
			"aggregate stock for book %d would go negative (result %d)", bookID, quantity)
	}
	return nil
}

func (r *PGRepository) CreateOrderDetail(ctx context.Context, tx *sqlx.Tx, detail *model.ExportOrderDetail) error {
	query := `
        INSERT INTO export_order_details (export_order_id, book_id, quantity, unit_price, note)
        VALUES (:export_order_id, :book_id, :quantity, :unit_price, :note)
    `
	_, err := tx.NamedExecContext(ctx, query, detail)
	return err
}

func (r *PGRepository) CreateOrderBin(ctx context.Context, tx *sqlx.Tx, orderBin *model.ExportOrderBin) error {
	query := `
        INSERT INTO export_order_bins (export_order_id, book_id, bin_id, quantity)
        VALUES (:export_order_id, :book_id, :bin_id, :quantity)
    `
	_, err := tx.NamedExecContext(ctx, query, orderBin)
	return err
}

func (r *PGRepository) ListOrderBins(ctx context.Context, tx *sqlx.Tx, orderID int) ([]model.ExportOrderBin, error) {
	var rows []model.ExportOrderBin
	query := `SELECT * FROM export_order_bins WHERE export_order_id = $1 ORDER BY book_id, bin_id`
	err := tx.SelectContext(ctx, &rows, query, orderID)
	return rows, err
}

func (r *PGRepository) ListBins(ctx context.Context) ([]model.Bin, error) {
	var bins []model.Bin
	err := r.DB.SelectContext(ctx, &bins, `SELECT * FROM bins ORDER BY id`)
	return bins, err
}

func (r *PGRepository) GetBin(ctx context.Context, binID string) (*model.Bin, error) {
	var bin model.Bin
	err := r.DB.GetContext(ctx, &bin, `SELECT * FROM bins WHERE id = $1`, binID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &bin, nil
}

func (r *PGRepository) ListBinStocks(ctx context.Context, binID string) ([]model.BookBin, error) {
	var rows []model.BookBin
	query := `SELECT bin_id, book_id, quantity FROM book_bins WHERE bin_id = $1 ORDER BY book_id`
	err := r.DB.SelectContext(ctx, &rows, query, binID)
	return rows, err
}

func (r *PGRepository) ListStocks(ctx context.Context, f *dto.StockFilters) ([]model.Stock, int, error) {
	var stocks []model.Stock
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.BookID != 0 {
		conditions = append(conditions, "book_id = :book_id")
		args["book_id"] = f.BookID
	}
	if f.LowStock {
		conditions = append(conditions, "quantity <= min_stock AND min_stock > 0")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM stocks" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM stocks" + whereClause + " ORDER BY book_id"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &stocks, args)
	return stocks, count, err
}

func (r *PGRepository) GetStock(ctx context.Context, bookID int) (*model.Stock, error) {
	var stock model.Stock
	err := r.DB.GetContext(ctx, &stock, `SELECT * FROM stocks WHERE book_id = $1`, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &stock, nil
}
