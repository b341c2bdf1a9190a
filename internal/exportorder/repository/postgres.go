package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/exportorder/dto"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"
	"github.com/jmoiron/sqlx"
	pkgerrors "github.com/pkg/errors"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// WithinTx runs fn inside one transaction. The deferred rollback is a no-op
// after a successful commit.
func (r *PGRepository) WithinTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return pkgerrors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return pkgerrors.Wrap(err, "commit transaction")
	}
	return nil
}

func (r *PGRepository) Create(ctx context.Context, tx *sqlx.Tx, order *model.ExportOrder) error {
	query := `
        INSERT INTO export_orders (
            status, created_by, created_at, export_date,
            recipient_name, recipient_phone, shipping_address, note
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `
	return tx.GetContext(ctx, &order.ID, query,
		order.Status, order.CreatedBy, order.CreatedAt, order.ExportDate,
		order.RecipientName, order.RecipientPhone, order.ShippingAddress, order.Note)
}

func (r *PGRepository) FindByID(ctx context.Context, id int) (*model.ExportOrder, error) {
	var order model.ExportOrder
	err := r.DB.GetContext(ctx, &order, `SELECT * FROM export_orders WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *PGRepository) FindByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int) (*model.ExportOrder, error) {
	var order model.ExportOrder
	err := tx.GetContext(ctx, &order, `SELECT * FROM export_orders WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ExportOrderFilters) ([]model.ExportOrder, int, error) {
	var orders []model.ExportOrder
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if f.FromDate != nil {
		conditions = append(conditions, "created_at >= :from_date")
		args["from_date"] = *f.FromDate
	}
	if f.ToDate != nil {
		conditions = append(conditions, "created_at <= :to_date")
		args["to_date"] = *f.ToDate
	}
	if f.SearchID != 0 {
		conditions = append(conditions, "id = :search_id")
		args["search_id"] = f.SearchID
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM export_orders" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM export_orders" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &orders, args)
	return orders, count, err
}

func (r *PGRepository) UpdateStatus(ctx context.Context, tx *sqlx.Tx, order *model.ExportOrder) error {
	query := `
        UPDATE export_orders
        SET status = :status,
            approved_by = :approved_by,
            approved_at = :approved_at,
            rejection_reason = :rejection_reason
        WHERE id = :id
    `
	_, err := tx.NamedExecContext(ctx, query, order)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, tx *sqlx.Tx, id int) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM export_orders WHERE id = $1`, id)
	return err
}

func (r *PGRepository) ListDetails(ctx context.Context, orderID int) ([]model.ExportOrderDetail, error) {
	var details []model.ExportOrderDetail
	query := `SELECT * FROM export_order_details WHERE export_order_id = $1 ORDER BY book_id`
	err := r.DB.SelectContext(ctx, &details, query, orderID)
	return details, err
}

func (r *PGRepository) ListBins(ctx context.Context, orderID int) ([]model.ExportOrderBin, error) {
	var bins []model.ExportOrderBin
	query := `SELECT * FROM export_order_bins WHERE export_order_id = $1 ORDER BY book_id, bin_id`
	err := r.DB.SelectContext(ctx, &bins, query, orderID)
	return bins, err
}

func (r *PGRepository) DeleteDetails(ctx context.Context, tx *sqlx.Tx, orderID int) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM export_order_details WHERE export_order_id = $1`, orderID)
	return err
}

func (r *PGRepository) DeleteBins(ctx context.Context, tx *sqlx.Tx, orderID int) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM export_order_bins WHERE export_order_id = $1`, orderID)
	return err
}

func (r *PGRepository) AppendStatusLog(ctx context.Context, tx *sqlx.Tx, entry *model.OrderStatusLog) error {
	query := `
        INSERT INTO order_status_logs (order_id, order_type, status, created_by, created_at, note)
        VALUES (:order_id, :order_type, :status, :created_by, :created_at, :note)
    `
	_, err := tx.NamedExecContext(ctx, query, entry)
	return err
}

func (r *PGRepository) ListStatusLogs(ctx context.Context, orderID int) ([]model.OrderStatusLog, error) {
	var logs []model.OrderStatusLog
	query := `
        SELECT * FROM order_status_logs
        WHERE order_id = $1 AND order_type = $2
        ORDER BY created_at ASC, id ASC
    `
	err := r.DB.SelectContext(ctx, &logs, query, orderID, model.OrderTypeExport)
	return logs, err
}

func (r *PGRepository) DeleteStatusLogs(ctx context.Context, tx *sqlx.Tx, orderID int) error {
	_, err := tx.ExecContext(ctx,
		`DELETE FROM order_status_logs WHERE order_id = $1 AND order_type = $2`,
		orderID, model.OrderTypeExport)
	return err
}
