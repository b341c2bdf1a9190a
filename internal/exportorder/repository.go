package exportorder

import (
	"context"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/exportorder/dto"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"
	"github.com/jmoiron/sqlx"
)

// Repository persists export orders and their audit trail. WithinTx owns the
// transaction boundary for every mutating use case: the closure either
// commits as a whole or rolls back as a whole.
type Repository interface {
	WithinTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error

	Create(ctx context.Context, tx *sqlx.Tx, order *model.ExportOrder) error
	FindByID(ctx context.Context, id int) (*model.ExportOrder, error)
	FindByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int) (*model.ExportOrder, error)
	FindAll(ctx context.Context, filters *dto.ExportOrderFilters) ([]model.ExportOrder, int, error)
	UpdateStatus(ctx context.Context, tx *sqlx.Tx, order *model.ExportOrder) error
	Delete(ctx context.Context, tx *sqlx.Tx, id int) error

	ListDetails(ctx context.Context, orderID int) ([]model.ExportOrderDetail, error)
	ListBins(ctx context.Context, orderID int) ([]model.ExportOrderBin, error)
	DeleteDetails(ctx context.Context, tx *sqlx.Tx, orderID int) error
	DeleteBins(ctx context.Context, tx *sqlx.Tx, orderID int) error

	AppendStatusLog(ctx context.Context, tx *sqlx.Tx, entry *model.OrderStatusLog) error
	ListStatusLogs(ctx context.Context, orderID int) ([]model.OrderStatusLog, error)
	DeleteStatusLogs(ctx context.Context, tx *sqlx.Tx, orderID int) error
}
