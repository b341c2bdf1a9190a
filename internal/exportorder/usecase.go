package exportorder

import (
	"context"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/exportorder/dto"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"
)

type UseCase interface {
	Create(ctx context.Context, input *dto.CreateExportOrderInput) (*model.ExportOrder, error)
	GetByID(ctx context.Context, id int) (*dto.ExportOrderDetailDTO, error)
	List(ctx context.Context, filters *dto.ExportOrderFilters) ([]model.ExportOrder, int, error)
	Update(ctx context.Context, id int, input *dto.UpdateExportOrderInput) (*dto.ExportOrderDetailDTO, error)
	Delete(ctx context.Context, id int) error
	ChangeStatus(ctx context.Context, input *dto.ChangeStatusInput) (*model.ExportOrder, error)
	ListStatusLogs(ctx context.Context, orderID int) ([]model.OrderStatusLog, error)
}

// EventPublisher receives order lifecycle events after a use case commits.
// Publishing is best effort; failures are logged, never surfaced.
type EventPublisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}
