package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/apperrors"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/exportorder"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/exportorder/dto"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/inventory"
	invdto "github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/inventory/dto"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/pkg/logger"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

type exportOrderUseCase struct {
	repo      exportorder.Repository
	inv       inventory.UseCase
	publisher exportorder.EventPublisher
	logger    logger.ZapLogger
}

func NewExportOrderUseCase(
	repo exportorder.Repository,
	inv inventory.UseCase,
	publisher exportorder.EventPublisher,
	log logger.ZapLogger,
) exportorder.UseCase {
	return &exportOrderUseCase{
		repo:      repo,
		inv:       inv,
		publisher: publisher,
		logger:    log,
	}
}

func (uc *exportOrderUseCase) Create(ctx context.Context, input *dto.CreateExportOrderInput) (*model.ExportOrder, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	lines := toAllocateLines(input.Items)

	note := (*string)(nil)
	if input.Note != "" {
		n := input.Note
		note = &n
	}

	order := &model.ExportOrder{
		Status:          model.OrderStatusNew,
		CreatedBy:       input.CreatedBy,
		CreatedAt:       time.Now(),
		ExportDate:      input.ExportDate,
		RecipientName:   input.RecipientName,
		RecipientPhone:  input.RecipientPhone,
		ShippingAddress: input.ShippingAddress,
		Note:            note,
	}

	err := uc.repo.WithinTx(ctx, func(tx *sqlx.Tx) error {
		if err := uc.repo.Create(ctx, tx, order); err != nil {
			return err
		}
		if err := uc.inv.Allocate(ctx, tx, order.ID, lines); err != nil {
			return err
		}
		return uc.repo.AppendStatusLog(ctx, tx, statusLog(order.ID, model.OrderStatusNew, input.CreatedBy, "order created"))
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, "export_order.created", order, input.CreatedBy)
	return order, nil
}

func (uc *exportOrderUseCase) GetByID(ctx context.Context, id int) (*dto.ExportOrderDetailDTO, error) {
	order, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperrors.Newf(apperrors.KindNotFound, "export order %d not found", id)
	}

	details, err := uc.repo.ListDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	bins, err := uc.repo.ListBins(ctx, id)
	if err != nil {
		return nil, err
	}

	binsByBook := map[int][]model.ExportOrderBin{}
	for _, bin := range bins {
		binsByBook[bin.BookID] = append(binsByBook[bin.BookID], bin)
	}

	items := make([]dto.OrderLineDetail, 0, len(details))
	for _, detail := range details {
		items = append(items, dto.OrderLineDetail{
			ExportOrderDetail: detail,
			Bins:              binsByBook[detail.BookID],
		})
	}

	return &dto.ExportOrderDetailDTO{Order: *order, Items: items}, nil
}

func (uc *exportOrderUseCase) List(ctx context.Context, filters *dto.ExportOrderFilters) ([]model.ExportOrder, int, error) {
	if filters.Status != "" && !exportorder.IsValidStatus(filters.Status) {
		return nil, 0, apperrors.Newf(apperrors.KindValidation, "unknown status %q", filters.Status)
	}
	return uc.repo.FindAll(ctx, filters)
}

// Update replaces the order's item list while it is still New. The original
// allocations are reversed, the old lines and allocations dropped, and the
// new list allocated, all in one transaction: when the re-allocation fails,
// the reversal rolls back with it and the original allocations stand.
func (uc *exportOrderUseCase) Update(ctx context.Context, id int, input *dto.UpdateExportOrderInput) (*dto.ExportOrderDetailDTO, error) {
	if len(input.Items) == 0 {
		return nil, apperrors.New(apperrors.KindValidation, "items must not be empty")
	}
	lines := toAllocateLines(input.Items)

	err := uc.repo.WithinTx(ctx, func(tx *sqlx.Tx) error {
		order, err := uc.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return apperrors.Newf(apperrors.KindNotFound, "export order %d not found", id)
		}
		if order.Status != model.OrderStatusNew {
			return apperrors.Newf(apperrors.KindValidation,
				"export order %d has status %s; items can only be changed while New", id, order.Status)
		}

		if err := uc.inv.Reverse(ctx, tx, id); err != nil {
			return err
		}
		if err := uc.repo.DeleteDetails(ctx, tx, id); err != nil {
			return err
		}
		if err := uc.repo.DeleteBins(ctx, tx, id); err != nil {
			return err
		}
		return uc.inv.Allocate(ctx, tx, id, lines)
	})
	if err != nil {
		return nil, err
	}

	detail, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, "export_order.updated", &detail.Order, detail.Order.CreatedBy)
	return detail, nil
}

// Delete removes a New order entirely: inventory restored, then lines,
// allocations, status logs and finally the order row, in one transaction.
func (uc *exportOrderUseCase) Delete(ctx context.Context, id int) error {
	var deleted model.ExportOrder

	err := uc.repo.WithinTx(ctx, func(tx *sqlx.Tx) error {
		order, err := uc.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return apperrors.Newf(apperrors.KindNotFound, "export order %d not found", id)
		}
		if order.Status != model.OrderStatusNew {
			return apperrors.Newf(apperrors.KindValidation,
				"export order %d has status %s; only New orders can be deleted", id, order.Status)
		}
		deleted = *order

		if err := uc.inv.Reverse(ctx, tx, id); err != nil {
			return err
		}
		if err := uc.repo.DeleteBins(ctx, tx, id); err != nil {
			return err
		}
		if err := uc.repo.DeleteDetails(ctx, tx, id); err != nil {
			return err
		}
		if err := uc.repo.DeleteStatusLogs(ctx, tx, id); err != nil {
			return err
		}
		return uc.repo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	uc.publish(ctx, "export_order.deleted", &deleted, deleted.CreatedBy)
	return nil
}

// ChangeStatus validates the requested transition against the lifecycle
// table, reverses the order's allocations when entering Rejected, stamps the
// approver when entering Approved, and appends one status log entry. The
// status update and any inventory restoration share one transaction.
func (uc *exportOrderUseCase) ChangeStatus(ctx context.Context, input *dto.ChangeStatusInput) (*model.ExportOrder, error) {
	if !exportorder.IsValidStatus(input.Status) {
		return nil, apperrors.Newf(apperrors.KindValidation, "unknown status %q", input.Status)
	}

	var updated *model.ExportOrder
	err := uc.repo.WithinTx(ctx, func(tx *sqlx.Tx) error {
		order, err := uc.repo.FindByIDForUpdate(ctx, tx, input.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperrors.Newf(apperrors.KindNotFound, "export order %d not found", input.OrderID)
		}

		if !exportorder.CanTransition(order.Status, input.Status) {
			return apperrors.Newf(apperrors.KindInvalidStatusTransition,
				"cannot change export order %d from %s to %s", input.OrderID, order.Status, input.Status)
		}

		switch input.Status {
		case model.OrderStatusRejected:
			if err := uc.inv.Reverse(ctx, tx, input.OrderID); err != nil {
				return err
			}
			if input.Reason != "" {
				reason := input.Reason
				order.RejectionReason = &reason
			}
		case model.OrderStatusApproved:
			now := time.Now()
			approver := input.UpdatedBy
			order.ApprovedBy = &approver
			order.ApprovedAt = &now
		}

		order.Status = input.Status
		if err := uc.repo.UpdateStatus(ctx, tx, order); err != nil {
			return err
		}

		updated = order
		return uc.repo.AppendStatusLog(ctx, tx, statusLog(order.ID, input.Status, input.UpdatedBy, input.Reason))
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, "export_order.status_changed", updated, input.UpdatedBy)
	return updated, nil
}

func (uc *exportOrderUseCase) ListStatusLogs(ctx context.Context, orderID int) ([]model.OrderStatusLog, error) {
	order, err := uc.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperrors.Newf(apperrors.KindNotFound, "export order %d not found", orderID)
	}
	return uc.repo.ListStatusLogs(ctx, orderID)
}

func validateCreateInput(input *dto.CreateExportOrderInput) error {
	if len(input.Items) == 0 {
		return apperrors.New(apperrors.KindValidation, "items must not be empty")
	}
	if input.RecipientName == "" {
		return apperrors.New(apperrors.KindValidation, "recipient name is required")
	}
	if input.RecipientPhone == "" {
		return apperrors.New(apperrors.KindValidation, "recipient phone is required")
	}
	if !phonePattern.MatchString(input.RecipientPhone) {
		return apperrors.New(apperrors.KindValidation, "recipient phone must be 10 digits")
	}
	if input.ShippingAddress == "" {
		return apperrors.New(apperrors.KindValidation, "shipping address is required")
	}
	if input.ExportDate.IsZero() {
		return apperrors.New(apperrors.KindValidation, "export date is required")
	}
	if input.CreatedBy == 0 {
		return apperrors.New(apperrors.KindValidation, "creator is required")
	}
	return nil
}

// toAllocateLines maps request items to allocation line requests. An item
// carrying a flat binId and no bins list allocates its whole quantity from
// that bin. Per-line validation beyond this shaping belongs to the engine.
func toAllocateLines(items []dto.OrderItemInput) []invdto.AllocateLineInput {
	lines := make([]invdto.AllocateLineInput, 0, len(items))
	for _, item := range items {
		price := item.UnitPrice
		if price == 0 {
			price = item.Price
		}

		bins := make([]invdto.BinAllocationInput, 0, len(item.Bins))
		for _, bin := range item.Bins {
			bins = append(bins, invdto.BinAllocationInput{BinID: bin.BinID, Quantity: bin.Quantity})
		}
		if len(bins) == 0 && item.BinID != "" {
			bins = append(bins, invdto.BinAllocationInput{BinID: item.BinID, Quantity: item.Quantity})
		}

		lines = append(lines, invdto.AllocateLineInput{
			BookID:    item.BookID,
			Quantity:  item.Quantity,
			UnitPrice: price,
			Note:      item.Note,
			Bins:      bins,
		})
	}
	return lines
}

func statusLog(orderID int, status model.OrderStatus, actor int, note string) *model.OrderStatusLog {
	entry := &model.OrderStatusLog{
		OrderID:   orderID,
		OrderType: model.OrderTypeExport,
		Status:    status,
		CreatedBy: actor,
		CreatedAt: time.Now(),
	}
	if note != "" {
		n := note
		entry.Note = &n
	}
	return entry
}

type orderEvent struct {
	EventType string            `json:"event_type"`
	OrderID   int               `json:"order_id"`
	Status    model.OrderStatus `json:"status"`
	Actor     int               `json:"actor"`
	Timestamp time.Time         `json:"timestamp"`
}

func (uc *exportOrderUseCase) publish(ctx context.Context, eventType string, order *model.ExportOrder, actor int) {
	if uc.publisher == nil || order == nil {
		return
	}

	payload, err := json.Marshal(orderEvent{
		EventType: eventType,
		OrderID:   order.ID,
		Status:    order.Status,
		Actor:     actor,
		Timestamp: time.Now(),
	})
	if err != nil {
		uc.logger.Error("failed to marshal order event", zap.Error(err))
		return
	}

	if err := uc.publisher.Publish(ctx, fmt.Sprintf("export-order-%d", order.ID), payload); err != nil {
		uc.logger.Error("failed to publish order event",
			zap.String("event_type", eventType), zap.Int("order_id", order.ID), zap.Error(err))
	}
}
