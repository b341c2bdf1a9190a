package dto

import (
	"time"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"
)

// OrderItemInput is one requested book. Legacy clients send a single flat
// binId; newer ones send an explicit bins breakdown. When bins is empty the
// flat binId carries the whole quantity.
type OrderItemInput struct {
	BookID    int                  `json:"productId"`
	Quantity  int                  `json:"quantity"`
	Price     float64              `json:"price"`
	UnitPrice float64              `json:"unitPrice"`
	Note      string               `json:"note"`
	BinID     string               `json:"binId"`
	Bins      []OrderItemBinInput  `json:"bins"`
}

type OrderItemBinInput struct {
	BinID    string `json:"binId"`
	Quantity int    `json:"quantity"`
}

type CreateExportOrderInput struct {
	Items           []OrderItemInput `json:"items"`
	Note            string           `json:"note"`
	ExportDate      time.Time        `json:"exportDate"`
	RecipientName   string           `json:"recipientName"`
	RecipientPhone  string           `json:"recipientPhone"`
	ShippingAddress string           `json:"shippingAddress"`
	CreatedBy       int              `json:"createdBy"`
}

type UpdateExportOrderInput struct {
	Items []OrderItemInput `json:"items"`
}

type ChangeStatusInput struct {
	OrderID   int
	Status    model.OrderStatus `json:"status"`
	Reason    string            `json:"reason"`
	UpdatedBy int               `json:"updatedBy"`
}

type ExportOrderFilters struct {
	Status   model.OrderStatus
	FromDate *time.Time
	ToDate   *time.Time
	SearchID int
	Page     int
	PageSize int
}
