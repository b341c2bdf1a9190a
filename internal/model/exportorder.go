package model

import "time"

type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "New"
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusApproved  OrderStatus = "Approved"
	OrderStatusShipping  OrderStatus = "Shipping"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusRejected  OrderStatus = "Rejected"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

const OrderTypeExport = "Export"

type ExportOrder struct {
	ID              int         `db:"id" json:"id"`
	Status          OrderStatus `db:"status" json:"status"`
	CreatedBy       int         `db:"created_by" json:"created_by"`
	ApprovedBy      *int        `db:"approved_by" json:"approved_by"`
	CreatedAt       time.Time   `db:"created_at" json:"created_date"`
	ExportDate      time.Time   `db:"export_date" json:"export_date"`
	ApprovedAt      *time.Time  `db:"approved_at" json:"approved_at"`
	RecipientName   string      `db:"recipient_name" json:"recipient_name"`
	RecipientPhone  string      `db:"recipient_phone" json:"recipient_phone"`
	ShippingAddress string      `db:"shipping_address" json:"shipping_address"`
	Note            *string     `db:"note" json:"note"`
	RejectionReason *string     `db:"rejection_reason" json:"rejection_reason"`
}

// ExportOrderDetail is one line per distinct book in an order.
type ExportOrderDetail struct {
	ID            int     `db:"id" json:"id"`
	ExportOrderID int     `db:"export_order_id" json:"export_order_id"`
	BookID        int     `db:"book_id" json:"book_id"`
	Quantity      int     `db:"quantity" json:"quantity"`
	UnitPrice     float64 `db:"unit_price" json:"unit_price"`
	Note          *string `db:"note" json:"note"`
}

// ExportOrderBin commits a quantity of a book from a specific bin to an
// order. For a given (order, book) the bin quantities sum to the matching
// ExportOrderDetail quantity.
type ExportOrderBin struct {
	ID            int    `db:"id" json:"id"`
	ExportOrderID int    `db:"export_order_id" json:"export_order_id"`
	BookID        int    `db:"book_id" json:"book_id"`
	BinID         string `db:"bin_id" json:"bin_id"`
	Quantity      int    `db:"quantity" json:"quantity"`
}

// OrderStatusLog is an append-only audit record of status transitions.
type OrderStatusLog struct {
	ID        int         `db:"id" json:"id"`
	OrderID   int         `db:"order_id" json:"order_id"`
	OrderType string      `db:"order_type" json:"order_type"`
	Status    OrderStatus `db:"status" json:"status"`
	CreatedBy int         `db:"created_by" json:"created_by"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
	Note      *string     `db:"note" json:"note"`
}
