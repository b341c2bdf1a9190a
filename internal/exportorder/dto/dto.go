package dto

import "github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"

// OrderLineDetail is one order line with its per-bin breakdown.
type OrderLineDetail struct {
	model.ExportOrderDetail
	Bins []model.ExportOrderBin `json:"bins"`
}

type ExportOrderDetailDTO struct {
	Order model.ExportOrder `json:"order"`
	Items []OrderLineDetail `json:"items"`
}
