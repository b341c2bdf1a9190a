package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/apperrors"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/exportorder"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/exportorder/dto"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ExportOrderHandler struct {
	uc     exportorder.UseCase
	logger logger.ZapLogger
}

func NewExportOrderHandler(uc exportorder.UseCase, log logger.ZapLogger) *ExportOrderHandler {
	return &ExportOrderHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ExportOrderHandler) fail(ctx *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("export order request failed", zap.Error(err))
		ctx.JSON(status, gin.H{"message": "internal server error"})
		return
	}
	ctx.JSON(status, gin.H{"message": err.Error()})
}

func orderID(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid export order id"})
		return 0, false
	}
	return id, true
}

// CreateExportOrder handles POST /api/export-orders.
func (h *ExportOrderHandler) CreateExportOrder(ctx *gin.Context) {
	var input dto.CreateExportOrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	order, err := h.uc.Create(ctx.Request.Context(), &input)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"id":          order.ID,
		"status":      order.Status,
		"createdDate": order.CreatedAt,
	})
}

// ListExportOrders handles GET /api/export-orders with status/date/id filters.
func (h *ExportOrderHandler) ListExportOrders(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	filters := &dto.ExportOrderFilters{
		Status:   model.OrderStatus(ctx.Query("status")),
		Page:     page,
		PageSize: pageSize,
	}
	if fromStr := ctx.Query("fromDate"); fromStr != "" {
		if t, err := time.Parse("2006-01-02", fromStr); err == nil {
			filters.FromDate = &t
		}
	}
	if toStr := ctx.Query("toDate"); toStr != "" {
		if t, err := time.Parse("2006-01-02", toStr); err == nil {
			filters.ToDate = &t
		}
	}
	if searchStr := ctx.Query("searchId"); searchStr != "" {
		if id, err := strconv.Atoi(searchStr); err == nil {
			filters.SearchID = id
		}
	}

	orders, total, err := h.uc.List(ctx.Request.Context(), filters)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  total,
		"page":   page,
		"limit":  pageSize,
	})
}

// GetExportOrder handles GET /api/export-orders/:id including the per-book
// bin breakdown.
func (h *ExportOrderHandler) GetExportOrder(ctx *gin.Context) {
	id, ok := orderID(ctx)
	if !ok {
		return
	}

	detail, err := h.uc.GetByID(ctx.Request.Context(), id)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// UpdateExportOrder handles PUT /api/export-orders/:id (item replacement,
// only while the order is New).
func (h *ExportOrderHandler) UpdateExportOrder(ctx *gin.Context) {
	id, ok := orderID(ctx)
	if !ok {
		return
	}

	var input dto.UpdateExportOrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	detail, err := h.uc.Update(ctx.Request.Context(), id, &input)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// DeleteExportOrder handles DELETE /api/export-orders/:id (only while New).
func (h *ExportOrderHandler) DeleteExportOrder(ctx *gin.Context) {
	id, ok := orderID(ctx)
	if !ok {
		return
	}

	if err := h.uc.Delete(ctx.Request.Context(), id); err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "export order deleted"})
}

// ChangeExportOrderStatus handles PATCH /api/export-orders/:id/status.
func (h *ExportOrderHandler) ChangeExportOrderStatus(ctx *gin.Context) {
	id, ok := orderID(ctx)
	if !ok {
		return
	}

	var input dto.ChangeStatusInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	input.OrderID = id

	order, err := h.uc.ChangeStatus(ctx.Request.Context(), &input)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"order": order})
}

// GetExportOrderStatusLogs handles GET /api/export-orders/:id/status-logs.
func (h *ExportOrderHandler) GetExportOrderStatusLogs(ctx *gin.Context) {
	id, ok := orderID(ctx)
	if !ok {
		return
	}

	logs, err := h.uc.ListStatusLogs(ctx.Request.Context(), id)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"statusLogs": logs})
}
