package handler

import (
	"net/http"
	"strconv"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/apperrors"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/inventory"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/inventory/dto"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) fail(ctx *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("inventory request failed", zap.Error(err))
		ctx.JSON(status, gin.H{"message": "internal server error"})
		return
	}
	ctx.JSON(status, gin.H{"message": err.Error()})
}

func (h *InventoryHandler) ListBins(ctx *gin.Context) {
	bins, err := h.uc.ListBins(ctx.Request.Context())
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"bins": bins})
}

func (h *InventoryHandler) GetBinStocks(ctx *gin.Context) {
	binID := ctx.Param("binId")

	detail, err := h.uc.GetBinDetail(ctx.Request.Context(), binID)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

func (h *InventoryHandler) ListStocks(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	filters := &dto.StockFilters{
		LowStock: ctx.Query("lowStock") == "true",
		Page:     page,
		PageSize: pageSize,
	}
	if bookIDStr := ctx.Query("bookId"); bookIDStr != "" {
		bookID, err := strconv.Atoi(bookIDStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid book id"})
			return
		}
		filters.BookID = bookID
	}

	stocks, total, err := h.uc.ListStocks(ctx.Request.Context(), filters)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"stocks": stocks,
		"total":  total,
		"page":   page,
		"limit":  pageSize,
	})
}

func (h *InventoryHandler) GetStock(ctx *gin.Context) {
	bookID, err := strconv.Atoi(ctx.Param("bookId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid book id"})
		return
	}

	stock, err := h.uc.GetStock(ctx.Request.Context(), bookID)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"stock": stock})
}
