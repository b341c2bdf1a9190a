package handler

import (
	"net/http"
	"strconv"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/apperrors"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/category"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/category/dto"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) fail(ctx *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("category request failed", zap.Error(err))
		ctx.JSON(status, gin.H{"message": "internal server error"})
		return
	}
	ctx.JSON(status, gin.H{"message": err.Error()})
}

func categoryID(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid category id"})
		return 0, false
	}
	return id, true
}

// CreateCategory handles POST /api/categories.
func (h *CategoryHandler) CreateCategory(ctx *gin.Context) {
	var input dto.CreateCategoryInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	cat, err := h.uc.CreateCategory(ctx.Request.Context(), &input)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, cat)
}

// ListCategories handles GET /api/categories.
func (h *CategoryHandler) ListCategories(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	filters := &dto.CategoryFilters{
		Page:     page,
		PageSize: pageSize,
	}
	if parentStr := ctx.Query("parentId"); parentStr != "" {
		if parentID, err := strconv.Atoi(parentStr); err == nil {
			filters.ParentID = &parentID
		}
	}
	if activeStr := ctx.Query("isActive"); activeStr != "" {
		if active, err := strconv.ParseBool(activeStr); err == nil {
			filters.IsActive = &active
		}
	}

	categories, total, err := h.uc.ListCategories(ctx.Request.Context(), filters)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"total":      total,
		"page":       page,
		"limit":      pageSize,
	})
}

// GetCategory handles GET /api/categories/:id.
func (h *CategoryHandler) GetCategory(ctx *gin.Context) {
	id, ok := categoryID(ctx)
	if !ok {
		return
	}

	cat, err := h.uc.GetCategory(ctx.Request.Context(), id)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, cat)
}

// UpdateCategory handles PUT /api/categories/:id.
func (h *CategoryHandler) UpdateCategory(ctx *gin.Context) {
	id, ok := categoryID(ctx)
	if !ok {
		return
	}

	var input dto.UpdateCategoryInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	input.ID = id

	cat, err := h.uc.UpdateCategory(ctx.Request.Context(), &input)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, cat)
}

// DeleteCategory handles DELETE /api/categories/:id. Deletion is refused
// while books are still assigned to the category.
func (h *CategoryHandler) DeleteCategory(ctx *gin.Context) {
	id, ok := categoryID(ctx)
	if !ok {
		return
	}

	if err := h.uc.DeleteCategory(ctx.Request.Context(), id); err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}
