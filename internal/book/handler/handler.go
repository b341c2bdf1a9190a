package handler

import (
	"net/http"
	"strconv"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/apperrors"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/book"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/book/dto"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookHandler struct {
	uc     book.UseCase
	logger logger.ZapLogger
}

func NewBookHandler(uc book.UseCase, log logger.ZapLogger) *BookHandler {
	return &BookHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *BookHandler) fail(ctx *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("book request failed", zap.Error(err))
		ctx.JSON(status, gin.H{"message": "internal server error"})
		return
	}
	ctx.JSON(status, gin.H{"message": err.Error()})
}

func bookID(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid book id"})
		return 0, false
	}
	return id, true
}

// CreateBook handles POST /api/books.
func (h *BookHandler) CreateBook(ctx *gin.Context) {
	var input dto.CreateBookInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	b, err := h.uc.CreateBook(ctx.Request.Context(), &input)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, b)
}

// ListBooks handles GET /api/books with search/category filters.
func (h *BookHandler) ListBooks(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	filters := &dto.BookFilters{
		SearchQuery: ctx.Query("search"),
		Page:        page,
		PageSize:    pageSize,
	}
	if catStr := ctx.Query("categoryId"); catStr != "" {
		if catID, err := strconv.Atoi(catStr); err == nil {
			filters.CategoryID = catID
		}
	}
	if activeStr := ctx.Query("isActive"); activeStr != "" {
		if active, err := strconv.ParseBool(activeStr); err == nil {
			filters.IsActive = &active
		}
	}

	books, total, err := h.uc.ListBooks(ctx.Request.Context(), filters)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"books": books,
		"total": total,
		"page":  page,
		"limit": pageSize,
	})
}

// GetBook handles GET /api/books/:id.
func (h *BookHandler) GetBook(ctx *gin.Context) {
	id, ok := bookID(ctx)
	if !ok {
		return
	}

	b, err := h.uc.GetBook(ctx.Request.Context(), id)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, b)
}

// UpdateBook handles PUT /api/books/:id.
func (h *BookHandler) UpdateBook(ctx *gin.Context) {
	id, ok := bookID(ctx)
	if !ok {
		return
	}

	var input dto.UpdateBookInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	input.ID = id

	b, err := h.uc.UpdateBook(ctx.Request.Context(), &input)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, b)
}

// DeleteBook handles DELETE /api/books/:id.
func (h *BookHandler) DeleteBook(ctx *gin.Context) {
	id, ok := bookID(ctx)
	if !ok {
		return
	}

	if err := h.uc.DeleteBook(ctx.Request.Context(), id); err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "book deleted"})
}
