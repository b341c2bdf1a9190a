package handler

import (
	"net/http"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/apperrors"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/auth"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/auth/dto"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	uc     auth.UseCase
	logger logger.ZapLogger
}

func NewAuthHandler(uc auth.UseCase, log logger.ZapLogger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *AuthHandler) fail(ctx *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("auth request failed", zap.Error(err))
		ctx.JSON(status, gin.H{"message": "internal server error"})
		return
	}
	ctx.JSON(status, gin.H{"message": err.Error()})
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(ctx *gin.Context) {
	var input dto.RegisterInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	resp, err := h.uc.Register(ctx.Request.Context(), &input)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var input dto.LoginInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	resp, err := h.uc.Login(ctx.Request.Context(), &input)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(ctx *gin.Context) {
	var input dto.RefreshInput
	if err := ctx.ShouldBindJSON(&input); err != nil || input.RefreshToken == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	resp, err := h.uc.Refresh(ctx.Request.Context(), input.RefreshToken)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Logout handles POST /auth/logout. Requires a valid access token.
func (h *AuthHandler) Logout(ctx *gin.Context) {
	userUUID, ok := auth.GetUserUUID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}

	if err := h.uc.Logout(ctx.Request.Context(), userUUID); err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// RequestOTP handles POST /auth/otp/request.
func (h *AuthHandler) RequestOTP(ctx *gin.Context) {
	var input dto.RequestOTPInput
	if err := ctx.ShouldBindJSON(&input); err != nil || input.Email == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if err := h.uc.RequestOTP(ctx.Request.Context(), input.Email); err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "otp sent if the address is registered"})
}

// VerifyOTP handles POST /auth/otp/verify.
func (h *AuthHandler) VerifyOTP(ctx *gin.Context) {
	var input dto.VerifyOTPInput
	if err := ctx.ShouldBindJSON(&input); err != nil || input.Email == "" || input.Code == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	valid, err := h.uc.VerifyOTP(ctx.Request.Context(), input.Email, input.Code)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	if !valid {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired code"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "otp verified"})
}
