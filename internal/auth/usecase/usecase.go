package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/apperrors"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/auth"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/auth/dto"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/pkg/cache"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const otpTTL = 5 * time.Minute

type authUseCase struct {
	repo       auth.UserRepository
	jwtService *auth.JWTService
	cache      *cache.RedisClient
	logger     logger.ZapLogger
}

func NewAuthUseCase(repo auth.UserRepository, jwtService *auth.JWTService, cache *cache.RedisClient, log logger.ZapLogger) auth.UseCase {
	return &authUseCase{
		repo:       repo,
		jwtService: jwtService,
		cache:      cache,
		logger:     log,
	}
}

func (uc *authUseCase) Register(ctx context.Context, input *dto.RegisterInput) (*dto.AuthResponse, error) {
	if input.Email == "" || input.Password == "" {
		return nil, apperrors.New(apperrors.KindValidation, "email and password are required")
	}
	if len(input.Password) < 6 {
		return nil, apperrors.New(apperrors.KindValidation, "password must be at least 6 characters")
	}

	existing, err := uc.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.New(apperrors.KindConflict, "email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = model.RoleStaff
	}

	now := time.Now()
	user := &model.User{
		UUID:      uuid.New().String(),
		Email:     input.Email,
		Password:  string(hashed),
		FullName:  input.FullName,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Phone != "" {
		phone := input.Phone
		user.Phone = &phone
	}

	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return uc.issueTokens(ctx, user)
}

func (uc *authUseCase) Login(ctx context.Context, input *dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := uc.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, apperrors.New(apperrors.KindUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, apperrors.New(apperrors.KindUnauthorized, "invalid credentials")
	}

	return uc.issueTokens(ctx, user)
}

// Refresh rotates the token pair. The presented refresh token must match
// the one stored in Redis for the user, so a stolen token stops working
// after the first legitimate refresh.
func (uc *authUseCase) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := uc.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, apperrors.New(apperrors.KindUnauthorized, "invalid refresh token")
	}
	if claims.Type != auth.TokenTypeRefresh {
		return nil, apperrors.New(apperrors.KindUnauthorized, "invalid token type")
	}

	stored, found, err := uc.cache.Get(ctx, refreshKey(claims.UserUUID))
	if err != nil {
		return nil, err
	}
	if !found || stored != refreshToken {
		return nil, apperrors.New(apperrors.KindUnauthorized, "refresh token revoked")
	}

	user, err := uc.repo.FindByUUID(ctx, claims.UserUUID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, apperrors.New(apperrors.KindUnauthorized, "user not found")
	}

	return uc.issueTokens(ctx, user)
}

func (uc *authUseCase) Logout(ctx context.Context, userUUID string) error {
	return uc.cache.Del(ctx, refreshKey(userUUID))
}

func (uc *authUseCase) RequestOTP(ctx context.Context, email string) error {
	user, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		// Do not reveal whether the address is registered.
		return nil
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}

	if err := uc.cache.Set(ctx, otpKey(email), code, otpTTL); err != nil {
		return err
	}

	// Mail delivery is handled out of process; the code is logged for
	// local development.
	uc.logger.Info("otp generated", zap.String("email", email))
	return nil
}

func (uc *authUseCase) VerifyOTP(ctx context.Context, email, code string) (bool, error) {
	stored, found, err := uc.cache.Get(ctx, otpKey(email))
	if err != nil {
		return false, err
	}
	if !found || stored != code {
		return false, nil
	}

	if err := uc.cache.Del(ctx, otpKey(email)); err != nil {
		uc.logger.Warn("failed to clear used otp", zap.Error(err))
	}
	return true, nil
}

func (uc *authUseCase) issueTokens(ctx context.Context, user *model.User) (*dto.AuthResponse, error) {
	accessToken, err := uc.jwtService.GenerateAccessToken(user.UUID, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := uc.jwtService.GenerateRefreshToken(user.UUID, user.Role)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Set(ctx, refreshKey(user.UUID), refreshToken, uc.jwtService.RefreshTTL()); err != nil {
		return nil, err
	}

	safe := *user
	safe.Password = ""

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         &safe,
		ExpiresAt:    time.Now().Add(uc.jwtService.AccessTTL()),
	}, nil
}

func refreshKey(userUUID string) string {
	return "auth:refresh:" + userUUID
}

func otpKey(email string) string {
	return "auth:otp:" + email
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
