package auth

import (
	"context"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/auth/dto"
)

type UseCase interface {
	Register(ctx context.Context, input *dto.RegisterInput) (*dto.AuthResponse, error)
	Login(ctx context.Context, input *dto.LoginInput) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
	Logout(ctx context.Context, userUUID string) error
	RequestOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) (bool, error)
}
