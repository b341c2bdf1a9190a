package auth

import (
	"context"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUUID(ctx context.Context, uuid string) (*model.User, error)
	UpdatePassword(ctx context.Context, uuid, hashed string) error
}
