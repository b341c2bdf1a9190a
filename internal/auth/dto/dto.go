package dto

import (
	"time"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"
)

type AuthResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         *model.User `json:"user"`
	ExpiresAt    time.Time   `json:"expiresAt"`
}
