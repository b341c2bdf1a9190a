package auth

import (
	"time"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/apperrors"
	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims carried by both access and refresh tokens. Type distinguishes
// the two so a refresh token cannot be used as a bearer token.
type Claims struct {
	UserUUID string `json:"user_uuid"`
	Role     string `json:"role"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewJWTService(secret string, accessTTL, refreshTTL time.Duration) *JWTService {
	return &JWTService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *JWTService) GenerateAccessToken(userUUID, role string) (string, error) {
	return s.generate(userUUID, role, TokenTypeAccess, s.accessTTL)
}

func (s *JWTService) GenerateRefreshToken(userUUID, role string) (string, error) {
	return s.generate(userUUID, role, TokenTypeRefresh, s.refreshTTL)
}

func (s *JWTService) generate(userUUID, role, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserUUID: userUUID,
		Role:     role,
		Type:     tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userUUID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.Newf(apperrors.KindUnauthorized, "unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnauthorized, err, "invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.New(apperrors.KindUnauthorized, "invalid token")
	}
	return claims, nil
}

func (s *JWTService) AccessTTL() time.Duration {
	return s.accessTTL
}

func (s *JWTService) RefreshTTL() time.Duration {
	return s.refreshTTL
}
