package auth

import (
	"testing"
	"time"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"
)

func newTestService() *JWTService {
	return NewJWTService("test-secret", 15*time.Minute, 168*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateAccessToken("uuid-1", model.RoleStaff)
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if claims.UserUUID != "uuid-1" {
		t.Errorf("user uuid = %q, want uuid-1", claims.UserUUID)
	}
	if claims.Role != model.RoleStaff {
		t.Errorf("role = %q, want %q", claims.Role, model.RoleStaff)
	}
	if claims.Type != TokenTypeAccess {
		t.Errorf("token type = %q, want access", claims.Type)
	}
}

func TestRefreshTokenType(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateRefreshToken("uuid-1", model.RoleManager)
	if err != nil {
		t.Fatalf("GenerateRefreshToken returned error: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if claims.Type != TokenTypeRefresh {
		t.Errorf("token type = %q, want refresh", claims.Type)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := newTestService().GenerateAccessToken("uuid-1", model.RoleStaff)
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}

	other := NewJWTService("different-secret", 15*time.Minute, 168*time.Hour)
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("token signed with another secret validated")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, 168*time.Hour)

	token, err := svc.GenerateAccessToken("uuid-1", model.RoleStaff)
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}
	if _, err := svc.ValidateToken(token); err == nil {
		t.Error("expired token validated")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := newTestService().ValidateToken("not-a-jwt"); err == nil {
		t.Error("garbage token validated")
	}
}
