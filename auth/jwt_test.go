package auth

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "user@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "user@example.com" {
		t.Errorf("claims = %s/%s, want user-1/user@example.com", claims.UserID, claims.Email)
	}
}

func TestRefreshTokenNotValidAsAccess(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)

	refresh, err := m.GenerateRefreshToken("user-1", "user@example.com")
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	if _, err := m.ValidateToken(refresh); err == nil {
		t.Error("refresh token accepted as access token")
	}
	if _, err := m.ValidateRefreshToken(refresh); err != nil {
		t.Errorf("ValidateRefreshToken() error = %v", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "user@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := m.ValidateToken(token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestWrongSecretRejected(t *testing.T) {
	issuer := NewJWTManager("secret-a", time.Hour, 24*time.Hour)
	verifier := NewJWTManager("secret-b", time.Hour, 24*time.Hour)

	token, err := issuer.GenerateAccessToken("user-1", "user@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("token signed with a different secret accepted")
	}
}
