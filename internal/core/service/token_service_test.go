package service

import (
	"testing"
	"time"

	"github.com/vidtube/account-service/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       "user-1",
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice A",
	}
}

func TestTokenService_AccessRoundTrip(t *testing.T) {
	svc := NewTokenService(TokenConfig{AccessSecret: "access", RefreshSecret: "refresh"})

	token, err := svc.IssueAccess(testUser())
	if err != nil {
		t.Fatalf("IssueAccess returned error: %v", err)
	}

	claims, err := svc.VerifyAccess(token)
	if err != nil {
		t.Fatalf("VerifyAccess returned error: %v", err)
	}
	if claims.UserID != "user-1" || claims.Username != "alice" || claims.Email != "alice@example.com" || claims.FullName != "Alice A" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenService_RefreshRoundTrip(t *testing.T) {
	svc := NewTokenService(TokenConfig{AccessSecret: "access", RefreshSecret: "refresh"})

	token, err := svc.IssueRefresh("user-1")
	if err != nil {
		t.Fatalf("IssueRefresh returned error: %v", err)
	}
	userID, err := svc.VerifyRefresh(token)
	if err != nil {
		t.Fatalf("VerifyRefresh returned error: %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("unexpected subject: %q", userID)
	}
}

func TestTokenService_SecretsAreIndependent(t *testing.T) {
	svc := NewTokenService(TokenConfig{AccessSecret: "access", RefreshSecret: "refresh"})

	access, _ := svc.IssueAccess(testUser())
	if _, err := svc.VerifyRefresh(access); err != domain.ErrTokenInvalid {
		t.Fatalf("access token accepted as refresh token, err=%v", err)
	}

	refresh, _ := svc.IssueRefresh("user-1")
	if _, err := svc.VerifyAccess(refresh); err != domain.ErrTokenInvalid {
		t.Fatalf("refresh token accepted as access token, err=%v", err)
	}

	other := NewTokenService(TokenConfig{AccessSecret: "different", RefreshSecret: "different"})
	if _, err := other.VerifyAccess(access); err != domain.ErrTokenInvalid {
		t.Fatalf("token signed with another secret accepted, err=%v", err)
	}
}

func TestTokenService_Expiry(t *testing.T) {
	svc := NewTokenService(TokenConfig{AccessSecret: "access", RefreshSecret: "refresh", AccessTTL: time.Nanosecond, RefreshTTL: time.Nanosecond})

	access, _ := svc.IssueAccess(testUser())
	refresh, _ := svc.IssueRefresh("user-1")
	time.Sleep(10 * time.Millisecond)

	if _, err := svc.VerifyAccess(access); err != domain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if _, err := svc.VerifyRefresh(refresh); err != domain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	svc := NewTokenService(TokenConfig{AccessSecret: "access", RefreshSecret: "refresh"})

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.VerifyAccess(token); err != domain.ErrTokenInvalid {
			t.Fatalf("token %q: expected ErrTokenInvalid, got %v", token, err)
		}
	}
}

func TestTokenService_RefreshTokensAreUnique(t *testing.T) {
	svc := NewTokenService(TokenConfig{AccessSecret: "access", RefreshSecret: "refresh"})

	a, _ := svc.IssueRefresh("user-1")
	b, _ := svc.IssueRefresh("user-1")
	if a == b {
		t.Fatalf("two refresh tokens for the same user are identical")
	}
}
