package ports

import "github.com/vidtube/account-service/internal/core/domain"

// AccessClaims are the verified contents of an access token.
type AccessClaims struct {
	UserID   string
	Email    string
	Username string
	FullName string
}

// TokenService issues and verifies the stateless signed tokens. Verification
// distinguishes domain.ErrTokenExpired from domain.ErrTokenInvalid because
// callers respond differently (expired prompts re-login, invalid is rejected
// as forged or malformed).
type TokenService interface {
	IssueAccess(user *domain.User) (string, error)
	IssueRefresh(userID string) (string, error)
	VerifyAccess(token string) (*AccessClaims, error)
	// VerifyRefresh returns the subject user ID carried by the token.
	VerifyRefresh(token string) (string, error)
}
