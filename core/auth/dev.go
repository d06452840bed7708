package auth

import (
	"context"
	"strings"
)

// DevToken is the static token issued in development mode. It never expires.
const DevToken = "mock-jwt-token-for-development-only"

var devIdentity = Identity{
	ID:        1,
	FirstName: "Mock",
	LastName:  "User",
	Email:     "admin@example.com",
	Role:      "admin",
}

// DevService accepts any credentials and any non-empty token.
// It performs no signature check and must not be used in production.
type DevService struct{}

var _ Service = DevService{}

func NewDevService() DevService {
	return DevService{}
}

func (DevService) Authenticate(_ context.Context, email, _ string) (Identity, error) {
	id := devIdentity
	if email = strings.TrimSpace(email); email != "" {
		id.Email = email
	}
	return id, nil
}

func (DevService) IssueToken(Identity) (string, error) {
	return DevToken, nil
}

func (DevService) Verify(_ context.Context, token string) (Identity, error) {
	if strings.TrimSpace(token) == "" {
		return Identity{}, ErrInvalidToken
	}
	return devIdentity, nil
}
