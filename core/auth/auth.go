package auth

import (
	"context"
	"errors"
)

// Permissions granted to every authenticated identity.
const (
	PermManageCourses    = "manage_courses"
	PermManageLectures   = "manage_lectures"
	PermManageProjects   = "manage_projects"
	PermManageProfessors = "manage_professors"
)

var (
	Permissions = []string{PermManageCourses, PermManageLectures, PermManageProjects, PermManageProfessors}

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("token is not valid")
)

// Identity is the authenticated user attached to a request.
type Identity struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// Service issues and verifies tokens. Implementations are swappable at startup.
type Service interface {
	Authenticate(ctx context.Context, email, password string) (Identity, error)
	IssueToken(id Identity) (string, error)
	Verify(ctx context.Context, token string) (Identity, error)
}
