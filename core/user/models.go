package user

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// Roles
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

var AllRoles = []string{RoleAdmin, RoleEditor}

type User struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Role         string    `db:"role" json:"role"`
	PasswordHash []byte    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

// FirstName and LastName split the display name on its first space.
func (u User) FirstName() string {
	return strings.SplitN(u.Name, " ", 2)[0]
}

func (u User) LastName() string {
	if parts := strings.SplitN(u.Name, " ", 2); len(parts) == 2 {
		return parts[1]
	}
	return ""
}

type NewUser struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=admin editor"`
	Password string `json:"password" validate:"required,min=8"`
}

func (nu NewUser) Validate(validate *validator.Validate) error {
	return validate.Struct(nu)
}
