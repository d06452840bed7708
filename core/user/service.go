package user

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
)

var ErrNotFound = core.NewNotFoundError("user not found")

type (
	Repository interface {
		QueryAll(ctx context.Context) ([]User, error)
		GetByID(ctx context.Context, id int) (User, error)
		GetByEmail(ctx context.Context, email string) (User, error)
		Create(ctx context.Context, usr User) (User, error)
		Update(ctx context.Context, usr User) (User, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryAll(ctx context.Context) ([]User, error) {
	return svc.repo.QueryAll(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (User, error) {
	return svc.repo.GetByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetByEmail(ctx, core.CleanString(email, true /* lower */))
}

// UpdateOrCreate sets the name, role and password of the user with the given email, creating it if needed.
func (svc *Service) UpdateOrCreate(ctx context.Context, nu NewUser) (User, error) {
	email := core.CleanString(nu.Email, true /* lower */)
	usr, err := svc.repo.GetByEmail(ctx, email)
	exists := err == nil
	if err != nil && errors.Cause(err) != ErrNotFound {
		return User{}, errors.Wrap(err, "finding user by email")
	}
	if !exists {
		usr = User{Email: email, CreatedAt: time.Now().UTC()}
	}
	usr.Name = core.CleanString(nu.Name)
	usr.Role = nu.Role
	if err = usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}

	if exists {
		return svc.repo.Update(ctx, usr)
	}
	return svc.repo.Create(ctx, usr)
}

// Authenticate returns the user matching the credentials, or ErrNotFound.
func (svc *Service) Authenticate(ctx context.Context, email, pwd string) (User, error) {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return User{}, err
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return User{}, ErrNotFound
	}
	return usr, nil
}

// ResetPassword replaces the password of the user with the given email.
func (svc *Service) ResetPassword(ctx context.Context, email, pwd string) (User, error) {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return User{}, err
	}
	if err = usr.SetPassword(pwd); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	return svc.repo.Update(ctx, usr)
}
