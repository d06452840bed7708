package professor

import (
	"context"
	"time"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
)

var ErrNotFound = core.NewNotFoundError("Professor not found")

type (
	// Repository stores professors. Delete clears the professor_id of related courses and projects.
	Repository interface {
		QueryAll(ctx context.Context) ([]Professor, error)
		GetByID(ctx context.Context, id int) (Professor, error)
		Create(ctx context.Context, prof Professor) (Professor, error)
		Delete(ctx context.Context, id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Professor, error) {
	return svc.repo.QueryAll(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Professor, error) {
	return svc.repo.GetByID(ctx, id)
}

// Exists reports whether the professor exists. Used to check optional references.
func (svc *Service) Exists(ctx context.Context, id int) (bool, error) {
	if _, err := svc.repo.GetByID(ctx, id); err != nil {
		if core.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (svc *Service) Create(ctx context.Context, np NewProfessor) (Professor, error) {
	return svc.repo.Create(ctx, Professor{
		Name:           core.CleanString(np.Name),
		Title:          core.CleanString(np.Title),
		Email:          core.CleanString(np.Email, true /* lower */),
		Specialization: core.NullString(np.Specialization),
		Website:        core.NullString(np.Website),
		ProfileImage:   core.NullString(np.ProfileImage),
		CreatedAt:      time.Now().UTC(),
	})
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.Delete(ctx, id)
}
