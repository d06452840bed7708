package project

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
)

var (
	ErrNotFound = core.NewNotFoundError("Project not found")

	errProfessorNotFound = "professor not found"
	errEndBeforeStart    = "end date cannot be before start date"
)

type (
	Repository interface {
		QueryAll(ctx context.Context) ([]Project, error)
		GetByID(ctx context.Context, id int) (Project, error)
		Create(ctx context.Context, proj Project) (Project, error)
		Delete(ctx context.Context, id int) error
	}

	// ProfessorChecker checks the optional professor reference of a project.
	ProfessorChecker interface {
		Exists(ctx context.Context, id int) (bool, error)
	}

	Service struct {
		repo  Repository
		profs ProfessorChecker
	}
)

func NewService(repo Repository, profs ProfessorChecker) *Service {
	return &Service{repo: repo, profs: profs}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Project, error) {
	return svc.repo.QueryAll(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Project, error) {
	return svc.repo.GetByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, np NewProject) (Project, error) {
	start, err := core.ParseDate(np.StartDate)
	if err != nil {
		return Project{}, core.NewValidationError(err, core.FieldError{Field: "start_date", Error: err.Error()})
	}
	end, err := core.ParseDate(np.EndDate)
	if err != nil {
		return Project{}, core.NewValidationError(err, core.FieldError{Field: "end_date", Error: err.Error()})
	}
	if end.Valid && start.Valid && end.Time.Before(start.Time) {
		return Project{}, core.NewValidationError(
			errors.New(errEndBeforeStart),
			core.FieldError{Field: "end_date", Error: errEndBeforeStart},
		)
	}

	if np.ProfessorID > 0 {
		ok, err := svc.profs.Exists(ctx, np.ProfessorID)
		if err != nil {
			return Project{}, errors.Wrap(err, "checking professor")
		}
		if !ok {
			return Project{}, core.NewValidationError(
				errors.New(errProfessorNotFound),
				core.FieldError{Field: "professor_id", Error: errProfessorNotFound},
			)
		}
	}

	technologies, members := np.Technologies, np.Members
	if technologies == nil {
		technologies = core.StringList{}
	}
	if members == nil {
		members = core.StringList{}
	}

	return svc.repo.Create(ctx, Project{
		Title:          core.CleanString(np.Title),
		Description:    core.CleanString(np.Description),
		Type:           np.Type,
		Status:         np.Status,
		StartDate:      start,
		EndDate:        end,
		ProfessorID:    core.NullInt(np.ProfessorID),
		Technologies:   technologies,
		Members:        members,
		PublicationURL: core.NullString(np.PublicationURL),
		CreatedAt:      time.Now().UTC(),
	})
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.Delete(ctx, id)
}
