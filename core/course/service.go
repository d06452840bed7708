package course

import (
	"context"
	"math/rand"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/pkg/errors"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
)

var (
	ErrNotFound = core.NewNotFoundError("Course not found")

	CodeRandFunc = rand.Intn // mockable

	errProfessorNotFound = "professor not found"
)

type (
	// Repository stores courses. Lectures are removed by the LectureRemover before Delete.
	Repository interface {
		QueryAll(ctx context.Context) ([]Course, error)
		GetByID(ctx context.Context, id int) (Course, error)
		Create(ctx context.Context, crs Course) (Course, error)
		Update(ctx context.Context, crs Course) (Course, error)
		Delete(ctx context.Context, id int) error
	}

	ProfessorChecker interface {
		Exists(ctx context.Context, id int) (bool, error)
	}

	// LectureRemover deletes the lectures of a course along with their files.
	LectureRemover interface {
		RemoveByCourse(ctx context.Context, courseID int) error
	}

	Service struct {
		repo     Repository
		profs    ProfessorChecker
		lectures LectureRemover
	}
)

func NewService(repo Repository, profs ProfessorChecker, lectures LectureRemover) *Service {
	return &Service{repo: repo, profs: profs, lectures: lectures}
}

// DeriveCode builds a course code from the first three letters or digits of the title and a number below 1000.
func DeriveCode(title string) string {
	var prefix []rune
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			prefix = append(prefix, unicode.ToUpper(r))
			if len(prefix) == 3 {
				break
			}
		}
	}
	if len(prefix) == 0 {
		prefix = []rune("CRS")
	}
	return string(prefix) + strconv.Itoa(CodeRandFunc(1000))
}

func (svc *Service) QueryAll(ctx context.Context) ([]Course, error) {
	return svc.repo.QueryAll(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Course, error) {
	return svc.repo.GetByID(ctx, id)
}

// Exists reports whether the course exists.
func (svc *Service) Exists(ctx context.Context, id int) (bool, error) {
	if _, err := svc.repo.GetByID(ctx, id); err != nil {
		if core.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (svc *Service) checkProfessor(ctx context.Context, id int) error {
	if id <= 0 {
		return nil
	}
	ok, err := svc.profs.Exists(ctx, id)
	if err != nil {
		return errors.Wrap(err, "checking professor")
	}
	if !ok {
		return core.NewValidationError(
			errors.New(errProfessorNotFound),
			core.FieldError{Field: "professor_id", Error: errProfessorNotFound},
		)
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	if err := svc.checkProfessor(ctx, nc.ProfessorID); err != nil {
		return Course{}, err
	}

	title := core.CleanString(nc.Title)
	code := strings.ToUpper(core.CleanString(nc.Code))
	if code == "" {
		code = DeriveCode(title)
	}
	now := time.Now().UTC()
	return svc.repo.Create(ctx, Course{
		Title:       title,
		Code:        code,
		Description: core.CleanString(nc.Description),
		Semester:    core.NullString(nc.Semester),
		Year:        core.NullInt(nc.Year),
		ProfessorID: core.NullInt(nc.ProfessorID),
		CreatedBy:   core.NullInt(nc.CreatedBy),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// Update replaces all the editable fields of the course. A blank code keeps the current one.
func (svc *Service) Update(ctx context.Context, id int, nc NewCourse) (Course, error) {
	crs, err := svc.repo.GetByID(ctx, id)
	if err != nil {
		return Course{}, err
	}
	if err = svc.checkProfessor(ctx, nc.ProfessorID); err != nil {
		return Course{}, err
	}

	crs.Title = core.CleanString(nc.Title)
	if code := strings.ToUpper(core.CleanString(nc.Code)); code != "" {
		crs.Code = code
	}
	crs.Description = core.CleanString(nc.Description)
	crs.Semester = core.NullString(nc.Semester)
	crs.Year = core.NullInt(nc.Year)
	crs.ProfessorID = core.NullInt(nc.ProfessorID)
	crs.UpdatedAt = time.Now().UTC()
	return svc.repo.Update(ctx, crs)
}

// Delete removes the course and all its lectures.
func (svc *Service) Delete(ctx context.Context, id int) error {
	if _, err := svc.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if svc.lectures != nil {
		if err := svc.lectures.RemoveByCourse(ctx, id); err != nil {
			return errors.Wrap(err, "removing course lectures")
		}
	}
	return svc.repo.Delete(ctx, id)
}
