package lecture

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/course"
)

const FileField = "pdfFile"

var (
	ErrNotFound     = core.NewNotFoundError("Lecture not found")
	ErrFileNotFound = core.NewNotFoundError("File not found")

	errInvalidNotesType = errors.New("notes type must be one of: url, pdf")
	errPDFWithoutFile   = "a file is required for pdf notes"
)

type (
	Repository interface {
		QueryAll(ctx context.Context) ([]Lecture, error)
		QueryByCourse(ctx context.Context, courseID int) ([]Lecture, error)
		GetByID(ctx context.Context, id int) (Lecture, error)
		GetByFileName(ctx context.Context, name string) (Lecture, error)
		Create(ctx context.Context, lec Lecture) (Lecture, error)
		Update(ctx context.Context, lec Lecture) (Lecture, error)
		Delete(ctx context.Context, id int) error
		DeleteByCourse(ctx context.Context, courseID int) (int64, error)
	}

	// CourseFinder resolves the course a lecture belongs to.
	CourseFinder interface {
		GetByID(ctx context.Context, id int) (course.Course, error)
	}

	Service struct {
		repo    Repository
		courses CourseFinder
		files   core.FileStore
		policy  core.UploadPolicy
		root    string
		logger  core.Logger
	}
)

func NewService(
	repo Repository,
	courses CourseFinder,
	files core.FileStore,
	policy core.UploadPolicy,
	root string,
	logger core.Logger,
) *Service {
	return &Service{
		repo:    repo,
		courses: courses,
		files:   files,
		policy:  policy,
		root:    root,
		logger:  logger,
	}
}

func (svc *Service) Policy() core.UploadPolicy {
	return svc.policy
}

// NotesOf returns the tagged notes of the lecture.
func (svc *Service) NotesOf(lec Lecture) Notes {
	return lec.Notes(svc.policy, svc.root)
}

// FileOf returns the descriptor of the lecture upload, if any.
func (svc *Service) FileOf(lec Lecture) *core.FileDescriptor {
	return lec.File(svc.policy, svc.root)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Lecture, error) {
	return svc.repo.QueryAll(ctx)
}

func (svc *Service) QueryByCourse(ctx context.Context, courseID int) ([]Lecture, error) {
	return svc.repo.QueryByCourse(ctx, courseID)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Lecture, error) {
	return svc.repo.GetByID(ctx, id)
}

func (svc *Service) checkCourse(ctx context.Context, id int) (course.Course, error) {
	crs, err := svc.courses.GetByID(ctx, id)
	if err != nil {
		if core.IsNotFound(err) {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, errors.Wrap(err, "finding course")
	}
	return crs, nil
}

func (svc *Service) save(ctx context.Context, upload *multipart.FileHeader) (*core.FileDescriptor, error) {
	if upload == nil {
		return nil, nil
	}
	fd, err := svc.files.Save(ctx, FileField, upload, svc.policy)
	if err != nil {
		return nil, err
	}
	return &fd, nil
}

func (svc *Service) remove(name string) {
	if name == "" {
		return
	}
	if err := svc.files.Remove(svc.policy, name); err != nil && svc.logger != nil {
		svc.logger.Warn("could not remove lecture file", err)
	}
}

// fill copies the editable fields of nl into lec. fd is the new upload, if any.
func (svc *Service) fill(lec *Lecture, nl NewLecture, fd *core.FileDescriptor) error {
	date, err := core.ParseDate(nl.LectureDate)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "lecture_date", Error: err.Error()})
	}

	lec.Title = Title(nl.LectureNo, core.CleanString(nl.Topic))
	lec.CourseID = nl.CourseID
	lec.LectureDate = date
	lec.Description = core.NullString(nl.Description)
	lec.SlidesURL = core.NullString(nl.SlidesURL)
	lec.VideoURL = core.NullString(nl.VideoURL)

	switch {
	case fd != nil:
		lec.setFile(fd)
		lec.setNotes(PDFNotes(*fd))
		lec.SlidesURL = core.NullString(fd.URL)
	case nl.Notes != nil && nl.Notes.Type == NotesPDF:
		if !lec.HasFile() {
			return core.NewValidationError(
				errors.New(errPDFWithoutFile),
				core.FieldError{Field: FileField, Error: errPDFWithoutFile},
			)
		}
		// keep the current upload
	case nl.Notes != nil && !nl.Notes.IsZero():
		lec.setFile(nil)
		lec.setNotes(URLNotes(core.CleanString(nl.Notes.Content)))
	case !lec.NotesType.Valid:
		lec.setNotes(URLNotes(""))
	}
	return nil
}

// Create stores the lecture and its optional upload. Nothing is written when validation fails.
func (svc *Service) Create(ctx context.Context, nl NewLecture, upload *multipart.FileHeader) (Lecture, error) {
	crs, err := svc.checkCourse(ctx, nl.CourseID)
	if err != nil {
		return Lecture{}, err
	}
	if upload == nil && nl.Notes != nil && nl.Notes.Type == NotesPDF {
		return Lecture{}, core.NewValidationError(
			errors.New(errPDFWithoutFile),
			core.FieldError{Field: FileField, Error: errPDFWithoutFile},
		)
	}

	fd, err := svc.save(ctx, upload)
	if err != nil {
		return Lecture{}, errors.Wrap(err, "saving upload")
	}

	now := time.Now().UTC()
	lec := Lecture{
		CreatedBy: core.NullInt(nl.CreatedBy),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = svc.fill(&lec, nl, fd); err != nil {
		svc.removeDescriptor(fd)
		return Lecture{}, err
	}

	lec, err = svc.repo.Create(ctx, lec)
	if err != nil {
		svc.removeDescriptor(fd)
		return Lecture{}, err
	}
	lec.CourseTitle = core.NullString(crs.Title)
	return lec, nil
}

// Update replaces all the editable fields of the lecture. A new upload replaces the previous file.
func (svc *Service) Update(ctx context.Context, id int, nl NewLecture, upload *multipart.FileHeader) (Lecture, error) {
	lec, err := svc.repo.GetByID(ctx, id)
	if err != nil {
		return Lecture{}, err
	}
	crs, err := svc.checkCourse(ctx, nl.CourseID)
	if err != nil {
		return Lecture{}, err
	}

	fd, err := svc.save(ctx, upload)
	if err != nil {
		return Lecture{}, errors.Wrap(err, "saving upload")
	}

	prevFile := lec.FileName.String
	if err = svc.fill(&lec, nl, fd); err != nil {
		svc.removeDescriptor(fd)
		return Lecture{}, err
	}
	lec.UpdatedAt = time.Now().UTC()

	lec, err = svc.repo.Update(ctx, lec)
	if err != nil {
		svc.removeDescriptor(fd)
		return Lecture{}, err
	}
	if prevFile != "" && prevFile != lec.FileName.String {
		svc.remove(prevFile)
	}
	lec.CourseTitle = core.NullString(crs.Title)
	return lec, nil
}

func (svc *Service) removeDescriptor(fd *core.FileDescriptor) {
	if fd != nil {
		svc.remove(fd.Filename)
	}
}

// Delete removes the lecture and its stored file.
func (svc *Service) Delete(ctx context.Context, id int) error {
	lec, err := svc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err = svc.repo.Delete(ctx, id); err != nil {
		return err
	}
	svc.remove(lec.FileName.String)
	return nil
}

// RemoveByCourse deletes all the lectures of a course along with their files.
func (svc *Service) RemoveByCourse(ctx context.Context, courseID int) error {
	lectures, err := svc.repo.QueryByCourse(ctx, courseID)
	if err != nil {
		return errors.Wrap(err, "querying course lectures")
	}
	if _, err = svc.repo.DeleteByCourse(ctx, courseID); err != nil {
		return errors.Wrap(err, "deleting course lectures")
	}
	for _, lec := range lectures {
		svc.remove(lec.FileName.String)
	}
	return nil
}

// Download is a stored lecture file ready to be streamed.
type Download struct {
	File         core.StoredFile
	OriginalName string
	ContentType  string
}

// OpenFile opens a stored lecture file by its stored name.
func (svc *Service) OpenFile(ctx context.Context, name string) (Download, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return Download{}, ErrFileNotFound
	}

	originalName := name
	if lec, err := svc.repo.GetByFileName(ctx, name); err == nil {
		originalName = lec.FileOriginalName.String
	} else if !core.IsNotFound(err) {
		return Download{}, errors.Wrap(err, "finding lecture by file name")
	}

	file, err := svc.files.Open(svc.policy, name)
	if err != nil {
		return Download{}, ErrFileNotFound
	}
	return Download{
		File:         file,
		OriginalName: originalName,
		ContentType:  core.ContentTypeFor(name),
	}, nil
}
