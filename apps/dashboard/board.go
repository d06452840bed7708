package dashboard

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
)

// API is the part of the Client the Board depends on.
type API interface {
	ListProfessors(ctx context.Context) ([]Professor, error)
	CreateProfessor(ctx context.Context, in ProfessorInput) (Professor, error)
	DeleteProfessor(ctx context.Context, id int) error

	ListProjects(ctx context.Context) ([]Project, error)
	CreateProject(ctx context.Context, in ProjectInput) (Project, error)
	DeleteProject(ctx context.Context, id int) error

	ListCourses(ctx context.Context) ([]Course, error)
	CreateCourse(ctx context.Context, in CourseInput) (Course, error)
	UpdateCourse(ctx context.Context, id int, in CourseInput) (Course, error)
	DeleteCourse(ctx context.Context, id int) error

	ListLectures(ctx context.Context) ([]Lecture, error)
	CreateLecture(ctx context.Context, in LectureInput, pdf *File) (Lecture, error)
	UpdateLecture(ctx context.Context, id int, in LectureInput, pdf *File) (Lecture, error)
	DeleteLecture(ctx context.Context, id int) error
}

var _ API = (*Client)(nil)

var errMissingID = errors.New("missing id")

// Board holds the lists shown by each tab. Mutations update the lists in place after the API
// accepted them, without reloading.
type Board struct {
	api          API
	logger       core.Logger
	placeholders bool

	mu         sync.RWMutex
	active     Tab
	banner     string
	professors []Professor
	projects   []Project
	courses    []Course
	lectures   []Lecture
}

// NewBoard returns an empty board. logger may be nil. With placeholders, the courses and lectures tabs show fixed
// sample records when their list fails to load or is empty.
func NewBoard(api API, logger core.Logger, placeholders bool) *Board {
	return &Board{
		api:          api,
		logger:       logger,
		placeholders: placeholders,
	}
}

func loadFailedBanner(tab Tab) string {
	return fmt.Sprintf("Failed to load %s. Please try again later.", tab)
}

func (b *Board) setBanner(msg string) {
	b.mu.Lock()
	b.banner = msg
	b.mu.Unlock()
}

// Activate switches to tab and replaces its list with the API's.
func (b *Board) Activate(ctx context.Context, tab Tab) error {
	b.mu.Lock()
	b.active = tab
	b.banner = ""
	b.mu.Unlock()

	var err error
	switch tab {
	case TabProfessors:
		var profs []Professor
		if profs, err = b.api.ListProfessors(ctx); err == nil {
			b.mu.Lock()
			b.professors = profs
			b.mu.Unlock()
		}
	case TabProjects:
		var projs []Project
		if projs, err = b.api.ListProjects(ctx); err == nil {
			b.mu.Lock()
			b.projects = projs
			b.mu.Unlock()
		}
	case TabCourses:
		var courses []Course
		courses, err = b.api.ListCourses(ctx)
		if b.placeholders && (err != nil || len(courses) == 0) {
			courses = placeholderCourses()
		}
		if err == nil || b.placeholders {
			b.mu.Lock()
			b.courses = courses
			b.mu.Unlock()
		}
	case TabLectures:
		var lectures []Lecture
		lectures, err = b.api.ListLectures(ctx)
		if b.placeholders && (err != nil || len(lectures) == 0) {
			lectures = placeholderLectures()
		}
		if err == nil || b.placeholders {
			b.mu.Lock()
			b.lectures = lectures
			b.mu.Unlock()
		}
	default:
		return errors.Errorf("unknown tab %q", tab)
	}

	if err != nil {
		b.logError(fmt.Sprintf("Error fetching %s", tab), err)
		// placeholder records hide the failure
		if !(b.placeholders && (tab == TabCourses || tab == TabLectures)) {
			b.setBanner(loadFailedBanner(tab))
		}
		return errors.Wrapf(err, "loading %s", tab)
	}
	return nil
}

func (b *Board) Active() Tab {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.active
}

// Banner is the error message to display, empty when there is none.
func (b *Board) Banner() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.banner
}

func (b *Board) Professors() []Professor {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Professor(nil), b.professors...)
}

func (b *Board) Projects() []Project {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Project(nil), b.projects...)
}

func (b *Board) Courses() []Course {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Course(nil), b.courses...)
}

func (b *Board) Lectures() []Lecture {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Lecture(nil), b.lectures...)
}

func (b *Board) logError(msg string, err error) {
	if b.logger != nil {
		b.logger.Error(msg, err)
	}
}

// failed records a failed mutation in the banner.
func (b *Board) failed(msg string, err error) error {
	b.logError(msg, err)
	b.setBanner(msg)
	return errors.Wrap(err, msg)
}

// Professors

func (b *Board) AddProfessor(ctx context.Context, in ProfessorInput) (Professor, error) {
	prof, err := b.api.CreateProfessor(ctx, in)
	if err != nil {
		return Professor{}, b.failed("Failed to add professor", err)
	}
	b.mu.Lock()
	b.professors = append(b.professors, prof)
	b.mu.Unlock()
	return prof, nil
}

func (b *Board) RemoveProfessor(ctx context.Context, id int) error {
	if id == 0 {
		b.setBanner("Cannot delete professor: ID is missing")
		return errMissingID
	}
	b.setBanner("")
	if err := b.api.DeleteProfessor(ctx, id); err != nil {
		return b.failed("Failed to delete professor", err)
	}
	b.mu.Lock()
	b.professors = filter(b.professors, func(p Professor) bool { return p.ID != id })
	b.mu.Unlock()
	return nil
}

// Projects

func (b *Board) AddProject(ctx context.Context, in ProjectInput) (Project, error) {
	proj, err := b.api.CreateProject(ctx, in)
	if err != nil {
		return Project{}, b.failed("Failed to add project", err)
	}
	b.mu.Lock()
	b.projects = append(b.projects, proj)
	b.mu.Unlock()
	return proj, nil
}

func (b *Board) RemoveProject(ctx context.Context, id int) error {
	if id == 0 {
		b.setBanner("Cannot delete project: ID is missing")
		return errMissingID
	}
	b.setBanner("")
	if err := b.api.DeleteProject(ctx, id); err != nil {
		return b.failed("Failed to delete project", err)
	}
	b.mu.Lock()
	b.projects = filter(b.projects, func(p Project) bool { return p.ID != id })
	b.mu.Unlock()
	return nil
}

// Courses

func (b *Board) AddCourse(ctx context.Context, in CourseInput) (Course, error) {
	crs, err := b.api.CreateCourse(ctx, in)
	if err != nil {
		return Course{}, b.failed("Failed to add course", err)
	}
	b.mu.Lock()
	b.courses = append(b.courses, crs)
	b.mu.Unlock()
	return crs, nil
}

func (b *Board) EditCourse(ctx context.Context, id int, in CourseInput) (Course, error) {
	crs, err := b.api.UpdateCourse(ctx, id, in)
	if err != nil {
		return Course{}, b.failed("Failed to update course", err)
	}
	b.mu.Lock()
	for i := range b.courses {
		if b.courses[i].ID == crs.ID {
			b.courses[i] = crs
		}
	}
	b.mu.Unlock()
	return crs, nil
}

// RemoveCourse also drops the course lectures, which the API deletes with it.
func (b *Board) RemoveCourse(ctx context.Context, id int) error {
	if err := b.api.DeleteCourse(ctx, id); err != nil {
		return b.failed("Failed to delete course. Please try again later.", err)
	}
	b.mu.Lock()
	b.courses = filter(b.courses, func(c Course) bool { return c.ID != id })
	b.lectures = filter(b.lectures, func(l Lecture) bool { return l.CourseID != id })
	b.mu.Unlock()
	return nil
}

// Lectures

func (b *Board) AddLecture(ctx context.Context, in LectureInput, pdf *File) (Lecture, error) {
	lec, err := b.api.CreateLecture(ctx, in, pdf)
	if err != nil {
		return Lecture{}, b.failed("Failed to add lecture", err)
	}
	b.mu.Lock()
	b.lectures = append(b.lectures, lec)
	b.addCourseLecture(lec)
	b.mu.Unlock()
	return lec, nil
}

func (b *Board) EditLecture(ctx context.Context, id int, in LectureInput, pdf *File) (Lecture, error) {
	lec, err := b.api.UpdateLecture(ctx, id, in, pdf)
	if err != nil {
		return Lecture{}, b.failed("Failed to update lecture", err)
	}
	b.mu.Lock()
	for i := range b.lectures {
		if b.lectures[i].ID == lec.ID {
			b.lectures[i] = lec
		}
	}
	// the lecture may have moved to another course
	b.dropCourseLecture(lec.ID)
	b.addCourseLecture(lec)
	b.mu.Unlock()
	return lec, nil
}

func (b *Board) RemoveLecture(ctx context.Context, id int) error {
	if err := b.api.DeleteLecture(ctx, id); err != nil {
		return b.failed("Failed to delete lecture. Please try again later.", err)
	}
	b.mu.Lock()
	b.lectures = filter(b.lectures, func(l Lecture) bool { return l.ID != id })
	b.dropCourseLecture(id)
	b.mu.Unlock()
	return nil
}

// addCourseLecture lists lec inside its course, in lecture number order. Callers hold mu.
func (b *Board) addCourseLecture(lec Lecture) {
	for i := range b.courses {
		crs := &b.courses[i]
		if crs.ID != lec.CourseID {
			continue
		}
		// copied so snapshots handed out by Courses stay as they were
		lectures := append(make([]CourseLecture, 0, len(crs.Lectures)+1), crs.Lectures...)
		lectures = append(lectures, courseLectureOf(lec))
		sort.SliceStable(lectures, func(x, y int) bool { return lectures[x].LectureNo < lectures[y].LectureNo })
		crs.Lectures = lectures
	}
}

// dropCourseLecture removes lecture id from whichever course lists it. Callers hold mu.
func (b *Board) dropCourseLecture(id int) {
	for i := range b.courses {
		b.courses[i].Lectures = filter(b.courses[i].Lectures, func(l CourseLecture) bool { return l.ID != id })
	}
}

func courseLectureOf(lec Lecture) CourseLecture {
	date := lec.LectureDate.String
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		date = t.Format(core.DateLayout)
	}
	return CourseLecture{
		ID:        lec.ID,
		LectureNo: lec.LectureNo,
		Topic:     lec.Topic,
		Date:      date,
	}
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := items[:0:0]
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
