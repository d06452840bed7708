package inmemdb

import (
	"context"
	"sort"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/course"
)

type courseRepository struct {
	db *DB
}

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) row(crs *course.Course) course.Course {
	out := *crs
	out.ProfessorName.Valid = false
	if crs.ProfessorID.Valid {
		if prof, ok := repo.db.professors[crs.ProfessorID.Int]; ok {
			out.ProfessorName.SetValid(prof.Name)
		}
	}
	return out
}

func (repo *courseRepository) QueryAll(_ context.Context) ([]course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	courses := make([]course.Course, 0, len(repo.db.courses))
	for _, crs := range repo.db.courses {
		courses = append(courses, repo.row(crs))
	}
	// newest first
	sort.Slice(courses, func(i, j int) bool {
		if !courses[i].CreatedAt.Equal(courses[j].CreatedAt) {
			return courses[i].CreatedAt.After(courses[j].CreatedAt)
		}
		return courses[i].ID > courses[j].ID
	})
	return courses, nil
}

func (repo *courseRepository) GetByID(_ context.Context, id int) (course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if crs, ok := repo.db.courses[id]; ok {
		return repo.row(crs), nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) Create(_ context.Context, crs course.Course) (course.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	crs.ID = repo.db.nextPK("courses")
	repo.db.courses[crs.ID] = &crs
	return repo.row(&crs), nil
}

func (repo *courseRepository) Update(_ context.Context, crs course.Course) (course.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.courses[crs.ID]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	orig.Title = crs.Title
	orig.Code = crs.Code
	orig.Description = crs.Description
	orig.Semester = crs.Semester
	orig.Year = crs.Year
	orig.ProfessorID = crs.ProfessorID
	orig.UpdatedAt = crs.UpdatedAt
	return repo.row(orig), nil
}

// Delete also deletes the course lectures.
func (repo *courseRepository) Delete(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.courses[id]; !ok {
		return course.ErrNotFound
	}
	delete(repo.db.courses, id)
	for lecID, lec := range repo.db.lectures {
		if lec.CourseID == id {
			delete(repo.db.lectures, lecID)
		}
	}
	return nil
}
