package inmemdb

import (
	"context"
	"sort"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/lecture"
)

type lectureRepository struct {
	db *DB
}

func NewLectureRepository(db *DB) lecture.Repository {
	return &lectureRepository{db: db}
}

func (repo *lectureRepository) row(lec *lecture.Lecture) lecture.Lecture {
	out := *lec
	out.CourseTitle.Valid = false
	if crs, ok := repo.db.courses[lec.CourseID]; ok {
		out.CourseTitle.SetValid(crs.Title)
	}
	return out
}

// byDate sorts lectures by date, undated ones last, then by id.
func byDate(lectures []lecture.Lecture, desc bool) {
	sort.Slice(lectures, func(i, j int) bool {
		a, b := lectures[i], lectures[j]
		switch {
		case a.LectureDate.Valid != b.LectureDate.Valid:
			return a.LectureDate.Valid
		case a.LectureDate.Valid && !a.LectureDate.Time.Equal(b.LectureDate.Time):
			if desc {
				return a.LectureDate.Time.After(b.LectureDate.Time)
			}
			return a.LectureDate.Time.Before(b.LectureDate.Time)
		case desc:
			return a.ID > b.ID
		default:
			return a.ID < b.ID
		}
	})
}

func (repo *lectureRepository) QueryAll(_ context.Context) ([]lecture.Lecture, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	lectures := make([]lecture.Lecture, 0, len(repo.db.lectures))
	for _, lec := range repo.db.lectures {
		lectures = append(lectures, repo.row(lec))
	}
	byDate(lectures, true)
	return lectures, nil
}

func (repo *lectureRepository) QueryByCourse(_ context.Context, courseID int) ([]lecture.Lecture, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	lectures := make([]lecture.Lecture, 0)
	for _, lec := range repo.db.lectures {
		if lec.CourseID == courseID {
			lectures = append(lectures, repo.row(lec))
		}
	}
	byDate(lectures, false)
	return lectures, nil
}

func (repo *lectureRepository) GetByID(_ context.Context, id int) (lecture.Lecture, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if lec, ok := repo.db.lectures[id]; ok {
		return repo.row(lec), nil
	}
	return lecture.Lecture{}, lecture.ErrNotFound
}

func (repo *lectureRepository) GetByFileName(_ context.Context, name string) (lecture.Lecture, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, lec := range repo.db.lectures {
		if lec.FileName.Valid && lec.FileName.String == name {
			return repo.row(lec), nil
		}
	}
	return lecture.Lecture{}, lecture.ErrNotFound
}

func (repo *lectureRepository) Create(_ context.Context, lec lecture.Lecture) (lecture.Lecture, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	lec.ID = repo.db.nextPK("lectures")
	repo.db.lectures[lec.ID] = &lec
	return repo.row(&lec), nil
}

func (repo *lectureRepository) Update(_ context.Context, lec lecture.Lecture) (lecture.Lecture, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.lectures[lec.ID]
	if !ok {
		return lecture.Lecture{}, lecture.ErrNotFound
	}
	lec.CreatedBy = orig.CreatedBy
	lec.CreatedAt = orig.CreatedAt
	*orig = lec
	return repo.row(orig), nil
}

func (repo *lectureRepository) Delete(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.lectures[id]; !ok {
		return lecture.ErrNotFound
	}
	delete(repo.db.lectures, id)
	return nil
}

func (repo *lectureRepository) DeleteByCourse(_ context.Context, courseID int) (int64, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	var n int64
	for id, lec := range repo.db.lectures {
		if lec.CourseID == courseID {
			delete(repo.db.lectures, id)
			n++
		}
	}
	return n, nil
}
