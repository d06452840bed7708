package sqlxrepos

import (
	"context"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/course"
)

const selectCourses = `
	SELECT c.id, c.title, c.code, c.description, c.semester, c.year, c.professor_id,
		p.name AS professor_name, c.created_by, c.created_at, c.updated_at
	FROM courses c
	LEFT JOIN professors p ON p.id = c.professor_id`

type courseRepository struct {
	db core.DBClient
}

var _ course.Repository = (*courseRepository)(nil)

func NewCourseRepository(db core.DBClient) *courseRepository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) QueryAll(ctx context.Context) ([]course.Course, error) {
	courses := make([]course.Course, 0)
	err := repo.db.Select(ctx, &courses, selectCourses+` ORDER BY c.created_at DESC, c.id DESC`)
	return courses, err
}

func (repo *courseRepository) GetByID(ctx context.Context, id int) (course.Course, error) {
	var crs course.Course
	err := get(ctx, repo.db, course.ErrNotFound, &crs, selectCourses+` WHERE c.id = ?`, id)
	return crs, err
}

func (repo *courseRepository) Create(ctx context.Context, crs course.Course) (course.Course, error) {
	res, err := repo.db.Insert(
		ctx,
		`INSERT INTO courses (title, code, description, semester, year, professor_id, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		crs.Title, crs.Code, crs.Description, crs.Semester, crs.Year, crs.ProfessorID, crs.CreatedBy,
		crs.CreatedAt, crs.UpdatedAt,
	)
	if err != nil {
		return course.Course{}, err
	}
	return repo.GetByID(ctx, int(res.InsertID))
}

func (repo *courseRepository) Update(ctx context.Context, crs course.Course) (course.Course, error) {
	res, err := repo.db.Exec(
		ctx,
		`UPDATE courses SET title = ?, code = ?, description = ?, semester = ?, year = ?, professor_id = ?,
			updated_at = ?
		WHERE id = ?`,
		crs.Title, crs.Code, crs.Description, crs.Semester, crs.Year, crs.ProfessorID, crs.UpdatedAt, crs.ID,
	)
	if err != nil {
		return course.Course{}, err
	}
	if res.RowsAffected == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return repo.GetByID(ctx, crs.ID)
}

func (repo *courseRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, repo.db, course.ErrNotFound, `DELETE FROM courses WHERE id = ?`, id)
}
