package sqlxrepos

import (
	"context"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/lecture"
)

const selectLectures = `
	SELECT l.id, l.title, l.course_id, c.title AS course_title, l.lecture_date, l.description,
		l.notes_type, l.notes_content, l.slides_url, l.video_url, l.file_name, l.file_original_name,
		l.file_mime_type, l.file_size, l.created_by, l.created_at, l.updated_at
	FROM lectures l
	LEFT JOIN courses c ON c.id = l.course_id`

type lectureRepository struct {
	db core.DBClient
}

var _ lecture.Repository = (*lectureRepository)(nil)

func NewLectureRepository(db core.DBClient) *lectureRepository {
	return &lectureRepository{db: db}
}

func (repo *lectureRepository) QueryAll(ctx context.Context) ([]lecture.Lecture, error) {
	lectures := make([]lecture.Lecture, 0)
	err := repo.db.Select(ctx, &lectures, selectLectures+` ORDER BY l.lecture_date DESC NULLS LAST, l.id DESC`)
	return lectures, err
}

func (repo *lectureRepository) QueryByCourse(ctx context.Context, courseID int) ([]lecture.Lecture, error) {
	lectures := make([]lecture.Lecture, 0)
	err := repo.db.Select(
		ctx,
		&lectures,
		selectLectures+` WHERE l.course_id = ? ORDER BY l.lecture_date ASC NULLS LAST, l.id`,
		courseID,
	)
	return lectures, err
}

func (repo *lectureRepository) GetByID(ctx context.Context, id int) (lecture.Lecture, error) {
	var lec lecture.Lecture
	err := get(ctx, repo.db, lecture.ErrNotFound, &lec, selectLectures+` WHERE l.id = ?`, id)
	return lec, err
}

func (repo *lectureRepository) GetByFileName(ctx context.Context, name string) (lecture.Lecture, error) {
	var lec lecture.Lecture
	err := get(ctx, repo.db, lecture.ErrNotFound, &lec, selectLectures+` WHERE l.file_name = ?`, name)
	return lec, err
}

func (repo *lectureRepository) Create(ctx context.Context, lec lecture.Lecture) (lecture.Lecture, error) {
	res, err := repo.db.Insert(
		ctx,
		`INSERT INTO lectures (title, course_id, lecture_date, description, notes_type, notes_content, slides_url,
			video_url, file_name, file_original_name, file_mime_type, file_size, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lec.Title, lec.CourseID, lec.LectureDate, lec.Description, lec.NotesType, lec.NotesContent, lec.SlidesURL,
		lec.VideoURL, lec.FileName, lec.FileOriginalName, lec.FileMimeType, lec.FileSize, lec.CreatedBy,
		lec.CreatedAt, lec.UpdatedAt,
	)
	if err != nil {
		return lecture.Lecture{}, err
	}
	return repo.GetByID(ctx, int(res.InsertID))
}

func (repo *lectureRepository) Update(ctx context.Context, lec lecture.Lecture) (lecture.Lecture, error) {
	res, err := repo.db.Exec(
		ctx,
		`UPDATE lectures SET title = ?, course_id = ?, lecture_date = ?, description = ?, notes_type = ?,
			notes_content = ?, slides_url = ?, video_url = ?, file_name = ?, file_original_name = ?,
			file_mime_type = ?, file_size = ?, updated_at = ?
		WHERE id = ?`,
		lec.Title, lec.CourseID, lec.LectureDate, lec.Description, lec.NotesType, lec.NotesContent, lec.SlidesURL,
		lec.VideoURL, lec.FileName, lec.FileOriginalName, lec.FileMimeType, lec.FileSize, lec.UpdatedAt, lec.ID,
	)
	if err != nil {
		return lecture.Lecture{}, err
	}
	if res.RowsAffected == 0 {
		return lecture.Lecture{}, lecture.ErrNotFound
	}
	return repo.GetByID(ctx, lec.ID)
}

func (repo *lectureRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, repo.db, lecture.ErrNotFound, `DELETE FROM lectures WHERE id = ?`, id)
}

func (repo *lectureRepository) DeleteByCourse(ctx context.Context, courseID int) (int64, error) {
	res, err := repo.db.Exec(ctx, `DELETE FROM lectures WHERE course_id = ?`, courseID)
	return res.RowsAffected, err
}
