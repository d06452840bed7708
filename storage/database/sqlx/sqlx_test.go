package sqlxrepos

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/course"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/lecture"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/professor"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/project"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/resource"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/user"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/storage/database"
)

var (
	ctx = context.Background()
	now = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	courseCols = []string{
		"id", "title", "code", "description", "semester", "year", "professor_id", "professor_name",
		"created_by", "created_at", "updated_at",
	}
	projectCols = []string{
		"id", "title", "description", "type", "status", "start_date", "end_date", "professor_id",
		"professor_name", "technologies", "members", "publication_url", "created_at",
	}
)

func newMockDB(t *testing.T) (core.DBClient, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return database.NewClient(sqlx.NewDb(db, "postgres")), mock
}

func TestCourseRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCourseRepository(db)

	mock.ExpectQuery(`INSERT INTO courses .+ RETURNING id`).
		WithArgs("Intro to Crypto", "INT42", "", nil, nil, 3, 1, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery(`FROM courses c\s+LEFT JOIN professors p ON p.id = c.professor_id WHERE c.id = \$1`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(courseCols).
			AddRow(5, "Intro to Crypto", "INT42", "", nil, nil, 3, "Dr. Smith", 1, now, now))

	crs, err := repo.Create(ctx, course.Course{
		Title:       "Intro to Crypto",
		Code:        "INT42",
		ProfessorID: null.IntFrom(3),
		CreatedBy:   null.IntFrom(1),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, crs.ID)
	assert.Equal(t, null.StringFrom("Dr. Smith"), crs.ProfessorName)
	assert.False(t, crs.Semester.Valid)
}

func TestCourseRepository_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCourseRepository(db)

	mock.ExpectQuery(`FROM courses c`).WithArgs(999).WillReturnRows(sqlmock.NewRows(courseCols))
	mock.ExpectExec(`UPDATE courses SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM courses WHERE id = \$1`).WithArgs(999).WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.GetByID(ctx, 999)
	assert.Equal(t, course.ErrNotFound, err)

	_, err = repo.Update(ctx, course.Course{ID: 999, Title: "x", Code: "X"})
	assert.Equal(t, course.ErrNotFound, err)

	assert.Equal(t, course.ErrNotFound, repo.Delete(ctx, 999))
}

func TestProjectRepository_ListsRoundTrip(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepository(db)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO projects .+ RETURNING id`).
		WithArgs(
			"Lattice KEM", "", project.TypeResearch, project.StatusOngoing, start, nil, nil,
			`["Python","TensorFlow"]`, `["Alice","Bob"]`, nil, now,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`FROM projects p\s+LEFT JOIN professors prof`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(projectCols).AddRow(
			1, "Lattice KEM", "", project.TypeResearch, project.StatusOngoing, start, nil, nil, nil,
			[]byte(`["Python","TensorFlow"]`), `["Alice","Bob"]`, nil, now,
		))

	proj, err := repo.Create(ctx, project.Project{
		Title:        "Lattice KEM",
		Type:         project.TypeResearch,
		Status:       project.StatusOngoing,
		StartDate:    null.TimeFrom(start),
		Technologies: core.StringList{"Python", "TensorFlow"},
		Members:      core.StringList{"Alice", "Bob"},
		CreatedAt:    now,
	})
	require.NoError(t, err)
	assert.Equal(t, core.StringList{"Python", "TensorFlow"}, proj.Technologies)
	assert.Equal(t, core.StringList{"Alice", "Bob"}, proj.Members)
	assert.False(t, proj.ProfessorName.Valid)
}

func TestProfessorRepository(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfessorRepository(db)

	cols := []string{"id", "name", "title", "email", "specialization", "website", "profile_image", "created_at"}
	mock.ExpectQuery(`SELECT .+ FROM professors ORDER BY name`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(2, "Dr. Johnson", "Associate Professor", "johnson@example.edu", "Lattices", nil, nil, now).
			AddRow(1, "Dr. Smith", "Professor", "smith@example.edu", nil, nil, nil, now))
	mock.ExpectExec(`DELETE FROM professors WHERE id = \$1`).WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM professors WHERE id = \$1`).WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 0))

	profs, err := repo.QueryAll(ctx)
	require.NoError(t, err)
	require.Len(t, profs, 2)
	assert.Equal(t, "Dr. Johnson", profs[0].Name)
	assert.Equal(t, null.StringFrom("Lattices"), profs[0].Specialization)

	assert.NoError(t, repo.Delete(ctx, 1))
	assert.Equal(t, professor.ErrNotFound, repo.Delete(ctx, 1))
}

func TestLectureRepository(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLectureRepository(db)

	cols := []string{
		"id", "title", "course_id", "course_title", "lecture_date", "description", "notes_type", "notes_content",
		"slides_url", "video_url", "file_name", "file_original_name", "file_mime_type", "file_size", "created_by",
		"created_at", "updated_at",
	}
	mock.ExpectQuery(`WHERE l.file_name = \$1`).
		WithArgs("pdfFile-1700000000000-42.pdf").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			3, "Lecture 2: Block Ciphers", 1, "Intro to Crypto", nil, nil, "pdf", "slides.pdf", nil, nil,
			"pdfFile-1700000000000-42.pdf", "slides.pdf", "application/pdf", 1024, nil, now, now,
		))
	mock.ExpectQuery(`WHERE l.file_name = \$1`).
		WithArgs("missing.pdf").
		WillReturnRows(sqlmock.NewRows(cols))
	mock.ExpectExec(`DELETE FROM lectures WHERE course_id = \$1`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 2))

	lec, err := repo.GetByFileName(ctx, "pdfFile-1700000000000-42.pdf")
	require.NoError(t, err)
	assert.Equal(t, 2, lec.LectureNo())
	assert.Equal(t, "Block Ciphers", lec.Topic())
	assert.Equal(t, null.StringFrom("Intro to Crypto"), lec.CourseTitle)
	assert.EqualValues(t, 1024, lec.FileSize.Int64)

	_, err = repo.GetByFileName(ctx, "missing.pdf")
	assert.Equal(t, lecture.ErrNotFound, err)

	n, err := repo.DeleteByCourse(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestResourceRepository(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResourceRepository(db)

	cols := []string{
		"id", "title", "description", "type", "url", "file_path", "created_by", "creator_name", "tags",
		"created_at", "updated_at",
	}
	mock.ExpectQuery(`FROM resources r\s+LEFT JOIN users u ON u.id = r.created_by WHERE r.type = \$1`).
		WithArgs("pdf").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			1, "AES notes", nil, "pdf", nil, "uploads/resources/file-1-2.pdf", 1, "Mock User", `["aes"]`, now, now,
		))
	mock.ExpectExec(`UPDATE resources SET`).WillReturnResult(sqlmock.NewResult(0, 0))

	resources, err := repo.QueryByType(ctx, "pdf")
	require.NoError(t, err)
	require.Len(t, resources, 1)
	assert.Equal(t, null.StringFrom("Mock User"), resources[0].CreatorName)
	assert.Equal(t, core.StringList{"aes"}, resources[0].Tags)

	_, err = repo.Update(ctx, resource.Resource{ID: 7, Title: "x", Type: "pdf"})
	assert.Equal(t, resource.ErrNotFoundForUpdate, err)
}

func TestUserRepository(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	cols := []string{"id", "name", "email", "role", "password_hash", "created_at"}
	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("admin@example.com").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(1, "Mock User", "admin@example.com", "admin", []byte("hash"), now))
	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(cols))
	mock.ExpectQuery(`INSERT INTO users .+ RETURNING id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))

	usr, err := repo.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Mock", usr.FirstName())

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.Equal(t, user.ErrNotFound, err)

	usr, err = repo.Create(ctx, user.User{Name: "Jane Doe", Email: "jane@example.com", Role: user.RoleEditor, CreatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, 2, usr.ID)
}
