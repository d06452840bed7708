package sqlxrepos

import (
	"context"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/professor"
)

const professorColumns = `id, name, title, email, specialization, website, profile_image, created_at`

type professorRepository struct {
	db core.DBClient
}

var _ professor.Repository = (*professorRepository)(nil)

func NewProfessorRepository(db core.DBClient) *professorRepository {
	return &professorRepository{db: db}
}

func (repo *professorRepository) QueryAll(ctx context.Context) ([]professor.Professor, error) {
	profs := make([]professor.Professor, 0)
	err := repo.db.Select(ctx, &profs, `SELECT `+professorColumns+` FROM professors ORDER BY name`)
	return profs, err
}

func (repo *professorRepository) GetByID(ctx context.Context, id int) (professor.Professor, error) {
	var prof professor.Professor
	err := get(ctx, repo.db, professor.ErrNotFound, &prof, `SELECT `+professorColumns+` FROM professors WHERE id = ?`, id)
	return prof, err
}

func (repo *professorRepository) Create(ctx context.Context, prof professor.Professor) (professor.Professor, error) {
	res, err := repo.db.Insert(
		ctx,
		`INSERT INTO professors (name, title, email, specialization, website, profile_image, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		prof.Name, prof.Title, prof.Email, prof.Specialization, prof.Website, prof.ProfileImage, prof.CreatedAt,
	)
	if err != nil {
		return professor.Professor{}, err
	}
	prof.ID = int(res.InsertID)
	return prof, nil
}

// Delete relies on ON DELETE SET NULL to detach the professor's projects and courses.
func (repo *professorRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, repo.db, professor.ErrNotFound, `DELETE FROM professors WHERE id = ?`, id)
}
