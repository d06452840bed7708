package sqlxrepos

import (
	"context"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/project"
)

const selectProjects = `
	SELECT p.id, p.title, p.description, p.type, p.status, p.start_date, p.end_date, p.professor_id,
		prof.name AS professor_name, p.technologies, p.members, p.publication_url, p.created_at
	FROM projects p
	LEFT JOIN professors prof ON prof.id = p.professor_id`

type projectRepository struct {
	db core.DBClient
}

var _ project.Repository = (*projectRepository)(nil)

func NewProjectRepository(db core.DBClient) *projectRepository {
	return &projectRepository{db: db}
}

func (repo *projectRepository) QueryAll(ctx context.Context) ([]project.Project, error) {
	projs := make([]project.Project, 0)
	err := repo.db.Select(ctx, &projs, selectProjects+` ORDER BY p.id`)
	return projs, err
}

func (repo *projectRepository) GetByID(ctx context.Context, id int) (project.Project, error) {
	var proj project.Project
	err := get(ctx, repo.db, project.ErrNotFound, &proj, selectProjects+` WHERE p.id = ?`, id)
	return proj, err
}

func (repo *projectRepository) Create(ctx context.Context, proj project.Project) (project.Project, error) {
	res, err := repo.db.Insert(
		ctx,
		`INSERT INTO projects (title, description, type, status, start_date, end_date, professor_id,
			technologies, members, publication_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		proj.Title, proj.Description, proj.Type, proj.Status, proj.StartDate, proj.EndDate, proj.ProfessorID,
		proj.Technologies, proj.Members, proj.PublicationURL, proj.CreatedAt,
	)
	if err != nil {
		return project.Project{}, err
	}
	return repo.GetByID(ctx, int(res.InsertID))
}

func (repo *projectRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, repo.db, project.ErrNotFound, `DELETE FROM projects WHERE id = ?`, id)
}
