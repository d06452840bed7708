package sqlxrepos

import (
	"context"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/resource"
)

const selectResources = `
	SELECT r.id, r.title, r.description, r.type, r.url, r.file_path, r.created_by, u.name AS creator_name,
		r.tags, r.created_at, r.updated_at
	FROM resources r
	LEFT JOIN users u ON u.id = r.created_by`

type resourceRepository struct {
	db core.DBClient
}

var _ resource.Repository = (*resourceRepository)(nil)

func NewResourceRepository(db core.DBClient) *resourceRepository {
	return &resourceRepository{db: db}
}

func (repo *resourceRepository) QueryAll(ctx context.Context) ([]resource.Resource, error) {
	resources := make([]resource.Resource, 0)
	err := repo.db.Select(ctx, &resources, selectResources+` ORDER BY r.created_at DESC, r.id DESC`)
	return resources, err
}

func (repo *resourceRepository) QueryByType(ctx context.Context, typ string) ([]resource.Resource, error) {
	resources := make([]resource.Resource, 0)
	err := repo.db.Select(
		ctx,
		&resources,
		selectResources+` WHERE r.type = ? ORDER BY r.created_at DESC, r.id DESC`,
		typ,
	)
	return resources, err
}

func (repo *resourceRepository) GetByID(ctx context.Context, id int) (resource.Resource, error) {
	var res resource.Resource
	err := get(ctx, repo.db, resource.ErrNotFound, &res, selectResources+` WHERE r.id = ?`, id)
	return res, err
}

func (repo *resourceRepository) Create(ctx context.Context, res resource.Resource) (resource.Resource, error) {
	mr, err := repo.db.Insert(
		ctx,
		`INSERT INTO resources (title, description, type, url, file_path, created_by, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.Title, res.Description, res.Type, res.URL, res.FilePath, res.CreatedBy, res.Tags,
		res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		return resource.Resource{}, err
	}
	return repo.GetByID(ctx, int(mr.InsertID))
}

func (repo *resourceRepository) Update(ctx context.Context, res resource.Resource) (resource.Resource, error) {
	mr, err := repo.db.Exec(
		ctx,
		`UPDATE resources SET title = ?, description = ?, type = ?, url = ?, file_path = ?, tags = ?, updated_at = ?
		WHERE id = ?`,
		res.Title, res.Description, res.Type, res.URL, res.FilePath, res.Tags, res.UpdatedAt, res.ID,
	)
	if err != nil {
		return resource.Resource{}, err
	}
	if mr.RowsAffected == 0 {
		return resource.Resource{}, resource.ErrNotFoundForUpdate
	}
	return repo.GetByID(ctx, res.ID)
}

func (repo *resourceRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, repo.db, resource.ErrNotFound, `DELETE FROM resources WHERE id = ?`, id)
}
