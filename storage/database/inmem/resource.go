package inmemdb

import (
	"context"
	"sort"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/resource"
)

type resourceRepository struct {
	db *DB
}

func NewResourceRepository(db *DB) resource.Repository {
	return &resourceRepository{db: db}
}

func (repo *resourceRepository) row(res *resource.Resource) resource.Resource {
	out := *res
	out.Tags = cloneList(res.Tags)
	out.CreatorName.Valid = false
	if res.CreatedBy.Valid {
		if usr, ok := repo.db.users[res.CreatedBy.Int]; ok {
			out.CreatorName.SetValid(usr.Name)
		}
	}
	return out
}

func (repo *resourceRepository) query(match func(*resource.Resource) bool) []resource.Resource {
	resources := make([]resource.Resource, 0)
	for _, res := range repo.db.resources {
		if match(res) {
			resources = append(resources, repo.row(res))
		}
	}
	// newest first
	sort.Slice(resources, func(i, j int) bool {
		if !resources[i].CreatedAt.Equal(resources[j].CreatedAt) {
			return resources[i].CreatedAt.After(resources[j].CreatedAt)
		}
		return resources[i].ID > resources[j].ID
	})
	return resources
}

func (repo *resourceRepository) QueryAll(_ context.Context) ([]resource.Resource, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(func(*resource.Resource) bool { return true }), nil
}

func (repo *resourceRepository) QueryByType(_ context.Context, typ string) ([]resource.Resource, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(func(res *resource.Resource) bool { return res.Type == typ }), nil
}

func (repo *resourceRepository) GetByID(_ context.Context, id int) (resource.Resource, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if res, ok := repo.db.resources[id]; ok {
		return repo.row(res), nil
	}
	return resource.Resource{}, resource.ErrNotFound
}

func (repo *resourceRepository) Create(_ context.Context, res resource.Resource) (resource.Resource, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	res.ID = repo.db.nextPK("resources")
	res.Tags = cloneList(res.Tags)
	repo.db.resources[res.ID] = &res
	return repo.row(&res), nil
}

func (repo *resourceRepository) Update(_ context.Context, res resource.Resource) (resource.Resource, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.resources[res.ID]
	if !ok {
		return resource.Resource{}, resource.ErrNotFoundForUpdate
	}
	orig.Title = res.Title
	orig.Description = res.Description
	orig.Type = res.Type
	orig.URL = res.URL
	orig.FilePath = res.FilePath
	orig.Tags = cloneList(res.Tags)
	orig.UpdatedAt = res.UpdatedAt
	return repo.row(orig), nil
}

func (repo *resourceRepository) Delete(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.resources[id]; !ok {
		return resource.ErrNotFound
	}
	delete(repo.db.resources, id)
	return nil
}
