package inmemdb

import (
	"context"
	"sort"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/project"
)

type projectRepository struct {
	db *DB
}

func NewProjectRepository(db *DB) project.Repository {
	return &projectRepository{db: db}
}

// row copies a stored project and joins its professor name. Must be called with the lock held.
func (repo *projectRepository) row(proj *project.Project) project.Project {
	out := *proj
	out.Technologies = cloneList(proj.Technologies)
	out.Members = cloneList(proj.Members)
	out.ProfessorName.Valid = false
	if proj.ProfessorID.Valid {
		if prof, ok := repo.db.professors[proj.ProfessorID.Int]; ok {
			out.ProfessorName.SetValid(prof.Name)
		}
	}
	return out
}

func (repo *projectRepository) QueryAll(_ context.Context) ([]project.Project, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	projs := make([]project.Project, 0, len(repo.db.projects))
	for _, proj := range repo.db.projects {
		projs = append(projs, repo.row(proj))
	}
	sort.Slice(projs, func(i, j int) bool { return projs[i].ID < projs[j].ID })
	return projs, nil
}

func (repo *projectRepository) GetByID(_ context.Context, id int) (project.Project, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if proj, ok := repo.db.projects[id]; ok {
		return repo.row(proj), nil
	}
	return project.Project{}, project.ErrNotFound
}

func (repo *projectRepository) Create(_ context.Context, proj project.Project) (project.Project, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	proj.ID = repo.db.nextPK("projects")
	proj.Technologies = cloneList(proj.Technologies)
	proj.Members = cloneList(proj.Members)
	repo.db.projects[proj.ID] = &proj
	return repo.row(&proj), nil
}

func (repo *projectRepository) Delete(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.projects[id]; !ok {
		return project.ErrNotFound
	}
	delete(repo.db.projects, id)
	return nil
}
