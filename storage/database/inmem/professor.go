package inmemdb

import (
	"context"
	"sort"

	"github.com/volatiletech/null/v8"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/professor"
)

type professorRepository struct {
	db *DB
}

func NewProfessorRepository(db *DB) professor.Repository {
	return &professorRepository{db: db}
}

func (repo *professorRepository) QueryAll(_ context.Context) ([]professor.Professor, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	profs := make([]professor.Professor, 0, len(repo.db.professors))
	for _, prof := range repo.db.professors {
		profs = append(profs, *prof)
	}
	sort.Slice(profs, func(i, j int) bool { return profs[i].Name < profs[j].Name })
	return profs, nil
}

func (repo *professorRepository) GetByID(_ context.Context, id int) (professor.Professor, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if prof, ok := repo.db.professors[id]; ok {
		return *prof, nil
	}
	return professor.Professor{}, professor.ErrNotFound
}

func (repo *professorRepository) Create(_ context.Context, prof professor.Professor) (professor.Professor, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	prof.ID = repo.db.nextPK("professors")
	repo.db.professors[prof.ID] = &prof
	return prof, nil
}

// Delete detaches the professor's projects and courses.
func (repo *professorRepository) Delete(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.professors[id]; !ok {
		return professor.ErrNotFound
	}
	delete(repo.db.professors, id)

	for _, proj := range repo.db.projects {
		if proj.ProfessorID.Valid && proj.ProfessorID.Int == id {
			proj.ProfessorID = null.Int{}
		}
	}
	for _, crs := range repo.db.courses {
		if crs.ProfessorID.Valid && crs.ProfessorID.Int == id {
			crs.ProfessorID = null.Int{}
		}
	}
	return nil
}
