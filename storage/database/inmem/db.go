// Package inmemdb is a process-local store used in development and tests.
package inmemdb

import (
	"sync"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/course"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/lecture"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/professor"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/project"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/resource"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/user"
)

// DB holds one table per entity. All tables share a lock so joins see a consistent state.
type DB struct {
	mutex sync.RWMutex

	pkCount    map[string]int
	users      map[int]*user.User
	professors map[int]*professor.Professor
	projects   map[int]*project.Project
	courses    map[int]*course.Course
	lectures   map[int]*lecture.Lecture
	resources  map[int]*resource.Resource
}

func Open() (*DB, error) {
	db := &DB{
		pkCount:    make(map[string]int),
		users:      make(map[int]*user.User),
		professors: make(map[int]*professor.Professor),
		projects:   make(map[int]*project.Project),
		courses:    make(map[int]*course.Course),
		lectures:   make(map[int]*lecture.Lecture),
		resources:  make(map[int]*resource.Resource),
	}
	return db, nil
}

// nextPK must be called with the write lock held.
func (db *DB) nextPK(table string) int {
	db.pkCount[table]++
	return db.pkCount[table]
}

func cloneList(l core.StringList) core.StringList {
	out := make(core.StringList, len(l))
	copy(out, l)
	return out
}
