package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
)

func newMockClient(t *testing.T) (*Client, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewClient(sqlx.NewDb(db, "postgres")), mock
}

func TestClient_Insert(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectQuery("INSERT INTO professors (name) VALUES ($1) RETURNING id").
		WithArgs("Dr. Smith").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	res, err := client.Insert(context.Background(), "INSERT INTO professors (name) VALUES (?);", "Dr. Smith")
	require.NoError(t, err)
	assert.Equal(t, core.MutationResult{InsertID: 7, RowsAffected: 1}, res)
}

func TestClient_Exec(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectExec("DELETE FROM lectures WHERE course_id = $1").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM lectures WHERE course_id = $1").
		WithArgs(4).
		WillReturnError(errors.New("relation \"lectures\" does not exist"))

	res, err := client.Exec(context.Background(), "DELETE FROM lectures WHERE course_id = ?", 3)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.RowsAffected)

	_, err = client.Exec(context.Background(), "DELETE FROM lectures WHERE course_id = ?", 4)
	require.Error(t, err)
	assert.IsType(t, &core.PersistenceError{}, err)
	assert.Equal(t, "relation \"lectures\" does not exist", err.Error())
}

func TestClient_Get(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectQuery("SELECT id FROM courses WHERE id = $1").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery("SELECT id FROM courses WHERE id = $1").
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT id FROM courses WHERE id = $1").
		WithArgs(3).
		WillReturnError(sql.ErrConnDone)

	var id int
	require.NoError(t, client.Get(context.Background(), &id, "SELECT id FROM courses WHERE id = ?", 1))
	assert.Equal(t, 1, id)

	err := client.Get(context.Background(), &id, "SELECT id FROM courses WHERE id = ?", 2)
	assert.Equal(t, sql.ErrNoRows, err)

	err = client.Get(context.Background(), &id, "SELECT id FROM courses WHERE id = ?", 3)
	assert.IsType(t, &core.PersistenceError{}, err)
	assert.True(t, errors.Is(err, sql.ErrConnDone))
}

func TestClient_Select(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectQuery("SELECT name FROM professors ORDER BY name").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Dr. Johnson").AddRow("Dr. Smith"))

	var names []string
	require.NoError(t, client.Select(context.Background(), &names, "SELECT name FROM professors ORDER BY name"))
	assert.Equal(t, []string{"Dr. Johnson", "Dr. Smith"}, names)
}
