// Package sqlxrepos implements the domain repositories on PostgreSQL.
package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
)

// get loads a single row into dest, returning notFound when there is none.
func get(ctx context.Context, db core.DBClient, notFound error, dest interface{}, query string, args ...interface{}) error {
	err := db.Get(ctx, dest, query, args...)
	if errors.Cause(err) == sql.ErrNoRows {
		return notFound
	}
	return err
}

// deleteByID deletes the row with the given id, returning notFound when nothing was deleted.
func deleteByID(ctx context.Context, db core.DBClient, notFound error, query string, id int) error {
	res, err := db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return notFound
	}
	return nil
}
