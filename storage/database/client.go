package database

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
)

// Client runs the repositories' queries on a sqlx database.
// sql.ErrNoRows is returned as is so repositories can map it to their not-found error;
// every other driver failure is wrapped in a core.PersistenceError.
type Client struct {
	db *sqlx.DB
}

var _ core.DBClient = (*Client)(nil)

func NewClient(db *sqlx.DB) *Client {
	return &Client{db: db}
}

func (c *Client) DB() *sqlx.DB {
	return c.db
}

func (c *Client) Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	if err := c.db.SelectContext(ctx, dest, c.db.Rebind(query), args...); err != nil {
		return core.NewPersistenceError("select", err)
	}
	return nil
}

func (c *Client) Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	err := c.db.GetContext(ctx, dest, c.db.Rebind(query), args...)
	switch {
	case err == sql.ErrNoRows:
		return err
	case err != nil:
		return core.NewPersistenceError("get", err)
	}
	return nil
}

func (c *Client) Exec(ctx context.Context, query string, args ...interface{}) (core.MutationResult, error) {
	res, err := c.db.ExecContext(ctx, c.db.Rebind(query), args...)
	if err != nil {
		return core.MutationResult{}, core.NewPersistenceError("exec", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return core.MutationResult{}, core.NewPersistenceError("exec", err)
	}
	return core.MutationResult{RowsAffected: affected}, nil
}

// Insert runs an INSERT statement and reports the id of the new row.
func (c *Client) Insert(ctx context.Context, query string, args ...interface{}) (core.MutationResult, error) {
	query = strings.TrimRight(strings.TrimSpace(query), ";") + " RETURNING id"

	var id int64
	if err := c.db.QueryRowxContext(ctx, c.db.Rebind(query), args...).Scan(&id); err != nil {
		return core.MutationResult{}, core.NewPersistenceError("insert", err)
	}
	return core.MutationResult{InsertID: id, RowsAffected: 1}, nil
}
