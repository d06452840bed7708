package core

import "context"

type (
	// MutationResult holds the metadata of an INSERT, UPDATE or DELETE statement.
	MutationResult struct {
		InsertID     int64
		RowsAffected int64
	}

	// DBClient executes positional-parameter SQL statements.
	// Queries use `?` placeholders; implementations rebind them for their driver.
	DBClient interface {
		Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		Exec(ctx context.Context, query string, args ...interface{}) (MutationResult, error)
		Insert(ctx context.Context, query string, args ...interface{}) (MutationResult, error)
	}
)
