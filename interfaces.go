// interfaces.go
// Core interfaces for cassdao: Session, DAOAdapter and the types that cross them.
// These are public and intended for use by DAO framework and driver developers.

package cassdao

import (
	"context"

	"cassdao/schema"
)

// Session defines the interface for store drivers.
type Session interface {
	schema.Catalog
	// Keyspace is the session's active keyspace, empty if none.
	Keyspace() string
	// Execute runs query with named parameters (":name") bound from params.
	Execute(ctx context.Context, query string, params map[string]interface{}, opts *QueryOptions) (*ResultSet, error)
}

// SessionSupplier returns the session to use for one call. The adapter never
// closes what it returns.
type SessionSupplier func() Session

// Row is a single result row keyed by column name.
type Row = map[string]interface{}

// ResultSet is the full result of an Execute call.
type ResultSet struct {
	Rows      []Row
	Columns   []string // Column names in result order
	PageState []byte   // Paging state for the next page, nil when exhausted
}

// QueryOptions are passed through to the driver uninterpreted.
type QueryOptions struct {
	Consistency string // e.g. "QUORUM", "LOCAL_ONE"; empty keeps the session default
	PageSize    int
	PageState   []byte
	Idempotent  bool
}

// Options is an opaque configuration record handed to the DAO framework.
// The adapter stores it and never reads it.
type Options struct {
	Values map[string]interface{}
}

// DAOAdapter defines the capability contract a DAO framework consumes.
type DAOAdapter interface {
	EnsureLoaded(ctx context.Context) error
	Refresh()

	IsPrimaryKey(column string) bool
	IsIndex(column string) bool
	Exists(column string) bool

	SelectColumns(columns []string) string
	ColumnsPair(columns []string) string
	WherePair(field string, value interface{}) string

	Execute(ctx context.Context, query string, params map[string]interface{}, opts *QueryOptions) ([]Row, *ResultSet, error)
}

// DAOFactory is a DAO framework constructor taking a table and its adapter.
type DAOFactory[D any] func(table string, adapter DAOAdapter, opts *Options) D
