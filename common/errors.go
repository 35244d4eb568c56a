package common

import "errors"

// ErrNotFound is returned when a requested keyspace or table does not exist in the catalog.
var ErrNotFound = errors.New("cassdao: requested keyspace or table not found")

// Additional package-level errors
var (
	// ErrConfiguration covers setup problems detected before any I/O, such as an
	// unqualified table name with no default keyspace.
	ErrConfiguration = errors.New("cassdao: invalid configuration")
	ErrConnection    = errors.New("cassdao: could not establish connection")
	ErrNoKeyspace    = errors.New("cassdao: empty keyspace")
	ErrNotLoaded     = errors.New("cassdao: table metadata not loaded")
	ErrNilSupplier   = errors.New("cassdao: session supplier not set")
	ErrNilSession    = errors.New("cassdao: session supplier returned nil")
)
