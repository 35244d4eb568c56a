package cassdao

import "cassdao/common"

// ErrNotFound is returned when the requested keyspace or table does not exist.
var ErrNotFound = common.ErrNotFound

// Additional package-level errors
var (
	ErrConfiguration = common.ErrConfiguration
	ErrConnection    = common.ErrConnection
	// ErrNoKeyspace is always reported together with ErrConfiguration.
	ErrNoKeyspace  = common.ErrNoKeyspace
	ErrNotLoaded   = common.ErrNotLoaded
	ErrNilSupplier = common.ErrNilSupplier
	ErrNilSession  = common.ErrNilSession
)
