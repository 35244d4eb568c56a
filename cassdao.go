// Package cassdao adapts Cassandra tables to a generic DAO framework.
//
// An Adapter discovers a table's column classification (plain column,
// partition/clustering key, secondary index) once, caches it, and builds the
// CQL fragments a DAO needs: projection lists, named-parameter assignment
// lists and single predicates. Callers must await EnsureLoaded before using
// classification queries or the default projection; Refresh drops the cache.
//
// Classification queries are permissive: an unknown column is reported as
// neither key nor index, not as an error. Use Exists to tell the two apart.
package cassdao

// CreateDAO builds an Adapter for table and hands it to the DAO framework's
// constructor.
func CreateDAO[D any](table string, supplier SessionSupplier, opts *Options, factory DAOFactory[D]) D {
	return factory(table, New(table, supplier, opts), opts)
}
