package schema

import (
	"context"
)

// Column kinds as reported by system_schema.columns.
const (
	KindPartitionKey = "partition_key"
	KindClustering   = "clustering"
	KindRegular      = "regular"
	KindStatic       = "static"
)

// ColumnDescriptor holds catalog metadata for a single column.
type ColumnDescriptor struct {
	Name     string // Column name
	Type     string // CQL type (e.g., text, list<int>)
	Kind     string // partition_key, clustering, regular or static
	Position int    // Position within the partition or clustering key, -1 otherwise
}

// IndexDescriptor holds catalog metadata for a single secondary index.
type IndexDescriptor struct {
	Name   string // Index name
	Target string // Indexed column name, already stripped of keys()/values()/entries()/full()
	Kind   string // COMPOSITES, KEYS or CUSTOM
}

// TableDescriptor is the raw description of a table as returned by the store's catalog.
// Columns keep the order the driver reported them in.
type TableDescriptor struct {
	Keyspace       string
	Name           string
	Columns        []ColumnDescriptor
	PartitionKeys  []ColumnDescriptor
	ClusteringKeys []ColumnDescriptor
	Indexes        []IndexDescriptor
}

// Catalog is the part of a store connection the metadata loader needs.
type Catalog interface {
	// Connect blocks until the connection is ready or fails.
	Connect(ctx context.Context) error
	// TableDescriptor fetches the catalog entry for keyspace.table.
	TableDescriptor(ctx context.Context, keyspace, table string) (*TableDescriptor, error)
}
