package schema

import (
	"strings"
)

// TableInfo is the classified, immutable view of a table's columns.
// Built once per successful load by Classify.
type TableInfo struct {
	Keyspace string
	Name     string

	columns       map[string]Classification
	order         []string
	columnsString string
}

// Classify builds a TableInfo from a raw descriptor. Every column starts out
// Plain; partition and clustering keys are promoted to PrimaryKey, then index
// targets that are still Plain are promoted to Index. Key and index names that
// are not among the table's columns are ignored.
func Classify(desc *TableDescriptor) *TableInfo {
	info := &TableInfo{
		Keyspace: desc.Keyspace,
		Name:     desc.Name,
		columns:  make(map[string]Classification, len(desc.Columns)),
		order:    make([]string, 0, len(desc.Columns)),
	}

	for _, col := range desc.Columns {
		if _, seen := info.columns[col.Name]; !seen {
			info.order = append(info.order, col.Name)
		}
		info.columns[col.Name] = Plain
	}
	info.columnsString = strings.Join(info.order, ",")

	promote := func(name string, to Classification) {
		if info.columns[name] == Plain {
			info.columns[name] = to
		}
	}
	for _, col := range desc.PartitionKeys {
		promote(col.Name, PrimaryKey)
	}
	for _, col := range desc.ClusteringKeys {
		promote(col.Name, PrimaryKey)
	}
	// Keys are settled first so an indexed key column stays a key.
	for _, idx := range desc.Indexes {
		promote(idx.Target, Index)
	}
	return info
}

// Classification returns the column's classification and whether it exists.
func (t *TableInfo) Classification(column string) (Classification, bool) {
	c, ok := t.columns[column]
	return c, ok
}

// Columns returns the column names in descriptor order.
func (t *TableInfo) Columns() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// ColumnsString returns the comma-joined column list in descriptor order.
func (t *TableInfo) ColumnsString() string {
	return t.columnsString
}

// PrimaryKeys returns the key columns in descriptor order.
func (t *TableInfo) PrimaryKeys() []string {
	return t.filter(PrimaryKey)
}

// Indexes returns the indexed non-key columns in descriptor order.
func (t *TableInfo) Indexes() []string {
	return t.filter(Index)
}

func (t *TableInfo) filter(c Classification) []string {
	var out []string
	for _, name := range t.order {
		if t.columns[name] == c {
			out = append(out, name)
		}
	}
	return out
}

// QualifiedName returns keyspace.table.
func (t *TableInfo) QualifiedName() QualifiedName {
	return QualifiedName{Keyspace: t.Keyspace, Table: t.Name}
}
