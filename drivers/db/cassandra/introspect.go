package cassandra

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cassdao"
	"cassdao/schema"
)

const (
	selectColumnsCQL = `SELECT column_name, kind, position, type FROM system_schema.columns WHERE keyspace_name = ? AND table_name = ?`
	selectIndexesCQL = `SELECT index_name, kind, options FROM system_schema.indexes WHERE keyspace_name = ? AND table_name = ?`
)

// TableDescriptor reads the columns and secondary indexes of keyspace.table
// from system_schema. A table with no column rows does not exist and is
// reported as cassdao.ErrNotFound.
func (s *CassandraSession) TableDescriptor(ctx context.Context, keyspace, table string) (*schema.TableDescriptor, error) {
	session, err := s.gocqlSession(ctx)
	if err != nil {
		return nil, err
	}

	desc := &schema.TableDescriptor{Keyspace: keyspace, Name: table}

	// 1. Columns
	iter := session.Query(selectColumnsCQL, keyspace, table).WithContext(ctx).Iter()
	var name, kind, cqlType string
	var position int
	for iter.Scan(&name, &kind, &position, &cqlType) {
		col := schema.ColumnDescriptor{Name: name, Type: cqlType, Kind: strings.ToLower(kind), Position: position}
		desc.Columns = append(desc.Columns, col)
		switch col.Kind {
		case schema.KindPartitionKey:
			desc.PartitionKeys = append(desc.PartitionKeys, col)
		case schema.KindClustering:
			desc.ClusteringKeys = append(desc.ClusteringKeys, col)
		}
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("reading system_schema.columns: %w", err)
	}
	if len(desc.Columns) == 0 {
		return nil, fmt.Errorf("%w: table %s.%s", cassdao.ErrNotFound, keyspace, table)
	}
	sortByPosition(desc.PartitionKeys)
	sortByPosition(desc.ClusteringKeys)

	// 2. Secondary indexes
	iter = session.Query(selectIndexesCQL, keyspace, table).WithContext(ctx).Iter()
	var indexName, indexKind string
	var options map[string]string
	for iter.Scan(&indexName, &indexKind, &options) {
		desc.Indexes = append(desc.Indexes, schema.IndexDescriptor{
			Name:   indexName,
			Kind:   indexKind,
			Target: parseIndexTarget(options["target"]),
		})
		options = nil
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("reading system_schema.indexes: %w", err)
	}

	return desc, nil
}

func sortByPosition(cols []schema.ColumnDescriptor) {
	sort.SliceStable(cols, func(i, j int) bool { return cols[i].Position < cols[j].Position })
}

// parseIndexTarget extracts the column name from an index target option,
// e.g. values(tags) -> tags, "MixedCase" -> MixedCase.
func parseIndexTarget(target string) string {
	target = strings.TrimSpace(target)
	for _, fn := range []string{"keys(", "values(", "entries(", "full("} {
		if strings.HasPrefix(target, fn) && strings.HasSuffix(target, ")") {
			target = target[len(fn) : len(target)-1]
			break
		}
	}
	if len(target) >= 2 && target[0] == '"' && target[len(target)-1] == '"' {
		target = strings.ReplaceAll(target[1:len(target)-1], `""`, `"`)
	}
	return target
}
