package cqlbuilder

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// JoinColumns joins column names with commas, verbatim.
func JoinColumns(columns []string) string {
	return strings.Join(columns, ",")
}

// ColumnsPair builds a named-parameter assignment list: a=:a,b=:b.
func ColumnsPair(columns []string) string {
	pairs := make([]string, len(columns))
	for i, col := range columns {
		pairs[i] = col + "=:" + col
	}
	return strings.Join(pairs, ",")
}

// WherePair builds a single predicate. Slice and array values produce a
// membership test (field in :field), anything else an equality test.
// []byte is a blob scalar, not a sequence.
func WherePair(field string, value interface{}) string {
	if isSequence(value) {
		return field + " in :" + field
	}
	return field + "=:" + field
}

func isSequence(value interface{}) bool {
	if value == nil {
		return false
	}
	if _, ok := value.([]byte); ok {
		return false
	}
	k := reflect.TypeOf(value).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// WhereClause joins WherePair fragments for every filter entry with AND, in
// sorted field order so the same filter always renders the same statement.
func WhereClause(filter map[string]interface{}) string {
	fields := make([]string, 0, len(filter))
	for field := range filter {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	preds := make([]string, len(fields))
	for i, field := range fields {
		preds[i] = WherePair(field, filter[field])
	}
	return strings.Join(preds, " AND ")
}

// BuildSelect constructs a SELECT for the projection and optional where clause.
func BuildSelect(table, projection, where string) string {
	if projection == "" {
		projection = "*"
	}
	query := fmt.Sprintf("SELECT %s FROM %s", projection, table)
	if where != "" {
		query += " WHERE " + where
	}
	return query
}

// BuildInsert constructs an INSERT with named parameters for every column.
func BuildInsert(table string, columns []string) string {
	if table == "" || len(columns) == 0 {
		return ""
	}
	markers := make([]string, len(columns))
	for i, col := range columns {
		markers[i] = ":" + col
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, JoinColumns(columns), strings.Join(markers, ","))
}

// BuildUpdate constructs an UPDATE assigning columns, restricted by where.
func BuildUpdate(table string, columns []string, where string) string {
	if table == "" || len(columns) == 0 || where == "" {
		return ""
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s", table, ColumnsPair(columns), where)
}

// BuildDelete constructs a DELETE restricted by where.
func BuildDelete(table, where string) string {
	if table == "" || where == "" {
		return ""
	}
	return fmt.Sprintf("DELETE FROM %s WHERE %s", table, where)
}
