package schema

import (
	"fmt"
	"strings"

	"cassdao/common"
)

// QualifiedName is a table identifier resolved to its keyspace.
type QualifiedName struct {
	Keyspace string
	Table    string
}

func (n QualifiedName) String() string {
	return n.Keyspace + "." + n.Table
}

// ResolveName splits raw on its first '.' into keyspace and table. Without a
// keyspace part, defaultKeyspace is used. The returned error wraps
// common.ErrConfiguration when no keyspace can be determined.
func ResolveName(raw, defaultKeyspace string) (QualifiedName, error) {
	keyspace, table := "", raw
	if pos := strings.IndexByte(raw, '.'); pos >= 0 {
		keyspace, table = raw[:pos], raw[pos+1:]
	}
	if keyspace == "" {
		keyspace = defaultKeyspace
	}
	if keyspace == "" {
		return QualifiedName{}, fmt.Errorf("%w: %w for table %q", common.ErrConfiguration, common.ErrNoKeyspace, raw)
	}
	return QualifiedName{Keyspace: keyspace, Table: table}, nil
}
